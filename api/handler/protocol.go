package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/questdeck/backend/api/transport"
	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/pkg/httpcontext"
	protocolUC "github.com/questdeck/backend/usecase/protocol"
)

type ProtocolHandler struct {
	baseHandler
	protocols *protocolUC.UseCase
}

func NewProtocolHandler(protocols *protocolUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProtocolHandler {
	return &ProtocolHandler{
		baseHandler: newBaseHandler(adapter, logger),
		protocols:   protocols,
	}
}

func (h *ProtocolHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	protocols, err := h.protocols.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, protocols)
}

func (h *ProtocolHandler) Due(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	due, err := h.protocols.Due(stdCtx, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, due)
}

func (h *ProtocolHandler) Create(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.ProtocolCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	p, err := h.protocols.Create(stdCtx, protocolUC.CreateParams{
		Title:          req.Title,
		Frequency:      domain.Frequency(req.Frequency),
		FrequencyParam: req.FrequencyParam,
		IsToday:        req.IsToday,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, p)
}

func (h *ProtocolHandler) Update(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.ProtocolUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	params := protocolUC.UpdateParams{
		Title:          req.Title,
		FrequencyParam: req.FrequencyParam,
		IsActive:       req.IsActive,
		IsToday:        req.IsToday,
	}
	if req.Frequency != nil {
		f := domain.Frequency(*req.Frequency)
		params.Frequency = &f
	}

	p, err := h.protocols.Update(stdCtx, pathID(ctx), params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, p)
}

func (h *ProtocolHandler) CheckIn(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CheckInRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Delta == 0 {
		req.Delta = 1
	}

	p, err := h.protocols.CheckIn(stdCtx, pathID(ctx), req.Delta)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, p)
}

func (h *ProtocolHandler) Delete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.protocols.Delete(stdCtx, pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
