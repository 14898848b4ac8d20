package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/questdeck/backend/api/transport"
	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/pkg/httpcontext"
	questUC "github.com/questdeck/backend/usecase/quest"
)

type QuestHandler struct {
	baseHandler
	quests *questUC.UseCase
}

func NewQuestHandler(quests *questUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{
		baseHandler: newBaseHandler(adapter, logger),
		quests:      quests,
	}
}

func (h *QuestHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	quests, err := h.quests.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, quests)
}

func (h *QuestHandler) Create(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.QuestCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	params := questUC.CreateParams{
		Title:        req.Title,
		Difficulty:   domain.Difficulty(req.Difficulty),
		MissionBrief: req.MissionBrief,
		IsToday:      req.IsToday,
	}
	if req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "invalid due date", err))
			return
		}
		params.DueDate = &due
	}

	q, err := h.quests.Create(stdCtx, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, q)
}

func (h *QuestHandler) Update(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.QuestUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	params := questUC.UpdateParams{
		Title:        req.Title,
		MissionBrief: req.MissionBrief,
		ClearDueDate: req.ClearDueDate,
		IsToday:      req.IsToday,
	}
	if req.Difficulty != nil {
		d := domain.Difficulty(*req.Difficulty)
		params.Difficulty = &d
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "invalid due date", err))
			return
		}
		params.DueDate = &due
	}

	q, err := h.quests.Update(stdCtx, pathID(ctx), params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, q)
}

func (h *QuestHandler) Complete(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.quests.Complete)
}

func (h *QuestHandler) Undo(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.quests.UndoComplete)
}

func (h *QuestHandler) Discard(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.quests.Discard)
}

func (h *QuestHandler) Restore(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.quests.Restore)
}

func (h *QuestHandler) Delete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.quests.Delete(stdCtx, pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *QuestHandler) transition(ctx *fasthttp.RequestCtx, op func(stdCtx context.Context, id string) (*domain.Quest, error)) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	q, err := op(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, q)
}
