package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/questdeck/backend/api/transport"
	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/pkg/httpcontext"
	rewardUC "github.com/questdeck/backend/usecase/reward"
)

type RewardHandler struct {
	baseHandler
	rewards *rewardUC.UseCase
}

func NewRewardHandler(rewards *rewardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		rewards:     rewards,
	}
}

func (h *RewardHandler) Stats(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.rewards.Stats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

func (h *RewardHandler) Ledger(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.rewards.Entries(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}

func (h *RewardHandler) Earn(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.EarnRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Amount <= 0 {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "amount must be positive"))
		return
	}

	if err := h.rewards.GrantCurrency(stdCtx, req.Amount, req.Source); err != nil {
		h.respondError(ctx, err)
		return
	}
	stats, err := h.rewards.Stats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

func (h *RewardHandler) Spend(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.SpendRequest
	if !h.decode(ctx, &req) {
		return
	}

	ok, err := h.rewards.SpendCurrency(stdCtx, req.Amount, req.Description)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !ok {
		h.respondError(ctx, domain.ErrInsufficientFunds)
		return
	}
	stats, err := h.rewards.Stats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

func (h *RewardHandler) Damage(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.DamageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stats, err := h.rewards.ApplyDamage(stdCtx, req.Amount)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}
