package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/questdeck/backend/api/transport"
	"github.com/questdeck/backend/pkg/httpcontext"
	budgetUC "github.com/questdeck/backend/usecase/budget"
)

type BudgetHandler struct {
	baseHandler
	budget *budgetUC.UseCase
}

func NewBudgetHandler(budget *budgetUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		baseHandler: newBaseHandler(adapter, logger),
		budget:      budget,
	}
}

func (h *BudgetHandler) Overview(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	overview, err := h.budget.Overview(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, overview)
}

func (h *BudgetHandler) Update(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.BudgetRequest
	if !h.decode(ctx, &req) {
		return
	}

	if req.Total != nil {
		if err := h.budget.SetBudgetTotal(stdCtx, *req.Total); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	if req.GroceryAllocation != nil {
		if err := h.budget.SetGroceryAllocation(stdCtx, *req.GroceryAllocation); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	if req.ExchangeRate != nil {
		if err := h.budget.SetExchangeRate(stdCtx, *req.ExchangeRate); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	overview, err := h.budget.Overview(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, overview)
}

func (h *BudgetHandler) GroceryList(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.budget.GroceryList(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

func (h *BudgetHandler) AddGroceryItem(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.GroceryItemRequest
	if !h.decode(ctx, &req) {
		return
	}

	item, err := h.budget.AddGroceryItem(stdCtx, req.Name, req.Quantity, req.Price)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, item)
}

func (h *BudgetHandler) ToggleGroceryItem(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.budget.ToggleGroceryItem(stdCtx, pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *BudgetHandler) RemoveGroceryItem(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.budget.RemoveGroceryItem(stdCtx, pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *BudgetHandler) SetPrice(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.PriceRequest
	if !h.decode(ctx, &req) {
		return
	}

	if err := h.budget.SetPrice(stdCtx, req.Name, req.Price); err != nil {
		h.respondError(ctx, err)
		return
	}
	catalog, err := h.budget.PriceCatalog(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, catalog)
}

func (h *BudgetHandler) Calories(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	state, err := h.budget.Calories(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, state)
}

func (h *BudgetHandler) UpdateCalories(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CalorieRequest
	if !h.decode(ctx, &req) {
		return
	}

	if req.Reset {
		if err := h.budget.ResetCalorieDay(stdCtx); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	if req.Target != nil {
		if err := h.budget.SetCalorieTarget(stdCtx, *req.Target); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	if req.Amount != 0 {
		if _, err := h.budget.AddCalories(stdCtx, req.Amount); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	state, err := h.budget.Calories(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, state)
}
