package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/questdeck/backend/api/handler"
)

type Handlers struct {
	Quest    *apiHandler.QuestHandler
	Protocol *apiHandler.ProtocolHandler
	Deck     *apiHandler.DeckHandler
	Reward   *apiHandler.RewardHandler
	Budget   *apiHandler.BudgetHandler
	Health   *apiHandler.HealthHandler
}

// Middleware wraps a handler; applied outermost-first.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, middlewares ...Middleware) fasthttp.RequestHandler {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Player stats and reward ledger
	r.GET("/api/v1/stats", handlers.Reward.Stats)
	r.POST("/api/v1/stats/damage", handlers.Reward.Damage)
	r.GET("/api/v1/ledger", handlers.Reward.Ledger)
	r.POST("/api/v1/ledger/earn", handlers.Reward.Earn)
	r.POST("/api/v1/ledger/spend", handlers.Reward.Spend)

	// Quests
	r.GET("/api/v1/quests", handlers.Quest.List)
	r.POST("/api/v1/quests", handlers.Quest.Create)
	r.PUT("/api/v1/quests/{id}", handlers.Quest.Update)
	r.DELETE("/api/v1/quests/{id}", handlers.Quest.Delete)
	r.POST("/api/v1/quests/{id}/complete", handlers.Quest.Complete)
	r.POST("/api/v1/quests/{id}/undo", handlers.Quest.Undo)
	r.POST("/api/v1/quests/{id}/discard", handlers.Quest.Discard)
	r.POST("/api/v1/quests/{id}/restore", handlers.Quest.Restore)

	// Protocols
	r.GET("/api/v1/protocols", handlers.Protocol.List)
	r.GET("/api/v1/protocols/due", handlers.Protocol.Due)
	r.POST("/api/v1/protocols", handlers.Protocol.Create)
	r.PUT("/api/v1/protocols/{id}", handlers.Protocol.Update)
	r.DELETE("/api/v1/protocols/{id}", handlers.Protocol.Delete)
	r.POST("/api/v1/protocols/{id}/checkin", handlers.Protocol.CheckIn)

	// Deck
	r.GET("/api/v1/deck", handlers.Deck.Items)
	r.POST("/api/v1/deck/recall", handlers.Deck.Recall)
	r.POST("/api/v1/deck/{id}/skip", handlers.Deck.Skip)
	r.POST("/api/v1/deck/{id}/dismiss", handlers.Deck.Dismiss)
	r.POST("/api/v1/deck/{id}/undismiss", handlers.Deck.Undismiss)

	// Budget, groceries, calories
	r.GET("/api/v1/budget", handlers.Budget.Overview)
	r.PUT("/api/v1/budget", handlers.Budget.Update)
	r.GET("/api/v1/budget/groceries", handlers.Budget.GroceryList)
	r.POST("/api/v1/budget/groceries", handlers.Budget.AddGroceryItem)
	r.POST("/api/v1/budget/groceries/{id}/toggle", handlers.Budget.ToggleGroceryItem)
	r.DELETE("/api/v1/budget/groceries/{id}", handlers.Budget.RemoveGroceryItem)
	r.POST("/api/v1/budget/prices", handlers.Budget.SetPrice)
	r.GET("/api/v1/calories", handlers.Budget.Calories)
	r.POST("/api/v1/calories", handlers.Budget.UpdateCalories)

	h := r.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
