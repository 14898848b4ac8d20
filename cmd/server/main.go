package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/questdeck/backend/api/handler"
	"github.com/questdeck/backend/internal/config"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/internal/infrastructure/monitor"
	"github.com/questdeck/backend/internal/middleware"
	"github.com/questdeck/backend/internal/router"
	"github.com/questdeck/backend/internal/services"
	"github.com/questdeck/backend/internal/services/lifecycle"
	"github.com/questdeck/backend/pkg/httpcontext"
	"github.com/questdeck/backend/pkg/logger"
	boltRepo "github.com/questdeck/backend/repository/bolt"
	budgetUC "github.com/questdeck/backend/usecase/budget"
	deckUC "github.com/questdeck/backend/usecase/deck"
	protocolUC "github.com/questdeck/backend/usecase/protocol"
	questUC "github.com/questdeck/backend/usecase/quest"
	rewardUC "github.com/questdeck/backend/usecase/reward"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := keystore.Open(cfg.Store.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to open state store", zap.Error(err))
	}
	manager.Register("keystore", func(ctx context.Context) error {
		return store.Close()
	})

	// Version check runs once per start; a mismatch snapshots the critical
	// keys before the new marker is written.
	keystore.EnsureMigrated(store, cfg.Store.SchemaVersion, zapLogger)

	mon := monitor.New(store, cfg.Store.MonitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	snapshotter := services.NewSnapshotter(store, cfg.Store.SnapshotSpec, zapLogger)
	if err := snapshotter.Start(); err != nil {
		zapLogger.Fatal("failed to start snapshot schedule", zap.Error(err))
	}
	manager.Register("snapshotter", func(ctx context.Context) error {
		snapshotter.Stop()
		return nil
	})

	playerRepo := boltRepo.NewPlayerRepository(store)
	questRepo := boltRepo.NewQuestRepository(store)
	protocolRepo := boltRepo.NewProtocolRepository(store)
	ledgerRepo := boltRepo.NewLedgerRepository(store)
	walletRepo := boltRepo.NewWalletRepository(store)
	settingsRepo := boltRepo.NewSettingsRepository(store)
	deckRepo := boltRepo.NewDeckRepository(store)
	budgetRepo := boltRepo.NewBudgetRepository(store)
	calorieRepo := boltRepo.NewCalorieRepository(store)

	// Seed the configured exchange rate only while the user has not set one.
	if _, ok := store.GetRaw(keystore.KeyExchangeRate); !ok {
		if err := budgetRepo.SetExchangeRate(appCtx, cfg.Engine.ExchangeRate); err != nil {
			zapLogger.Warn("failed to seed exchange rate", zap.Error(err))
		}
	}

	rewardUseCase := rewardUC.New(playerRepo, ledgerRepo, walletRepo, zapLogger)
	questUseCase := questUC.New(questRepo, settingsRepo, rewardUseCase, zapLogger)
	protocolUseCase := protocolUC.New(protocolRepo, settingsRepo, rewardUseCase, zapLogger)
	deckUseCase := deckUC.New(questRepo, protocolRepo, deckRepo, cfg.Engine.LookaheadDays, zapLogger)
	budgetUseCase := budgetUC.New(budgetRepo, calorieRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Quest:    apiHandler.NewQuestHandler(questUseCase, ctxAdapter, zapLogger),
		Protocol: apiHandler.NewProtocolHandler(protocolUseCase, ctxAdapter, zapLogger),
		Deck:     apiHandler.NewDeckHandler(deckUseCase, ctxAdapter, zapLogger),
		Reward:   apiHandler.NewRewardHandler(rewardUseCase, ctxAdapter, zapLogger),
		Budget:   apiHandler.NewBudgetHandler(budgetUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	h := router.New(handlers,
		middleware.Recover(zapLogger),
		middleware.RequestLog(zapLogger),
	)

	server := &fasthttp.Server{
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
