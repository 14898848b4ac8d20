package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/questdeck/backend/internal/infrastructure/keystore"
)

// Snapshotter takes scheduled safety snapshots of the critical keys so a
// failed write session can be recovered from the previous day's state.
type Snapshotter struct {
	store  *keystore.Store
	cron   *cron.Cron
	spec   string
	logger *zap.Logger
}

func NewSnapshotter(store *keystore.Store, spec string, logger *zap.Logger) *Snapshotter {
	if spec == "" {
		spec = "@daily"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshotter{
		store:  store,
		cron:   cron.New(),
		spec:   spec,
		logger: logger,
	}
}

// Start registers the cron entry and begins scheduling.
func (s *Snapshotter) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("invalid snapshot spec %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("snapshot schedule started", zap.String("spec", s.spec))
	return nil
}

// Stop halts scheduling and waits for a running snapshot to finish.
func (s *Snapshotter) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Snapshotter) run() {
	key := "snapshot__" + time.Now().Format("2006-01-02T15-04-05.000")
	if err := keystore.Snapshot(s.store, key); err != nil {
		s.logger.Warn("scheduled snapshot incomplete", zap.Error(err))
		return
	}
	s.logger.Info("safety snapshot written", zap.String("key", key))
}
