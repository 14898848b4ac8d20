package keystore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// transformFunc mutates stored state when upgrading to a given version.
type transformFunc func(s *Store) error

// No version-specific transforms are defined yet; the registry exists so a
// future schema change only has to add an entry here.
var transforms = map[string]transformFunc{}

// EnsureMigrated compares the stored schema version against the running one
// and, on mismatch, takes a combined safety snapshot of the critical keys
// before writing the new marker. The snapshot is best-effort: a failure is
// logged but never blocks startup. Repeated calls within the same version
// are no-ops.
func EnsureMigrated(s *Store, currentVersion string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var stored string
	s.Get(KeySchemaVersion, &stored)
	if stored == currentVersion {
		return
	}

	logger.Info("schema version changed, taking safety snapshot",
		zap.String("from", stored), zap.String("to", currentVersion))

	key := fmt.Sprintf("migration__%s__%s", currentVersion, time.Now().Format(backupTimeFormat))
	if err := Snapshot(s, key); err != nil {
		logger.Warn("migration snapshot incomplete", zap.Error(err))
	}

	if fn, ok := transforms[currentVersion]; ok {
		if err := fn(s); err != nil {
			logger.Error("version transform failed", zap.String("version", currentVersion), zap.Error(err))
		}
	}

	if err := s.Set(KeySchemaVersion, currentVersion); err != nil {
		logger.Error("failed to persist schema version marker", zap.Error(err))
	}
}

// Snapshot copies the raw payloads of all critical keys into one combined
// backup entry. Missing slots are skipped; per-key read failures are
// aggregated and reported without aborting the snapshot.
func Snapshot(s *Store, backupKey string) error {
	var errs *multierror.Error

	combined := make(map[string]json.RawMessage)
	for _, key := range CriticalKeys() {
		raw, ok := s.GetRaw(key)
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			errs = multierror.Append(errs, fmt.Errorf("slot %s holds invalid payload, skipped", key))
			continue
		}
		combined[key] = raw
	}

	payload, err := json.Marshal(combined)
	if err != nil {
		return multierror.Append(errs, fmt.Errorf("marshal snapshot: %w", err)).ErrorOrNil()
	}
	if err := s.PutBackup(backupKey, payload); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}
