package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Slot keys. Each logical field of the data model lives under its own key
// so corruption in one slot never invalidates unrelated slots.
const (
	KeyPlayerStats       = "player_stats"
	KeyQuests            = "quests"
	KeyProtocols         = "protocols"
	KeySettings          = "settings"
	KeyLedger            = "ledger"
	KeyCalories          = "calories"
	KeyBudgetTotal       = "budget_total"
	KeyGroceryAllocation = "grocery_allocation"
	KeyEarnedRewards     = "earned_rewards"
	KeyGroceryPeriod     = "grocery_period"
	KeyPriceCatalog      = "price_catalog"
	KeyGroceryList       = "grocery_list"
	KeyExchangeRate      = "exchange_rate"
	KeyDeckOffsets       = "deck_offsets"
	KeyDeckDismissed     = "deck_dismissed"
	KeySchemaVersion     = "schema_version"
	corruptMarker        = "__corrupt__"
	backupTimeFormat     = "2006-01-02T15-04-05.000"
)

const (
	bucketState   = "state"
	bucketBackups = "backups"
)

// Store is the durable key-scoped value container backing all engine state.
// Reads fall back to defaults on corruption; writes are serialized by the
// underlying single-writer transaction, so each read-modify-write mutation
// against a key is applied without interleaving.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open initializes the store file and ensures its buckets exist.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketState)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBackups))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Get deserializes the value stored under key into out. It never fails:
// a missing key returns false, and a corrupted payload is preserved under
// a timestamped backup key before false is returned, leaving the caller's
// default in place.
func (s *Store) Get(key string, out any) bool {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.quarantine(key, raw, err)
		return false
	}
	return true
}

// GetRaw returns the raw payload stored under key.
func (s *Store) GetRaw(key string) ([]byte, bool) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketState)).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("store read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return raw, raw != nil
}

// Set serializes v and persists it under key. On failure the in-memory
// value remains authoritative for the session; callers log and continue.
func (s *Store) Set(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.PutRaw(key, payload)
}

// SetAll serializes and persists several slots in one transaction, so
// related mutations are applied all-or-nothing.
func (s *Store) SetAll(values map[string]any) error {
	payloads := make(map[string][]byte, len(values))
	for key, v := range values {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		payloads[key] = payload
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketState))
		for key, payload := range payloads {
			if err := bucket.Put([]byte(key), payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// PutRaw persists a pre-serialized payload under key.
func (s *Store) PutRaw(key string, payload []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Put([]byte(key), payload)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Delete([]byte(key))
	})
}

// PutBackup writes a payload into the backup bucket.
func (s *Store) PutBackup(key string, payload []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBackups)).Put([]byte(key), payload)
	})
	if err != nil {
		return fmt.Errorf("write backup %s: %w", key, err)
	}
	return nil
}

// getBackupRaw returns the raw payload of a backup entry.
func (s *Store) getBackupRaw(key string) ([]byte, bool) {
	var raw []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketBackups)).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	return raw, raw != nil
}

// BackupKeys lists all backup entry keys, oldest first.
func (s *Store) BackupKeys() []string {
	var keys []string
	_ = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBackups)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys
}

// Stats reports key counts for health reporting.
func (s *Store) Stats() (stateKeys, backupKeys int) {
	_ = s.db.View(func(tx *bolt.Tx) error {
		stateKeys = tx.Bucket([]byte(bucketState)).Stats().KeyN
		backupKeys = tx.Bucket([]byte(bucketBackups)).Stats().KeyN
		return nil
	})
	return stateKeys, backupKeys
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// quarantine preserves a corrupted payload under a derived backup key so
// the data can be inspected later, then lets the caller fall back to its
// default value.
func (s *Store) quarantine(key string, raw []byte, cause error) {
	backupKey := key + corruptMarker + time.Now().Format(backupTimeFormat)
	if err := s.PutBackup(backupKey, raw); err != nil {
		s.logger.Error("failed to preserve corrupted payload",
			zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Warn("corrupted payload quarantined, falling back to default",
		zap.String("key", key),
		zap.String("backup_key", backupKey),
		zap.Error(cause))
}

// CriticalKeys enumerates the slots included in migration and scheduled
// safety snapshots.
func CriticalKeys() []string {
	return []string{
		KeyPlayerStats,
		KeyQuests,
		KeyProtocols,
		KeySettings,
		KeyLedger,
		KeyCalories,
		KeyBudgetTotal,
		KeyGroceryAllocation,
		KeyEarnedRewards,
		KeyGroceryPeriod,
		KeyPriceCatalog,
		KeyGroceryList,
		KeyExchangeRate,
		KeyDeckOffsets,
		KeyDeckDismissed,
	}
}
