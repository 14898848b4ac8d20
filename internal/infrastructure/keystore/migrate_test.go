package keystore

import (
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestEnsureMigratedWritesMarkerAndSnapshot(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set(KeyPlayerStats, map[string]int{"level": 4}); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	EnsureMigrated(store, "7", zap.NewNop())

	var marker string
	if ok := store.Get(KeySchemaVersion, &marker); !ok || marker != "7" {
		t.Fatalf("schema marker = %q (ok=%v), want \"7\"", marker, ok)
	}

	backups := store.BackupKeys()
	if len(backups) != 1 {
		t.Fatalf("backup entries = %d, want 1", len(backups))
	}
	if !strings.HasPrefix(backups[0], "migration__7__") {
		t.Fatalf("backup key %q missing version tag", backups[0])
	}
}

func TestEnsureMigratedIsIdempotentWithinVersion(t *testing.T) {
	store := newTestStore(t)

	EnsureMigrated(store, "7", zap.NewNop())
	before := len(store.BackupKeys())

	EnsureMigrated(store, "7", zap.NewNop())
	EnsureMigrated(store, "7", zap.NewNop())

	if after := len(store.BackupKeys()); after != before {
		t.Fatalf("repeated calls added backups: before=%d after=%d", before, after)
	}
}

func TestSnapshotSkipsInvalidSlots(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set(KeyQuests, []string{"q1"}); err != nil {
		t.Fatalf("seed quests: %v", err)
	}
	if err := store.PutRaw(KeyProtocols, []byte("garbage")); err != nil {
		t.Fatalf("seed protocols: %v", err)
	}

	err := Snapshot(store, "snapshot__test")
	if err == nil {
		t.Fatal("expected aggregated error for invalid slot")
	}

	var combined map[string]json.RawMessage
	backupRaw, found := store.getBackupRaw("snapshot__test")
	if !found {
		t.Fatal("snapshot entry missing")
	}
	if err := json.Unmarshal(backupRaw, &combined); err != nil {
		t.Fatalf("snapshot payload invalid: %v", err)
	}
	if _, has := combined[KeyQuests]; !has {
		t.Fatal("valid slot missing from snapshot")
	}
	if _, has := combined[KeyProtocols]; has {
		t.Fatal("invalid slot should have been skipped")
	}
}
