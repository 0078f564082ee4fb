package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
)

func setupSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloudcontrol.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestSQLiteStoreLoadBeforeInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestSQLiteStoreGetSet(t *testing.T) {
	store, _ := setupSQLiteStore(t)

	if _, ok, err := store.Get("logs"); err != nil || ok {
		t.Fatalf("Get() on empty store = %v, %v", ok, err)
	}
	if err := store.Set("logs", []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("logs", []byte(`[1,2]`)); err != nil {
		t.Fatal(err)
	}
	got, ok, err := store.Get("logs")
	if err != nil || !ok || string(got) != "[1,2]" {
		t.Errorf("Get() = %s, %v, %v; want [1,2]", got, ok, err)
	}
}

func TestSQLiteStoreRepositoryRoundTrip(t *testing.T) {
	store, path := setupSQLiteStore(t)
	repo, _ := newTestRepo(t, store)

	if _, err := repo.AddLog(models.LogEntry{Type: constants.LogTypeCraving, Location: constants.LocationCoding, Trigger: "stress"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := repo.AddCheckin(true); err != nil {
		t.Fatal(err)
	}
	if _, _, err := repo.AdvancePhase(); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(func() { reopened.Close() })
	repo2, _ := newTestRepo(t, reopened)

	logs, _ := repo2.GetLogs()
	if len(logs) != 1 || logs[0].Trigger != "stress" {
		t.Errorf("logs = %+v", logs)
	}
	checkins, _ := repo2.GetCheckins()
	if len(checkins) != 1 || !checkins[0].StuckToRules {
		t.Errorf("checkins = %+v", checkins)
	}
	data, _ := repo2.GetPhaseData()
	if data.CurrentPhase != 2 {
		t.Errorf("CurrentPhase = %d, want 2", data.CurrentPhase)
	}

	if err := repo2.ResetAll(); err != nil {
		t.Fatal(err)
	}
	for _, key := range constants.KeysForReset {
		if _, ok, _ := reopened.Get(key); ok {
			t.Errorf("key %s survived reset", key)
		}
	}
}

func TestSQLiteStoreInitIsIdempotent(t *testing.T) {
	store, path := setupSQLiteStore(t)
	if err := store.Set("phase", []byte(`{"currentPhase":3}`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	again := NewSQLiteStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	t.Cleanup(func() { again.Close() })
	if _, ok, _ := again.Get("phase"); !ok {
		t.Error("second Init() lost stored data")
	}
}
