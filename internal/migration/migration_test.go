package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/cloudcontrol/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, content := range m {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_kv.sql":    "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
		"002_extra.sql": "ALTER TABLE kv ADD COLUMN updated_at TEXT;",
	}))

	var msgs []string
	applied, err := runner.ApplyMigrations(func(s string) { msgs = append(msgs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if v, _ := runner.GetCurrentVersion(); v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES ('a', 'b', 'c')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}
	if len(msgs) == 0 {
		t.Error("expected progress messages")
	}

	again, err := runner.ApplyMigrations(nil)
	if err != nil || again != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v; want no-op", again, err)
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := openTestDB(t)
	first := files(map[string]string{"001_a.sql": "CREATE TABLE a (id INTEGER);"})
	if _, err := NewRunner(db, first).ApplyMigrations(nil); err != nil {
		t.Fatalf("first ApplyMigrations() error = %v", err)
	}

	second := files(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER);",
		"002_b.sql": "CREATE TABLE b (id INTEGER);",
	})
	applied, err := NewRunner(db, second).ApplyMigrations(nil)
	if err != nil || applied != 1 {
		t.Fatalf("ApplyMigrations() = %d, %v; want 1 applied", applied, err)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (;",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations() expected error for broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := runner.GetCurrentVersion(); v != 1 {
		t.Errorf("version = %d, want 1 after rollback", v)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, files(map[string]string{"001_a.sql": "CREATE TABLE a (id INTEGER);"}))
	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (5)"); err != nil {
		t.Fatal(err)
	}

	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer schema error", err)
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations() expected error on a newer database")
	}
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "missing underscore", files: map[string]string{"001.sql": ""}},
		{name: "non numeric version", files: map[string]string{"abc_init.sql": ""}},
		{name: "version zero", files: map[string]string{"000_init.sql": ""}},
		{name: "duplicate version", files: map[string]string{"001_a.sql": "", "1_b.sql": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(nil, files(tt.files)).ReadMigrationFiles(); err == nil {
				t.Error("ReadMigrationFiles() expected error")
			}
		})
	}
}

func TestReadMigrationFilesIgnoresOtherFiles(t *testing.T) {
	got, err := NewRunner(nil, files(map[string]string{
		"README.md":    "docs",
		"002_b.sql":    "B",
		"001_init.sql": "A",
	})).ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "init" || got[1].Version != 2 {
		t.Errorf("ReadMigrationFiles() = %+v", got)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		t.Run(dir, func(t *testing.T) {
			sub, err := fs.Sub(migrations.FS, dir)
			if err != nil {
				t.Fatal(err)
			}
			latest, err := NewRunner(nil, sub).GetLatestVersion()
			if err != nil || latest < 1 {
				t.Errorf("GetLatestVersion() = %d, %v", latest, err)
			}
		})
	}

	sub, _ := fs.Sub(migrations.FS, "sqlite")
	db := openTestDB(t)
	if _, err := NewRunner(db, sub).ApplyMigrations(nil); err != nil {
		t.Fatalf("applying embedded sqlite migrations: %v", err)
	}
}
