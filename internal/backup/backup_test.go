package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/cloudcontrol/internal/constants"
)

var testNow = time.Date(2025, 3, 12, 15, 4, 5, 0, time.Local)

func createTestDB(t *testing.T, path, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES ('logs', ?)", value); err != nil {
		t.Fatal(err)
	}
}

func readValue(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var v string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = 'logs'").Scan(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(time.Hour)
	return t
}

func TestCreateBackupSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cloudcontrol.db")
	createTestDB(t, dbPath, "[1]")

	m := NewManager(dbPath).WithClock(func() time.Time { return testNow })
	path, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	want := filepath.Join(dir, constants.BackupDirName, "cloudcontrol-20250312-150405.db")
	if path != want {
		t.Errorf("CreateBackup() = %s, want %s", path, want)
	}
	if got := readValue(t, path); got != "[1]" {
		t.Errorf("backup value = %s, want [1]", got)
	}
}

func TestCreateBackupUniqueNames(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cloudcontrol.db")
	createTestDB(t, dbPath, "[]")

	m := NewManager(dbPath).WithClock(func() time.Time { return testNow })
	first, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second || !strings.HasSuffix(second, "-1.db") {
		t.Errorf("second backup = %s, want a counter suffix", second)
	}

	backups, err := m.ListBackups()
	if err != nil || len(backups) != 2 {
		t.Fatalf("ListBackups() = %v, %v", backups, err)
	}
}

func TestCreateBackupMissingData(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.CreateBackup(); err == nil {
		t.Error("CreateBackup() expected error for a missing data file")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cloudcontrol.db")
	createTestDB(t, dbPath, "[]")

	clock := &stepClock{t: testNow}
	m := NewManager(dbPath).WithClock(clock.now)
	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := m.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("len(backups) = %d, want %d", len(backups), constants.MaxBackups)
	}
	newest := testNow.Add(time.Duration(constants.MaxBackups+2) * time.Hour)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestListBackupsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "cloudcontrol.db"))
	if backups, err := m.ListBackups(); err != nil || len(backups) != 0 {
		t.Fatalf("ListBackups() with no directory = %v, %v", backups, err)
	}

	backupDir := m.GetBackupDir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "cloudcontrol-bad.db", "cloudcontrol-20250101-120000.json", "cloudcontrol-20250101-120000.db"} {
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 || filepath.Base(backups[0].Path) != "cloudcontrol-20250101-120000.db" {
		t.Errorf("ListBackups() = %+v", backups)
	}
}

func TestRestoreBackupSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cloudcontrol.db")
	createTestDB(t, dbPath, "[\"before\"]")

	clock := &stepClock{t: testNow}
	m := NewManager(dbPath).WithClock(clock.now)
	snapshot, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	createTestDB(t, dbPath, "[\"after\"]")
	previous, err := m.RestoreBackup(snapshot)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if got := readValue(t, dbPath); got != "[\"before\"]" {
		t.Errorf("restored value = %s", got)
	}
	if previous == "" || readValue(t, previous) != "[\"after\"]" {
		t.Errorf("pre-restore backup %q does not hold the replaced data", previous)
	}
}

func TestRestoreBackupRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cloudcontrol.db")
	createTestDB(t, dbPath, "[]")

	bad := filepath.Join(dir, "bad.db")
	if err := os.WriteFile(bad, []byte("this is not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(dbPath).RestoreBackup(bad); err == nil {
		t.Error("RestoreBackup() expected error for a corrupt file")
	}
	if _, err := NewManager(dbPath).RestoreBackup(filepath.Join(dir, "missing.db")); err == nil {
		t.Error("RestoreBackup() expected error for a missing file")
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(dataPath, []byte(`{"logs":[]}`), 0600); err != nil {
		t.Fatal(err)
	}

	clock := &stepClock{t: testNow}
	m := NewManager(dataPath).WithClock(clock.now)
	snapshot, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !strings.HasSuffix(snapshot, ".json") {
		t.Errorf("JSON backup %s should keep the .json suffix", snapshot)
	}

	if err := os.WriteFile(dataPath, []byte(`{"logs":[{"id":"x"}]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := m.RestoreBackup(snapshot); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	got, _ := os.ReadFile(dataPath)
	if string(got) != `{"logs":[]}` {
		t.Errorf("restored file = %s", got)
	}

	bad := filepath.Join(filepath.Dir(dataPath), "bad.json")
	if err := os.WriteFile(bad, []byte("nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := m.RestoreBackup(bad); err == nil {
		t.Error("RestoreBackup() expected error for invalid JSON")
	}
}
