package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// seedJournalDB creates a throwaway database shaped like the journal store
// with two entries in it.
func seedJournalDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE journal_entries (
		id TEXT PRIMARY KEY,
		title TEXT,
		mood TEXT
	)`)
	if err != nil {
		t.Fatalf("failed to create journal table: %v", err)
	}

	for _, row := range [][3]string{
		{"e1", "sunny walk", "happy"},
		{"e2", "rain all day", "gloomy"},
	} {
		if _, err := db.Exec("INSERT INTO journal_entries (id, title, mood) VALUES (?, ?, ?)", row[0], row[1], row[2]); err != nil {
			t.Fatalf("failed to insert entry: %v", err)
		}
	}

	return dbPath
}

func countEntries(t *testing.T, dbPath string) int {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM journal_entries").Scan(&count); err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(backupPath), BackupFilePrefix) {
		t.Errorf("backup name %q missing %q prefix", filepath.Base(backupPath), BackupFilePrefix)
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}
	if got := countEntries(t, backupPath); got != 2 {
		t.Errorf("expected 2 entries in backup, got %d", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nonexistent.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error when backing up non-existent database")
	}
}

func TestListBackups(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A foreign file in the directory must not show up in the listing.
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("unrelated"), 0600); err != nil {
		t.Fatalf("failed to write foreign file: %v", err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	for i := 0; i < MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at index %d", i)
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	// Rapid snapshots land within the same minute, forcing the collision
	// fallbacks.
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(backupPath)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}
}

func TestParseBackupTime(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"skycast-20250114-0930.db", true},
		{"skycast-20250114-093015.db", true},
		{"skycast-20250114-093015-3.db", true},
		{"skycast-garbage.db", false},
		{"skycast-.db", false},
	}

	for _, tt := range tests {
		ts, ok := parseBackupTime(tt.name)
		if ok != tt.want {
			t.Errorf("parseBackupTime(%q) ok = %v, want %v", tt.name, ok, tt.want)
		}
		if ok && ts.Year() != 2025 {
			t.Errorf("parseBackupTime(%q) year = %d, want 2025", tt.name, ts.Year())
		}
	}
}

func TestVerifyBackup(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := mgr.verifyBackup(backupPath); err != nil {
		t.Errorf("verifyBackup failed for valid backup: %v", err)
	}

	invalidPath := filepath.Join(mgr.GetBackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}
	if err := mgr.verifyBackup(invalidPath); err == nil {
		t.Error("verifyBackup should fail for invalid backup")
	}
}
