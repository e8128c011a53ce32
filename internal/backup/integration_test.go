package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// TestBackupRestoreWorkflow walks the full cycle: snapshot, mutate the live
// database, restore, and confirm the mutation is gone.
func TestBackupRestoreWorkflow(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO journal_entries (id, title, mood) VALUES (?, ?, ?)", "e3", "storm rolled in", "anxious"); err != nil {
		t.Fatalf("failed to insert entry: %v", err)
	}
	db.Close()

	if got := countEntries(t, dbPath); got != 3 {
		t.Fatalf("expected 3 entries before restore, got %d", got)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if got := countEntries(t, dbPath); got != 2 {
		t.Errorf("expected 2 entries after restore, got %d", got)
	}

	// The restored rows must be the originals, not leftovers.
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database after restore: %v", err)
	}
	defer db.Close()

	var title, mood string
	if err := db.QueryRow("SELECT title, mood FROM journal_entries WHERE id = ?", "e1").Scan(&title, &mood); err != nil {
		t.Fatalf("failed to query entry after restore: %v", err)
	}
	if title != "sunny walk" || mood != "happy" {
		t.Errorf("entry mismatch after restore: title=%q mood=%q", title, mood)
	}
}

// TestRestoreSnapshotsCurrentDatabase verifies a restore leaves behind a
// snapshot of the database it replaced.
func TestRestoreSnapshotsCurrentDatabase(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	before, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	after, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("expected %d backups after restore, got %d", len(before)+1, len(after))
	}
}

func TestRestoreRejectsCorruptedBackup(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	corruptedPath := filepath.Join(mgr.GetBackupDir(), "corrupted.db")
	if err := os.WriteFile(corruptedPath, []byte("not a valid sqlite database"), 0600); err != nil {
		t.Fatalf("failed to create corrupted file: %v", err)
	}

	if err := mgr.RestoreBackup(corruptedPath); err == nil {
		t.Error("expected error when restoring from corrupted backup")
	}
	if got := countEntries(t, dbPath); got != 2 {
		t.Errorf("live database changed by failed restore: %d entries", got)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	if err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "skycast-20250101-0000.db")); err == nil {
		t.Error("expected error when restoring a missing backup")
	}
}

func TestBackupDirectoryCreated(t *testing.T) {
	dbPath := seedJournalDB(t)
	mgr := NewManager(dbPath)

	os.RemoveAll(mgr.GetBackupDir())

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := os.Stat(mgr.GetBackupDir()); os.IsNotExist(err) {
		t.Error("backup directory was not created")
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Error("backup file was not created")
	}
}
