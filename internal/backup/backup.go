// Package backup snapshots the SQLite journal database into timestamped
// files next to it and restores from them. Postgres deployments are expected
// to use their own dump tooling instead.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is how many snapshots rotation keeps.
	MaxBackups = 14
	// BackupDirName is the directory created beside the database file.
	BackupDirName = "backups"
	// BackupFilePrefix marks files this package owns inside the backup dir.
	BackupFilePrefix = "skycast-"
	// BackupFileSuffix is the snapshot file extension.
	BackupFileSuffix = ".db"
)

// BackupInfo describes one snapshot on disk.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, and restores snapshots for a single database file.
type Manager struct {
	dbPath    string
	backupDir string
}

// NewManager returns a manager whose backup directory sits beside dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), BackupDirName),
	}
}

// GetBackupDir returns the directory snapshots are written to.
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and rotates old snapshots out.
// It returns the path of the new snapshot.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup does the work; skipRotation is set by RestoreBackup so the
// pre-restore snapshot cannot itself trigger rotation.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.nextBackupPath(time.Now())
	if err != nil {
		return "", err
	}

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// The snapshot itself succeeded; rotation failing is not fatal.
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath picks an unused filename. Minute precision keeps names
// short for the everyday case; collisions escalate to seconds and then a
// numeric suffix for rapid successive snapshots.
func (m *Manager) nextBackupPath(now time.Time) (string, error) {
	candidate := filepath.Join(m.backupDir, BackupFilePrefix+now.Format("20060102-1504")+BackupFileSuffix)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	stamp := now.Format("20060102-150405")
	candidate = filepath.Join(m.backupDir, BackupFilePrefix+stamp+BackupFileSuffix)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	for counter := 1; counter <= 100; counter++ {
		candidate = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, stamp, counter, BackupFileSuffix))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// snapshot writes a consistent copy of the database to destPath.
// VACUUM INTO produces a clean, defragmented copy even while other
// connections hold the file open; a plain file copy is the fallback for
// SQLite builds that predate it.
func (m *Manager) snapshot(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// ListBackups returns the snapshots in the backup directory, newest first.
// Files that do not carry this package's prefix and a parseable timestamp
// are ignored, so foreign files in the directory are left alone.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, BackupFileSuffix) {
			continue
		}

		ts, ok := parseBackupTime(name)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupTime recovers the timestamp from a snapshot filename.
// The stamp is always the first two hyphen-separated fields; anything after
// them is the collision counter and irrelevant to ordering.
func parseBackupTime(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), BackupFileSuffix)
	parts := strings.Split(stamp, "-")
	if len(parts) < 2 {
		return time.Time{}, false
	}
	stamp = parts[0] + "-" + parts[1]

	if ts, err := time.Parse("20060102-150405", stamp); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("20060102-1504", stamp); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// rotateBackups deletes the oldest snapshots beyond MaxBackups.
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the live database with the given snapshot.
// The current database is snapshotted first so a bad restore is recoverable,
// and the swap itself is an atomic rename.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		fmt.Printf("Created backup of current database: %s\n", filepath.Base(currentBackup))
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}

	return nil
}

// verifyBackup confirms the file opens as SQLite before it is allowed to
// replace the live database.
func (m *Manager) verifyBackup(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
