// Package backup snapshots and restores the SQLite database file.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/logger"
)

const (
	// MaxBackups is how many snapshots rotation keeps
	MaxBackups = 14
	DirName    = "backups"

	filePrefix = constants.AppName + "-"
	fileSuffix = ".db"
	stampFmt   = "20060102-150405"
)

// ErrNotFound is returned when a named backup does not exist
var ErrNotFound = errors.New("backup not found")

type Info struct {
	Name      string
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

// NewManager keeps snapshots in a backups directory next to dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a consistent copy of the database and rotates old copies.
func (m *Manager) Create() (Info, error) {
	info, err := m.snapshot()
	if err != nil {
		return Info{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return info, nil
}

func (m *Manager) snapshot() (Info, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return Info{}, fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	ts := m.now().UTC()
	name := filePrefix + ts.Format(stampFmt) + fileSuffix
	for i := 1; fileExists(filepath.Join(m.dir, name)); i++ {
		name = fmt.Sprintf("%s%s-%d%s", filePrefix, ts.Format(stampFmt), i, fileSuffix)
	}
	path := filepath.Join(m.dir, name)

	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return Info{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer src.Close()
	if _, err := src.Exec("VACUUM INTO ?", path); err != nil {
		return Info{}, fmt.Errorf("failed to backup database: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	logger.Info("Backup created", "path", path, "bytes", st.Size())
	return Info{Name: name, Path: path, Timestamp: ts, Size: st.Size()}, nil
}

// List returns snapshots newest first. Files that do not look like
// snapshots are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		ts, seq, ok := parseName(entry.Name())
		if entry.IsDir() || !ok {
			continue
		}
		st, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Name:      entry.Name(),
			Path:      filepath.Join(m.dir, entry.Name()),
			Timestamp: ts,
			Size:      st.Size(),
			seq:       seq,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].seq > backups[j].seq
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName extracts the timestamp and counter of
// habitus-YYYYMMDD-HHMMSS[-N].db.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(stamp) < len(stampFmt) {
		return time.Time{}, 0, false
	}
	ts, err := time.Parse(stampFmt, stamp[:len(stampFmt)])
	if err != nil {
		return time.Time{}, 0, false
	}
	seq := 0
	if rest := stamp[len(stampFmt):]; rest != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(rest, "-"))
		if err != nil || !strings.HasPrefix(rest, "-") || n < 1 {
			return time.Time{}, 0, false
		}
		seq = n
	}
	return ts, seq, true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Name, err)
		}
	}
	return nil
}

// Resolve finds a backup by file name, or "latest" for the newest one.
func (m *Manager) Resolve(name string) (Info, error) {
	backups, err := m.List()
	if err != nil {
		return Info{}, err
	}
	for _, b := range backups {
		if name == "latest" || b.Name == name || b.Path == name {
			return b, nil
		}
	}
	return Info{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Restore replaces the database with a backup. The current database is
// snapshotted first so a restore can be undone. The store must be closed.
func (m *Manager) Restore(b Info) error {
	if err := verify(b.Path); err != nil {
		return fmt.Errorf("backup %s is corrupted or invalid: %w", b.Name, err)
	}

	if fileExists(m.dbPath) {
		current, err := m.snapshot()
		if err != nil {
			return fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		logger.Info("Saved current database before restore", "path", current.Path)
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(b.Path, tmp); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("Database restored", "from", b.Path)
	return nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	var n int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
