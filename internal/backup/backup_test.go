package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (string, *sqlite.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitus.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.AddFamily(models.Family{ID: "fam-1", Name: "Silva", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("AddFamily() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return dbPath, store
}

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[min(i, len(ts)-1)]
		i++
		return t
	}
}

func TestCreateAndList(t *testing.T) {
	dbPath, _ := setupTestDB(t)
	mgr := NewManager(dbPath)
	base := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	mgr.now = fixedClock(base, base, base.Add(time.Hour))

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Name != "habitus-20240603-080000.db" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Size == 0 {
		t.Error("backup file is empty")
	}

	// Same second gets a counter suffix
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.Name != "habitus-20240603-080000-1.db" {
		t.Errorf("Name = %q", second.Name)
	}
	if latest, err := mgr.Resolve("latest"); err != nil || latest.Name != second.Name {
		t.Errorf("Resolve(latest) = %q, %v, want %q", latest.Name, err, second.Name)
	}
	third, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(backups))
	}
	if backups[0].Name != third.Name {
		t.Errorf("newest = %q, want %q", backups[0].Name, third.Name)
	}
}

func TestListMissingDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitus.db"))
	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List() = %v, %v", backups, err)
	}
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error backing up a missing database")
	}
}

func TestRotation(t *testing.T) {
	dbPath, _ := setupTestDB(t)
	mgr := NewManager(dbPath)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	mgr.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("len(List()) = %d, want %d", len(backups), MaxBackups)
	}
}

func TestRestore(t *testing.T) {
	dbPath, store := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Change the live database after the snapshot
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := store.AddFamily(models.Family{ID: "fam-2", Name: "Souza", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("AddFamily() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	latest, err := mgr.Resolve("latest")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := mgr.Restore(latest); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("Load() after restore error = %v", err)
	}
	defer store.Close()
	families, err := store.GetAllFamilies()
	if err != nil {
		t.Fatalf("GetAllFamilies() error = %v", err)
	}
	if len(families) != 1 || families[0].ID != "fam-1" {
		t.Errorf("families after restore = %v", families)
	}

	// The pre-restore database was kept as a backup too
	backups, _ := mgr.List()
	if len(backups) != 2 {
		t.Errorf("len(List()) = %d, want 2", len(backups))
	}
}

func TestResolveAndVerify(t *testing.T) {
	dbPath, _ := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Resolve("habitus-20200101-000000.db"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrNotFound", err)
	}

	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(mgr.Dir(), "habitus-20240101-000000.db")
	if err := os.WriteFile(bad, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	b, err := mgr.Resolve("habitus-20240101-000000.db")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := mgr.Restore(b); err == nil {
		t.Error("expected error restoring a corrupted backup")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"habitus-20240603-080000.db", true},
		{"habitus-20240603-080000-12.db", true},
		{"backup-20240603-080000.db", false},
		{"habitus-2024.db", false},
		{"habitus-20240603-080000.txt", false},
		{"habitus-20240603-080000-x.db", false},
	}
	for _, tt := range tests {
		if _, _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
