package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/storage"
	"github.com/julianstephens/fitlog/internal/storage/sqlite"
)

// setupTestDB creates an initialized store holding one workout.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "fitlog.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	records := storage.NewRecords(store)
	if err := records.AddWorkout("2024-03-05", models.WorkoutEntry{Category: constants.CategoryYoga}); err != nil {
		t.Fatalf("failed to add workout: %v", err)
	}
	return dbPath
}

func countWorkouts(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()

	workouts, err := storage.NewRecords(store).Workouts()
	if err != nil {
		t.Fatalf("failed to read workouts: %v", err)
	}
	n := 0
	for _, entries := range workouts {
		n += len(entries)
	}
	return n
}

func addWorkout(t *testing.T, dbPath string) {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()
	if err := storage.NewRecords(store).AddWorkout("2024-03-06", models.WorkoutEntry{Category: constants.CategoryCore}); err != nil {
		t.Fatalf("failed to add workout: %v", err)
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
	if got := countWorkouts(t, backupPath); got != 1 {
		t.Errorf("expected 1 workout in backup, got %d", got)
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
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
	}

	// Files that do not follow the naming scheme are ignored.
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "fitlog-garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
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

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	addWorkout(t, dbPath)
	if got := countWorkouts(t, dbPath); got != 2 {
		t.Fatalf("expected 2 workouts before restore, got %d", got)
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if previous == "" {
		t.Error("expected a pre-restore backup path")
	}

	if got := countWorkouts(t, dbPath); got != 1 {
		t.Errorf("expected 1 workout after restore, got %d", got)
	}
	if got := countWorkouts(t, previous); got != 2 {
		t.Errorf("expected pre-restore backup to hold 2 workouts, got %d", got)
	}
}

func TestRestoreBackupCreatesPreRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	before, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}

	if _, err := mgr.RestoreBackup(backupPath); err != nil {
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

func TestVerifyBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := verifyBackup(backupPath); err != nil {
		t.Errorf("verifyBackup failed for valid backup: %v", err)
	}

	invalidPath := filepath.Join(mgr.GetBackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := verifyBackup(invalidPath); err == nil {
		t.Error("verifyBackup should fail for a non-database file")
	}

	foreignPath := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreignPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if err := verifyBackup(foreignPath); err == nil {
		t.Error("verifyBackup should fail for a database without a documents table")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

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

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 5 {
		t.Errorf("expected 5 parseable backups, got %d", len(backups))
	}
}

func TestAutoBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return now }

	first, err := mgr.AutoBackup(24 * time.Hour)
	if err != nil {
		t.Fatalf("AutoBackup failed: %v", err)
	}
	if first == "" {
		t.Fatal("expected a backup when none exist")
	}

	now = now.Add(time.Hour)
	second, err := mgr.AutoBackup(24 * time.Hour)
	if err != nil {
		t.Fatalf("AutoBackup failed: %v", err)
	}
	if second != "" {
		t.Errorf("expected no backup within minAge, got %s", second)
	}

	now = now.Add(24 * time.Hour)
	third, err := mgr.AutoBackup(24 * time.Hour)
	if err != nil {
		t.Fatalf("AutoBackup failed: %v", err)
	}
	if third == "" {
		t.Error("expected a backup once the newest is older than minAge")
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want time.Time
	}{
		{"fitlog-20240305-1200.db", true, time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)},
		{"fitlog-20240305-120045.db", true, time.Date(2024, 3, 5, 12, 0, 45, 0, time.Local)},
		{"fitlog-20240305-120045-3.db", true, time.Date(2024, 3, 5, 12, 0, 45, 0, time.Local)},
		{"fitlog-20240305-120045-x.db", false, time.Time{}},
		{"other-20240305-1200.db", false, time.Time{}},
		{"fitlog-20240305-1200.json", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBackupName(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseBackupName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseBackupName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
