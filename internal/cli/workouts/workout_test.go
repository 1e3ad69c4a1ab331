package workouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/config"
	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/storage/sqlite"
	"github.com/julianstephens/fitlog/internal/utils"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	var out bytes.Buffer
	ctx := cli.NewContext(store, config.Default())
	ctx.Out = &out

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, &out, cleanup
}

func TestWorkoutAddAndList(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	add := &WorkoutAddCmd{Category: "leg day", Date: "2024-03-05", Notes: "squats"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("workout add failed: %v", err)
	}
	if err := (&WorkoutAddCmd{Category: "walk", Date: "2024-03-05"}).Run(ctx); err != nil {
		t.Fatalf("workout add failed: %v", err)
	}

	out.Reset()
	list := &WorkoutListCmd{Date: "2024-03-05", Output: cli.OutputJSON}
	if err := list.Run(ctx); err != nil {
		t.Fatalf("workout list failed: %v", err)
	}

	var entries []models.WorkoutEntry
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, out.String())
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Category != constants.CategoryLegDay || entries[0].Notes != "squats" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Category != constants.CategoryWalk10k {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}

	out.Reset()
	if err := (&WorkoutListCmd{Date: "2024-03-05", Output: cli.OutputText}).Run(ctx); err != nil {
		t.Fatalf("workout list failed: %v", err)
	}
	if !strings.Contains(out.String(), "800 kcal") {
		t.Errorf("expected total of 800 kcal in text output, got:\n%s", out.String())
	}
}

func TestWorkoutAddRejectsBadInput(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	tomorrow := utils.DateKey(ctx.Now().AddDate(0, 0, 1))

	tests := []struct {
		name string
		cmd  *WorkoutAddCmd
		want error
	}{
		{name: "unknown category", cmd: &WorkoutAddCmd{Category: "swimming"}},
		{name: "invalid date", cmd: &WorkoutAddCmd{Category: "yoga", Date: "03/05/2024"}},
		{name: "future date", cmd: &WorkoutAddCmd{Category: "yoga", Date: tomorrow}, want: ErrFutureDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWorkoutAddDefaultsToToday(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&WorkoutAddCmd{Category: "core"}).Run(ctx); err != nil {
		t.Fatalf("workout add failed: %v", err)
	}

	entries, err := ctx.Records.WorkoutsOn(utils.DateKey(ctx.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Category != constants.CategoryCore {
		t.Errorf("expected one Core entry today, got %+v", entries)
	}
}

func TestWorkoutDelete(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, c := range []string{"yoga", "core", "cycling"} {
		if err := (&WorkoutAddCmd{Category: c, Date: "2024-03-05"}).Run(ctx); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&WorkoutDeleteCmd{Index: 2, Date: "2024-03-05"}).Run(ctx); err != nil {
		t.Fatalf("workout delete failed: %v", err)
	}

	entries, err := ctx.Records.WorkoutsOn("2024-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Category != constants.CategoryYoga || entries[1].Category != constants.CategoryCycling {
		t.Errorf("unexpected entries after delete: %+v", entries)
	}

	if err := (&WorkoutDeleteCmd{Index: 3, Date: "2024-03-05"}).Run(ctx); err == nil {
		t.Error("expected error deleting a missing entry")
	}
	if err := (&WorkoutDeleteCmd{Index: 0, Date: "2024-03-05"}).Run(ctx); err == nil {
		t.Error("expected error deleting entry 0")
	}
}

func TestWorkoutListEmpty(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&WorkoutListCmd{Date: "2024-03-05", Output: cli.OutputJSON}).Run(ctx); err != nil {
		t.Fatalf("workout list failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %q", out.String())
	}
}
