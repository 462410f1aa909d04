package habits

import (
	"testing"
	"time"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/cli/clitest"
	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/errors"
	"github.com/julianstephens/habitus/internal/models"
)

// 2024-06-03 is a Monday
const today = "2024-06-03"

func addHabit(t *testing.T, ctx *cli.Context, childID string, cmd HabitAddCmd) models.Habit {
	t.Helper()
	cmd.Children = []string{childID}
	if cmd.Schedule == "" {
		cmd.Schedule = "daily"
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	child, err := ctx.Service.Child(ctx.Family, childID)
	if err != nil {
		t.Fatalf("Child() error = %v", err)
	}
	return child.Habits[len(child.Habits)-1]
}

func TestHabitAddCmd(t *testing.T) {
	ctx := clitest.Setup(t, today)
	clitest.WithFamily(t, ctx, "Silva")
	child := clitest.WithChild(t, ctx, "Ana")

	habit := addHabit(t, ctx, child.ID, HabitAddCmd{
		Name:          "Read",
		ScheduleFlags: ScheduleFlags{Schedule: "weekly", Days: "mon,wed"},
		Stars:         2,
	})
	if habit.Schedule.Type != constants.ScheduleWeekly {
		t.Errorf("Schedule.Type = %s, want WEEKLY", habit.Schedule.Type)
	}
	if len(habit.Schedule.Days) != 2 || habit.Schedule.Days[0] != time.Monday {
		t.Errorf("Schedule.Days = %v", habit.Schedule.Days)
	}
	if habit.Reward.Type != constants.RewardStars || habit.Reward.Value != 2 {
		t.Errorf("Reward = %+v", habit.Reward)
	}

	// Same name again, different case
	dup := HabitAddCmd{Name: " read ", Children: []string{child.ID}, ScheduleFlags: ScheduleFlags{Schedule: "daily"}}
	err := dup.Run(ctx)
	if !errors.IsNotApplied(err) {
		t.Errorf("duplicate add error = %v, want not applied", err)
	}
}

func TestHabitAddCmd_ScheduleFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   ScheduleFlags
		wantErr bool
	}{
		{"weekly without days", ScheduleFlags{Schedule: "weekly"}, true},
		{"weekly bad day", ScheduleFlags{Schedule: "weekly", Days: "funday"}, true},
		{"once without date", ScheduleFlags{Schedule: "once"}, true},
		{"monthly out of range", ScheduleFlags{Schedule: "monthly", DayOfMonth: 32}, true},
		{"monthly every day", ScheduleFlags{Schedule: "monthly"}, false},
		{"once", ScheduleFlags{Schedule: "once", Date: "2024-07-01"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.build()
			if (err != nil) != tt.wantErr {
				t.Errorf("build() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHabitAddCmd_ActivityAndAssign(t *testing.T) {
	ctx := clitest.Setup(t, today)
	clitest.WithFamily(t, ctx, "Silva")
	ana := clitest.WithChild(t, ctx, "Ana")
	leo := clitest.WithChild(t, ctx, "Leo")

	addHabit(t, ctx, leo.ID, HabitAddCmd{Name: "Brush teeth"})

	cmd := &HabitAddCmd{
		Name:          "Brush teeth",
		Children:      []string{ana.ID, leo.ID},
		ScheduleFlags: ScheduleFlags{Schedule: "daily"},
		Activity:      "15 min cartoons",
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit assign failed: %v", err)
	}

	got, _ := ctx.Service.Child(ctx.Family, ana.ID)
	if len(got.Habits) != 1 || got.Habits[0].Reward.Type != constants.RewardActivity {
		t.Fatalf("Ana habits = %+v", got.Habits)
	}
	got, _ = ctx.Service.Child(ctx.Family, leo.ID)
	if len(got.Habits) != 1 {
		t.Errorf("Leo should keep a single habit, got %d", len(got.Habits))
	}

	// Nobody receives it the second time
	if err := cmd.Run(ctx); !errors.IsNotApplied(err) {
		t.Errorf("second assign error = %v, want not applied", err)
	}
}

func TestHabitToggleCmd(t *testing.T) {
	ctx := clitest.Setup(t, today)
	clitest.WithFamily(t, ctx, "Silva")
	child := clitest.WithChild(t, ctx, "Ana")
	habit := addHabit(t, ctx, child.ID, HabitAddCmd{Name: "Read", Stars: 3})

	toggle := &HabitToggleCmd{MarkArgs{Child: child.ID, ID: habit.ID}}
	if err := toggle.Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	got, _ := ctx.Service.Child(ctx.Family, child.ID)
	if got.Stars != 3 {
		t.Errorf("Stars = %d, want 3", got.Stars)
	}

	if err := toggle.Run(ctx); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	got, _ = ctx.Service.Child(ctx.Family, child.ID)
	if got.Stars != 0 {
		t.Errorf("Stars = %d after undo, want 0", got.Stars)
	}

	bad := &HabitToggleCmd{MarkArgs{Child: child.ID, ID: habit.ID, Date: "03/06/2024"}}
	if err := bad.Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestHabitRequestRejectSkip(t *testing.T) {
	ctx := clitest.Setup(t, today)
	clitest.WithFamily(t, ctx, "Silva")
	child := clitest.WithChild(t, ctx, "Ana")
	habit := addHabit(t, ctx, child.ID, HabitAddCmd{Name: "Read", Stars: 1})
	args := MarkArgs{Child: child.ID, ID: habit.ID}

	if err := (&HabitRequestCmd{args}).Run(ctx); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := (&HabitRequestCmd{args}).Run(ctx); !errors.IsNotApplied(err) {
		t.Errorf("second request error = %v, want not applied", err)
	}
	if err := (&HabitRejectCmd{args}).Run(ctx); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if err := (&HabitRejectCmd{args}).Run(ctx); !errors.IsNotApplied(err) {
		t.Errorf("reject on untouched day error = %v, want not applied", err)
	}

	if err := (&HabitSkipCmd{args}).Run(ctx); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	got, _ := ctx.Service.Child(ctx.Family, child.ID)
	if status, _ := got.Habits[0].Status(today); status != constants.StatusSkipped {
		t.Errorf("status = %s, want SKIPPED", status)
	}
	if got.Stars != 0 {
		t.Errorf("Stars = %d, want 0", got.Stars)
	}
}

func TestHabitEditCmd(t *testing.T) {
	ctx := clitest.Setup(t, today)
	clitest.WithFamily(t, ctx, "Silva")
	child := clitest.WithChild(t, ctx, "Ana")
	read := addHabit(t, ctx, child.ID, HabitAddCmd{Name: "Read", Stars: 1})
	addHabit(t, ctx, child.ID, HabitAddCmd{Name: "Walk dog"})

	name := "Read a book"
	schedule := "weekly"
	days := "sat,sun"
	stars := 5
	cmd := &HabitEditCmd{Child: child.ID, ID: read.ID, Name: &name, Schedule: &schedule, Days: &days, Stars: &stars}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit edit failed: %v", err)
	}
	got, _ := ctx.Service.Child(ctx.Family, child.ID)
	h := got.Habits[got.FindHabit(read.ID)]
	if h.Name != name || h.Schedule.Type != constants.ScheduleWeekly || h.Reward.Value != 5 {
		t.Errorf("edited habit = %+v", h)
	}

	clash := "walk DOG"
	if err := (&HabitEditCmd{Child: child.ID, ID: read.ID, Name: &clash}).Run(ctx); !errors.IsNotApplied(err) {
		t.Errorf("rename onto existing name error = %v, want not applied", err)
	}

	if err := (&HabitEditCmd{Child: child.ID, ID: "missing", Name: &name}).Run(ctx); err == nil {
		t.Error("expected error editing a missing habit")
	}
}

func TestHabitDueAndDelete(t *testing.T) {
	ctx := clitest.Setup(t, today)
	clitest.WithFamily(t, ctx, "Silva")
	child := clitest.WithChild(t, ctx, "Ana")
	habit := addHabit(t, ctx, child.ID, HabitAddCmd{Name: "Read"})

	if err := (&HabitDueCmd{Child: child.ID}).Run(ctx); err != nil {
		t.Errorf("habit due failed: %v", err)
	}
	if err := (&HabitDueCmd{Child: child.ID, Date: "2024-06-05", Week: true}).Run(ctx); err != nil {
		t.Errorf("habit due --week failed: %v", err)
	}
	if err := (&HabitDueCmd{Child: child.ID, Date: "bad"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}

	if err := (&HabitDeleteCmd{Child: child.ID, ID: habit.ID}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	got, _ := ctx.Service.Child(ctx.Family, child.ID)
	if len(got.Habits) != 0 {
		t.Errorf("expected no habits after delete, got %d", len(got.Habits))
	}
}
