package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage/sqlite"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"mon,wed", []time.Weekday{time.Monday, time.Wednesday}, false},
		{"Seg, Qua , sex", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, false},
		{"0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"mon,monday,1", []time.Weekday{time.Monday}, false},
		{"7", nil, true},
		{"someday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseWeekdays(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatSchedule(t *testing.T) {
	tests := []struct {
		schedule models.Schedule
		want     string
	}{
		{models.Schedule{Type: constants.ScheduleDaily}, "daily"},
		{models.Schedule{Type: constants.ScheduleWeekly, Days: []time.Weekday{time.Wednesday, time.Monday}}, "weekly on Mon,Wed"},
		{models.Schedule{Type: constants.ScheduleMonthly, DayOfMonth: 15}, "monthly on day 15"},
		{models.Schedule{Type: constants.ScheduleMonthly}, "monthly (every day)"},
		{models.Schedule{Type: constants.ScheduleOnce, Date: "2024-07-01"}, "once on 2024-07-01"},
		{models.Schedule{Type: constants.ScheduleLegacy}, "legacy"},
	}
	for _, tt := range tests {
		if got := FormatSchedule(tt.schedule); got != tt.want {
			t.Errorf("FormatSchedule(%+v) = %q, want %q", tt.schedule, got, tt.want)
		}
	}
}

func TestFormatLimit(t *testing.T) {
	if got := FormatLimit(nil); got != "" {
		t.Errorf("FormatLimit(nil) = %q", got)
	}
	if got := FormatLimit(&models.RewardLimit{Period: constants.LimitWeek, Count: 2}); !strings.Contains(got, "2x per week") {
		t.Errorf("FormatLimit(week) = %q", got)
	}
}

func TestResolveDay(t *testing.T) {
	if day, err := ResolveDay(""); err != nil || day != "" {
		t.Errorf("ResolveDay(\"\") = %q, %v", day, err)
	}
	if _, err := ResolveDay("06/03/2024"); err == nil {
		t.Error("ResolveDay() expected error for bad format")
	}
}

func TestFamilyID(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	ctx := &Context{Store: store}
	if _, err := ctx.FamilyID(); err == nil {
		t.Error("FamilyID() expected error with no default family")
	}

	settings, _ := store.GetSettings()
	settings.DefaultFamilyID = "fam-default"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	if id, err := ctx.FamilyID(); err != nil || id != "fam-default" {
		t.Errorf("FamilyID() = %q, %v", id, err)
	}

	ctx.Family = "fam-flag"
	if id, _ := ctx.FamilyID(); id != "fam-flag" {
		t.Errorf("FamilyID() with flag = %q", id)
	}
}
