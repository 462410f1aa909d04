package settings

import (
	"testing"

	"github.com/julianstephens/habitus/internal/cli/clitest"
	"github.com/julianstephens/habitus/internal/constants"
)

func TestSettingsCmd_List(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_UpdateTimezone(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")

	tz := "UTC"
	if err := (&SettingsCmd{Timezone: &tz}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if settings.Timezone != tz {
		t.Errorf("expected Timezone to be %s, got %s", tz, settings.Timezone)
	}
}

func TestSettingsCmd_InvalidTimezone(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")

	tz := "Mars/Olympus"
	if err := (&SettingsCmd{Timezone: &tz}).Run(ctx); err == nil {
		t.Error("expected error for invalid timezone")
	}

	settings, _ := ctx.Store.GetSettings()
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("timezone changed to %s after failed update", settings.Timezone)
	}
}

func TestSettingsCmd_DefaultFamily(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")
	family := clitest.WithFamily(t, ctx, "Silva")

	missing := "missing"
	if err := (&SettingsCmd{DefaultFamily: &missing}).Run(ctx); err == nil {
		t.Error("expected error for unknown family")
	}

	if err := (&SettingsCmd{DefaultFamily: &family.ID}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	settings, _ := ctx.Store.GetSettings()
	if settings.DefaultFamilyID != family.ID {
		t.Errorf("DefaultFamilyID = %q, want %q", settings.DefaultFamilyID, family.ID)
	}

	empty := ""
	if err := (&SettingsCmd{DefaultFamily: &empty}).Run(ctx); err != nil {
		t.Fatalf("clearing default family failed: %v", err)
	}
	settings, _ = ctx.Store.GetSettings()
	if settings.DefaultFamilyID != "" {
		t.Errorf("DefaultFamilyID = %q, want cleared", settings.DefaultFamilyID)
	}
}
