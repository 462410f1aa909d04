package families

import (
	"testing"

	"github.com/julianstephens/habitus/internal/cli/clitest"
)

func TestFamilyAddCmd_Use(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")

	if err := (&FamilyAddCmd{Name: "Silva", Use: true}).Run(ctx); err != nil {
		t.Fatalf("family add failed: %v", err)
	}

	families, err := ctx.Service.Families()
	if err != nil || len(families) != 1 {
		t.Fatalf("Families() = %v, %v", families, err)
	}
	id, err := ctx.FamilyID()
	if err != nil {
		t.Fatalf("FamilyID() error = %v", err)
	}
	if id != families[0].ID {
		t.Errorf("default family = %q, want %q", id, families[0].ID)
	}

	if err := (&FamilyListCmd{}).Run(ctx); err != nil {
		t.Errorf("family list failed: %v", err)
	}
}

func TestFamilyAddCmd_EmptyName(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")
	if err := (&FamilyAddCmd{Name: "  "}).Run(ctx); err == nil {
		t.Error("expected error for blank family name")
	}
}

func TestFamilyUseCmd_Unknown(t *testing.T) {
	ctx := clitest.Setup(t, "2024-06-03")
	if err := (&FamilyUseCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected error selecting an unknown family")
	}
}
