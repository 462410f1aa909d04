package system

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/cli"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}

	result, err := ctx.Service.Audit(familyID)
	if err != nil {
		return fmt.Errorf("failed to audit family: %w", err)
	}

	fmt.Println(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("found %d problem(s)", len(result.Conflicts))
	}
	return nil
}
