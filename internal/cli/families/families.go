package families

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/cli"
)

type FamilyAddCmd struct {
	Name string `arg:"" help:"Family name."`
	Use  bool   `help:"Make the new family the default."`
}

func (c *FamilyAddCmd) Run(ctx *cli.Context) error {
	family, err := ctx.Service.CreateFamily(c.Name)
	if err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}
	fmt.Printf("Added family: %s (ID: %s)\n", family.Name, family.ID)

	if c.Use {
		return useFamily(ctx, family.ID)
	}
	return nil
}

type FamilyListCmd struct{}

func (c *FamilyListCmd) Run(ctx *cli.Context) error {
	families, err := ctx.Service.Families()
	if err != nil {
		return fmt.Errorf("failed to list families: %w", err)
	}
	if len(families) == 0 {
		fmt.Println("No families found. Add one with 'habitus family add <name>'.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	for _, f := range families {
		marker := "  "
		if f.ID == settings.DefaultFamilyID {
			marker = cli.SuccessStyle.Render("* ")
		}
		fmt.Printf("%s%s %s\n", marker, f.Name, cli.MutedStyle.Render("("+f.ID+")"))
	}
	return nil
}

type FamilyUseCmd struct {
	ID string `arg:"" help:"Family ID to select by default."`
}

func (c *FamilyUseCmd) Run(ctx *cli.Context) error {
	return useFamily(ctx, c.ID)
}

func useFamily(ctx *cli.Context, id string) error {
	family, err := ctx.Service.Family(id)
	if err != nil {
		return fmt.Errorf("failed to find family with ID %s: %w", id, err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.DefaultFamilyID = family.ID
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("Default family set to: %s\n", family.Name)
	return nil
}
