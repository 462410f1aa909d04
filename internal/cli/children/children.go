package children

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/models"
)

type ChildAddCmd struct {
	Name   string `arg:"" help:"Child name."`
	Avatar string `help:"Avatar emoji or image reference."`
}

func (c *ChildAddCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	child, err := ctx.Service.AddChild(familyID, c.Name, c.Avatar)
	if err != nil {
		return fmt.Errorf("failed to add child: %w", err)
	}
	fmt.Printf("Added child: %s (ID: %s)\n", child.Name, child.ID)
	return nil
}

type ChildListCmd struct{}

func (c *ChildListCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	children, err := ctx.Service.Children(familyID)
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}
	if len(children) == 0 {
		fmt.Println("No children found. Add one with 'habitus child add <name>'.")
		return nil
	}
	for _, child := range children {
		fmt.Printf("%s %s  %s  %d habit(s) %s\n",
			child.Avatar, child.Name,
			cli.StarStyle.Render(fmt.Sprintf("%d★", child.Stars)),
			len(child.Habits),
			cli.MutedStyle.Render("("+child.ID+")"))
	}
	return nil
}

type ChildShowCmd struct {
	ID string `arg:"" help:"Child ID."`
}

func (c *ChildShowCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	child, err := ctx.Service.Child(familyID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find child with ID %s: %w", c.ID, err)
	}

	fmt.Println(cli.TitleStyle.Render(child.Name))
	fmt.Printf("Stars: %s\n", cli.StarStyle.Render(fmt.Sprintf("%d★", child.Stars)))
	if len(child.Habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}
	today := ctx.Service.Today()
	fmt.Println("\nHabits:")
	for _, h := range child.Habits {
		printHabit(h, today)
	}
	return nil
}

func printHabit(h models.Habit, today string) {
	fmt.Printf("  %s %s  %s  %s %s\n",
		cli.FormatStatus(h, today), h.Name,
		cli.FormatSchedule(h.Schedule),
		cli.FormatReward(h.Reward),
		cli.MutedStyle.Render("("+h.ID+")"))
}

type ChildEditCmd struct {
	ID     string  `arg:"" help:"Child ID."`
	Name   *string `help:"New name."`
	Avatar *string `help:"New avatar."`
	Stars  *int    `help:"Set the star balance directly."`
}

func (c *ChildEditCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	if c.Name == nil && c.Avatar == nil && c.Stars == nil {
		fmt.Println("No changes specified.")
		return nil
	}
	child, err := ctx.Service.UpdateChild(familyID, c.ID, app.ChildProfile{
		Name:   c.Name,
		Avatar: c.Avatar,
		Stars:  c.Stars,
	})
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	fmt.Printf("Updated child: %s (%d★)\n", child.Name, child.Stars)
	return nil
}

type ChildDeleteCmd struct {
	ID  string `arg:"" help:"Child ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ChildDeleteCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	child, err := ctx.Service.Child(familyID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find child with ID %s: %w", c.ID, err)
	}

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Delete %s and all of their habits?", child.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Service.DeleteChild(familyID, c.ID); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	fmt.Printf("Deleted child: %s (ID: %s)\n", child.Name, c.ID)
	return nil
}
