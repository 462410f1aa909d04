package habits

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/errors"
	"github.com/julianstephens/habitus/internal/models"
)

// MarkArgs identifies one habit on one day.
type MarkArgs struct {
	Child string `arg:"" help:"Child ID."`
	ID    string `arg:"" help:"Habit ID."`
	Date  string `short:"d" help:"Day (YYYY-MM-DD). Defaults to today."`
}

type markFunc func(svc *app.Service, familyID, childID, habitID, day string) (models.Child, bool, error)

func (a MarkArgs) mark(ctx *cli.Context, action string, fn markFunc) (models.Habit, string, error) {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return models.Habit{}, "", err
	}
	day, err := cli.ResolveDay(a.Date)
	if err != nil {
		return models.Habit{}, "", err
	}
	if day == "" {
		day = ctx.Service.Today()
	}

	child, ok, err := fn(ctx.Service, familyID, a.Child, a.ID, day)
	if err != nil {
		return models.Habit{}, "", fmt.Errorf("failed to %s habit: %w", action, err)
	}
	idx := child.FindHabit(a.ID)
	if idx < 0 {
		return models.Habit{}, "", fmt.Errorf("failed to find habit with ID %s", a.ID)
	}
	habit := child.Habits[idx]
	if !ok {
		status, has := habit.Status(day)
		if !has {
			status = "untouched"
		}
		return habit, day, errors.NotApplied("cannot %s %q on %s (currently %s)", action, habit.Name, day, status)
	}
	fmt.Printf("%s %s on %s  %s\n", cli.FormatStatus(habit, day), habit.Name, day,
		cli.StarStyle.Render(fmt.Sprintf("%d★", child.Stars)))
	return habit, day, nil
}

type HabitToggleCmd struct {
	MarkArgs `embed:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	_, _, err := c.mark(ctx, "toggle", (*app.Service).ToggleCompletion)
	return err
}

type HabitRequestCmd struct {
	MarkArgs `embed:""`
}

func (c *HabitRequestCmd) Run(ctx *cli.Context) error {
	habit, day, err := c.mark(ctx, "request", (*app.Service).RequestCompletion)
	if err == nil {
		if status, _ := habit.Status(day); status == constants.StatusPending {
			fmt.Println(cli.MutedStyle.Render("Waiting for a parent to approve."))
		}
	}
	return err
}

type HabitRejectCmd struct {
	MarkArgs `embed:""`
}

func (c *HabitRejectCmd) Run(ctx *cli.Context) error {
	_, _, err := c.mark(ctx, "reject", (*app.Service).RejectCompletion)
	return err
}

type HabitSkipCmd struct {
	MarkArgs `embed:""`
}

func (c *HabitSkipCmd) Run(ctx *cli.Context) error {
	_, _, err := c.mark(ctx, "skip", (*app.Service).SkipForDate)
	return err
}
