package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/errors"
	"github.com/julianstephens/habitus/internal/models"
)

// ScheduleFlags are the schedule options shared by add and edit.
type ScheduleFlags struct {
	Schedule   string `short:"s" help:"Schedule type (daily|weekly|monthly|once)." default:"daily" enum:"daily,weekly,monthly,once"`
	Days       string `short:"w" help:"Comma-separated weekdays for weekly habits."`
	DayOfMonth int    `help:"Day of month (1-31) for monthly habits. Omit for every day of the month."`
	Date       string `help:"Date (YYYY-MM-DD) for one-off habits."`
}

func (f ScheduleFlags) build() (models.Schedule, error) {
	s := models.Schedule{Type: constants.ScheduleType(strings.ToUpper(f.Schedule))}
	switch s.Type {
	case constants.ScheduleWeekly:
		if f.Days == "" {
			return s, fmt.Errorf("--days is required for weekly habits")
		}
		days, err := cli.ParseWeekdays(f.Days)
		if err != nil {
			return s, err
		}
		s.Days = days
	case constants.ScheduleMonthly:
		if f.DayOfMonth < 0 || f.DayOfMonth > 31 {
			return s, fmt.Errorf("day of month must be between 1 and 31")
		}
		s.DayOfMonth = f.DayOfMonth
	case constants.ScheduleOnce:
		if f.Date == "" {
			return s, fmt.Errorf("--date is required for one-off habits")
		}
		s.Date = f.Date
	}
	return s, nil
}

type HabitAddCmd struct {
	Name     string   `arg:"" help:"Habit name."`
	Children []string `name:"child" short:"c" help:"Child ID. Repeat to assign the habit to several children." required:""`

	ScheduleFlags `embed:""`

	Stars    int    `help:"Stars paid on completion." default:"1"`
	Activity string `help:"Pay with an activity instead of stars (e.g. '30 min tablet')."`
	Start    string `help:"First day (YYYY-MM-DD) the habit is due. Ignored for one-off habits."`
	Icon     string `help:"Icon shown next to the habit."`
	Category string `help:"Free-form category."`
}

func (c *HabitAddCmd) Validate() error {
	if c.Stars < 0 {
		return fmt.Errorf("stars cannot be negative")
	}
	return nil
}

func (c *HabitAddCmd) habit() (models.Habit, error) {
	schedule, err := c.ScheduleFlags.build()
	if err != nil {
		return models.Habit{}, err
	}
	habit := models.Habit{
		Name:      c.Name,
		Icon:      c.Icon,
		Category:  c.Category,
		Schedule:  schedule,
		StartDate: c.Start,
		Reward:    models.Reward{Type: constants.RewardStars, Value: c.Stars},
	}
	if c.Activity != "" {
		habit.Reward = models.Reward{Type: constants.RewardActivity, Label: c.Activity}
	}
	return habit, nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	habit, err := c.habit()
	if err != nil {
		return err
	}

	if len(c.Children) == 1 {
		child, ok, err := ctx.Service.AddHabit(familyID, c.Children[0], habit)
		if err != nil {
			return fmt.Errorf("failed to add habit: %w", err)
		}
		if !ok {
			return errors.NotApplied("%s already has a habit named %q", child.Name, strings.TrimSpace(c.Name))
		}
		added := child.Habits[len(child.Habits)-1]
		fmt.Printf("Added habit: %s for %s (ID: %s)\n", added.Name, child.Name, added.ID)
		return nil
	}

	assigned, err := ctx.Service.AssignHabit(familyID, c.Children, habit)
	if err != nil {
		if len(assigned) > 0 {
			fmt.Printf("Assigned habit %q to: %s\n", strings.TrimSpace(c.Name), strings.Join(assigned, ", "))
		}
		return fmt.Errorf("failed to assign habit: %w", err)
	}
	if len(assigned) == 0 {
		return errors.NotApplied("every child already has a habit named %q", strings.TrimSpace(c.Name))
	}
	fmt.Printf("Assigned habit %q to %d of %d children\n", strings.TrimSpace(c.Name), len(assigned), len(c.Children))
	return nil
}
