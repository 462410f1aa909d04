package habits

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/errors"
	"github.com/julianstephens/habitus/internal/models"
)

type HabitEditCmd struct {
	Child string `arg:"" help:"Child ID."`
	ID    string `arg:"" help:"Habit ID to edit."`

	Name       *string `help:"New name."`
	Schedule   *string `help:"New schedule type (daily|weekly|monthly|once)."`
	Days       *string `help:"New weekdays for weekly habits."`
	DayOfMonth *int    `help:"New day of month for monthly habits."`
	Date       *string `help:"New date for one-off habits."`
	Stars      *int    `help:"Pay this many stars on completion."`
	Activity   *string `help:"Pay with this activity instead of stars."`
	Start      *string `help:"New start date (YYYY-MM-DD). Pass an empty value to clear."`
	Icon       *string `help:"New icon."`
	Category   *string `help:"New category."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	child, err := ctx.Service.Child(familyID, c.Child)
	if err != nil {
		return fmt.Errorf("failed to find child with ID %s: %w", c.Child, err)
	}
	idx := child.FindHabit(c.ID)
	if idx < 0 {
		return fmt.Errorf("failed to find habit with ID %s", c.ID)
	}

	habit, err := c.apply(child.Habits[idx])
	if err != nil {
		return err
	}

	updated, ok, err := ctx.Service.UpdateHabit(familyID, c.Child, habit)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if !ok {
		return errors.NotApplied("%s already has a habit named %q", child.Name, habit.Name)
	}
	h := updated.Habits[updated.FindHabit(c.ID)]
	fmt.Printf("Updated habit: %s (%s, %s)\n", h.Name, cli.FormatSchedule(h.Schedule), cli.FormatReward(h.Reward))
	return nil
}

// apply overlays the given flags on the current habit definition.
func (c *HabitEditCmd) apply(habit models.Habit) (models.Habit, error) {
	habit = habit.Clone()
	if c.Name != nil {
		habit.Name = *c.Name
	}
	if c.Icon != nil {
		habit.Icon = *c.Icon
	}
	if c.Category != nil {
		habit.Category = *c.Category
	}
	if c.Start != nil {
		habit.StartDate = *c.Start
	}

	if c.Schedule != nil || c.Days != nil || c.DayOfMonth != nil || c.Date != nil {
		flags := ScheduleFlags{
			Schedule:   string(habit.Schedule.Type),
			DayOfMonth: habit.Schedule.DayOfMonth,
			Date:       habit.Schedule.Date,
		}
		if c.Schedule != nil {
			flags.Schedule = *c.Schedule
		}
		if c.Days != nil {
			flags.Days = *c.Days
		} else if len(habit.Schedule.Days) > 0 {
			flags.Days = weekdayList(habit.Schedule.Days)
		}
		if c.DayOfMonth != nil {
			flags.DayOfMonth = *c.DayOfMonth
		}
		if c.Date != nil {
			flags.Date = *c.Date
		}
		schedule, err := flags.build()
		if err != nil {
			return habit, err
		}
		habit.Schedule = schedule
	}

	if c.Stars != nil {
		if *c.Stars < 0 {
			return habit, fmt.Errorf("stars cannot be negative")
		}
		habit.Reward = models.Reward{Type: constants.RewardStars, Value: *c.Stars}
	}
	if c.Activity != nil {
		habit.Reward = models.Reward{Type: constants.RewardActivity, Label: *c.Activity}
	}
	return habit, nil
}

func weekdayList(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, wd := range days {
		parts[i] = strconv.Itoa(int(wd))
	}
	return strings.Join(parts, ",")
}

type HabitDeleteCmd struct {
	Child string `arg:"" help:"Child ID."`
	ID    string `arg:"" help:"Habit ID to delete."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	child, err := ctx.Service.Child(familyID, c.Child)
	if err != nil {
		return fmt.Errorf("failed to find child with ID %s: %w", c.Child, err)
	}
	idx := child.FindHabit(c.ID)
	if idx < 0 {
		return fmt.Errorf("failed to find habit with ID %s", c.ID)
	}
	name := child.Habits[idx].Name

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Delete %q and its completion history?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if _, ok, err := ctx.Service.DeleteHabit(familyID, c.Child, c.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	} else if !ok {
		return errors.NotApplied("habit %s was already removed", c.ID)
	}
	fmt.Printf("Deleted habit: %s (ID: %s)\n", name, c.ID)
	return nil
}
