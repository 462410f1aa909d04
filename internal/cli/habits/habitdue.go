package habits

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/utils"
)

type HabitDueCmd struct {
	Child string `arg:"" help:"Child ID."`
	Date  string `short:"d" help:"Day to show (YYYY-MM-DD). Defaults to today."`
	Week  bool   `help:"Show the Monday to Sunday week containing the day."`
}

func (c *HabitDueCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	day, err := cli.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	if day == "" {
		day = ctx.Service.Today()
	}

	if c.Week {
		week, err := ctx.Service.Week(familyID, c.Child, day)
		if err != nil {
			return fmt.Errorf("failed to build week: %w", err)
		}
		for _, d := range week {
			date, _ := utils.ParseDate(d.Date)
			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s", date.Weekday().String()[:3], d.Date)))
			if len(d.Habits) == 0 {
				fmt.Println(cli.MutedStyle.Render("  nothing due"))
			}
			for _, h := range d.Habits {
				fmt.Printf("  %s %s\n", cli.FormatStatus(h, d.Date), h.Name)
			}
		}
		return nil
	}

	due, err := ctx.Service.DueHabits(familyID, c.Child, day)
	if err != nil {
		return fmt.Errorf("failed to list due habits: %w", err)
	}
	fmt.Println(cli.TitleStyle.Render("Due on " + day))
	if len(due) == 0 {
		fmt.Println("Nothing due.")
		return nil
	}
	for _, h := range due {
		fmt.Printf("  %s %s  %s %s\n",
			cli.FormatStatus(h, day), h.Name,
			cli.FormatReward(h.Reward),
			cli.MutedStyle.Render("("+h.ID+")"))
	}
	return nil
}
