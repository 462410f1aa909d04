package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	StarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)
)

// FormatSchedule renders a schedule for list output.
func FormatSchedule(s models.Schedule) string {
	switch s.Type {
	case constants.ScheduleDaily:
		return "daily"
	case constants.ScheduleWeekly:
		if len(s.Days) == 0 {
			return "weekly (no days)"
		}
		days := append(s.Days[:0:0], s.Days...)
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		names := make([]string, len(days))
		for i, wd := range days {
			names[i] = wd.String()[:3]
		}
		return "weekly on " + strings.Join(names, ",")
	case constants.ScheduleMonthly:
		if s.DayOfMonth == 0 {
			return "monthly (every day)"
		}
		return fmt.Sprintf("monthly on day %d", s.DayOfMonth)
	case constants.ScheduleOnce:
		return "once on " + s.Date
	default:
		return "legacy"
	}
}

// FormatReward renders what a habit pays.
func FormatReward(r models.Reward) string {
	if r.Type == constants.RewardActivity {
		if r.Label != "" {
			return "activity: " + r.Label
		}
		return "activity"
	}
	return StarStyle.Render(fmt.Sprintf("+%d★", r.Value))
}

// FormatStatus renders a habit's status on a day.
func FormatStatus(h models.Habit, day string) string {
	status, ok := h.Status(day)
	if !ok {
		return "[ ]"
	}
	switch status {
	case constants.StatusCompleted:
		return SuccessStyle.Render("[x]")
	case constants.StatusPending:
		return WarningStyle.Render("[?]")
	case constants.StatusSkipped:
		return MutedStyle.Render("[-]")
	default:
		return "[ ]"
	}
}

// FormatLimit renders a reward limit, or "" when there is none.
func FormatLimit(l *models.RewardLimit) string {
	if !l.Active() {
		return ""
	}
	return fmt.Sprintf("%dx per %s", l.Count, strings.ToLower(string(l.Period)))
}
