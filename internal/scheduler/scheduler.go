package scheduler

import (
	"time"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/utils"
)

// DaySchedule lists the habits due on a single day
type DaySchedule struct {
	Date   string         `json:"date"`
	Habits []models.Habit `json:"habits"`
}

// Scheduler resolves which habits are due on a given day. It holds no state
// and every method is a pure function of its arguments.
type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// DueHabits returns the child's habits due on day, in the child's habit order.
// The only error is a malformed day string.
func (s *Scheduler) DueHabits(child models.Child, day string) ([]models.Habit, error) {
	date, err := utils.ParseDate(day)
	if err != nil {
		return nil, err
	}

	due := []models.Habit{}
	for _, habit := range child.Habits {
		if isDue(habit, date, day) {
			due = append(due, habit)
		}
	}
	return due, nil
}

// IsDue reports whether a single habit is due on day.
func (s *Scheduler) IsDue(habit models.Habit, day string) (bool, error) {
	date, err := utils.ParseDate(day)
	if err != nil {
		return false, err
	}
	return isDue(habit, date, day), nil
}

// DueHabitsBetween resolves every day from..to inclusive.
func (s *Scheduler) DueHabitsBetween(child models.Child, from, to string) ([]DaySchedule, error) {
	days, err := utils.DaysBetween(from, to)
	if err != nil {
		return nil, err
	}

	out := make([]DaySchedule, 0, len(days))
	for _, day := range days {
		due, err := s.DueHabits(child, day)
		if err != nil {
			return nil, err
		}
		out = append(out, DaySchedule{Date: day, Habits: due})
	}
	return out, nil
}

// WeekOf resolves Monday..Sunday of the week containing day.
func (s *Scheduler) WeekOf(child models.Child, day string) ([]DaySchedule, error) {
	date, err := utils.ParseDate(day)
	if err != nil {
		return nil, err
	}
	start := utils.WeekStart(date)
	return s.DueHabitsBetween(child, utils.FormatDate(start), utils.FormatDate(utils.AddDays(start, 6)))
}

// isDue applies the schedule rules. day must be date formatted as YYYY-MM-DD;
// start dates are compared as strings, which orders correctly in that format.
func isDue(habit models.Habit, date time.Time, day string) bool {
	// A skip hides the habit for that day whatever its schedule says
	if status, ok := habit.Status(day); ok && status == constants.StatusSkipped {
		return false
	}

	schedule := habit.Schedule.Normalized()

	if schedule.Type == constants.ScheduleOnce {
		return schedule.Date == day
	}

	if habit.StartDate != "" && habit.StartDate > day {
		return false
	}

	switch schedule.Type {
	case constants.ScheduleDaily:
		return true
	case constants.ScheduleWeekly:
		for _, wd := range schedule.Days {
			if date.Weekday() == wd {
				return true
			}
		}
		return false
	case constants.ScheduleMonthly:
		// Monthly habits saved without a day of month are due every day once
		// started. Kept for records written by older clients.
		if schedule.DayOfMonth == 0 {
			return true
		}
		return date.Day() == schedule.DayOfMonth
	default:
		// Legacy records carry no schedule type: due only when never given a
		// start date. Reaching here means StartDate is empty or already passed.
		return habit.StartDate == ""
	}
}
