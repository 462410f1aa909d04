package models

import (
	"strings"
	"time"

	"github.com/julianstephens/habitus/internal/constants"
)

// Schedule is the recurrence rule of a habit. Which fields are meaningful
// depends on Type: Days for weekly, DayOfMonth for monthly (0 means unset),
// Date for once.
type Schedule struct {
	Type       constants.ScheduleType `json:"type"`
	Days       []time.Weekday         `json:"days,omitempty"`
	DayOfMonth int                    `json:"dayOfMonth,omitempty" validate:"gte=0,lte=31"`
	Date       string                 `json:"date,omitempty"` // YYYY-MM-DD format
}

// Normalized returns the schedule with unknown or missing types mapped to
// ScheduleLegacy.
func (s Schedule) Normalized() Schedule {
	switch s.Type {
	case constants.ScheduleDaily, constants.ScheduleWeekly, constants.ScheduleMonthly, constants.ScheduleOnce:
		return s
	default:
		s.Type = constants.ScheduleLegacy
		return s
	}
}

// Reward is what completing a habit pays out.
type Reward struct {
	Type  constants.RewardType `json:"type" validate:"omitempty,oneof=STARS ACTIVITY"`
	Value int                  `json:"value" validate:"gte=0"`
	Label string               `json:"label,omitempty"`
}

// Habit represents a recurring or one-off task assigned to a child
type Habit struct {
	ID          string                                `json:"id"`
	Name        string                                `json:"name" validate:"required,max=80"`
	Icon        string                                `json:"icon,omitempty"`
	Category    string                                `json:"category,omitempty"`
	Schedule    Schedule                              `json:"schedule"`
	Reward      Reward                                `json:"reward"`
	StartDate   string                                `json:"startDate,omitempty"` // YYYY-MM-DD format
	Completions map[string]constants.CompletionStatus `json:"completions,omitempty"`
	CreatedAt   time.Time                             `json:"createdAt"`
}

// NameKey is the comparison key used for per-child name uniqueness.
func (h Habit) NameKey() string {
	return NormalizeName(h.Name)
}

// NormalizeName trims and lowercases a habit name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Status returns the completion status for day and whether one is recorded.
func (h Habit) Status(day string) (constants.CompletionStatus, bool) {
	status, ok := h.Completions[day]
	return status, ok
}

// Clone returns a deep copy of the habit.
func (h Habit) Clone() Habit {
	out := h
	if h.Schedule.Days != nil {
		out.Schedule.Days = append([]time.Weekday(nil), h.Schedule.Days...)
	}
	if h.Completions != nil {
		out.Completions = make(map[string]constants.CompletionStatus, len(h.Completions))
		for day, status := range h.Completions {
			out.Completions[day] = status
		}
	}
	return out
}
