// Package habits manages a child's habit collection and the per-day
// completion ledger of each habit.
package habits

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/rewards"
	"github.com/julianstephens/habitus/internal/utils"
)

// Tracker applies habit mutations to child snapshots. Each method returns a
// new child and whether anything changed; the input child is never modified.
type Tracker struct {
	ledger *rewards.Ledger
	clock  utils.Clock
	newID  func() string
}

func NewTracker(ledger *rewards.Ledger, clock utils.Clock) *Tracker {
	return &Tracker{
		ledger: ledger,
		clock:  clock,
		newID:  uuid.NewString,
	}
}

// AddHabit appends habit to the child. It is rejected when the trimmed name
// is empty or collides, case-insensitively, with an existing habit. A caller
// supplied ID is kept only if no habit of the child already uses it.
func (t *Tracker) AddHabit(child models.Child, habit models.Habit) (models.Child, bool) {
	if habit.ID != "" && child.FindHabit(habit.ID) >= 0 {
		habit.ID = ""
	}
	habit, ok := t.prepare(habit)
	if !ok || child.HasHabitNamed(habit.Name, "") {
		return child, false
	}

	out := child.Clone()
	out.Habits = append(out.Habits, habit)
	out.UpdatedAt = t.clock.Now()
	return out, true
}

// AddHabitToMultipleChildren adds the same habit definition to each child
// independently. Children that already have a habit with that name are left
// as they are. It returns every child (updated or not, in input order) and
// the IDs of the children that received the habit.
func (t *Tracker) AddHabitToMultipleChildren(children []models.Child, habit models.Habit) ([]models.Child, []string) {
	out := make([]models.Child, 0, len(children))
	assigned := []string{}
	for _, child := range children {
		// Every child gets its own copy with a distinct ID
		h := habit.Clone()
		h.ID = ""
		updated, ok := t.AddHabit(child, h)
		out = append(out, updated)
		if ok {
			assigned = append(assigned, child.ID)
		}
	}
	return out, assigned
}

// UpdateHabit replaces the definition of an existing habit while keeping its
// ID, creation time and completion ledger. An edit without a schedule type
// keeps the current schedule.
func (t *Tracker) UpdateHabit(child models.Child, habit models.Habit) (models.Child, bool) {
	idx := child.FindHabit(habit.ID)
	if idx < 0 {
		return child, false
	}
	name := strings.TrimSpace(habit.Name)
	if name == "" || child.HasHabitNamed(name, habit.ID) {
		return child, false
	}

	out := child.Clone()
	current := out.Habits[idx]
	updated := habit.Clone()
	updated.Name = name
	if updated.Schedule.Type == "" {
		updated.Schedule = current.Schedule
	}
	if updated.Reward.Type == "" {
		updated.Reward.Type = current.Reward.Type
	}
	updated.Schedule = updated.Schedule.Normalized()
	updated.CreatedAt = current.CreatedAt
	updated.Completions = current.Completions
	if updated.Schedule.Type == constants.ScheduleOnce {
		updated.StartDate = ""
	}
	out.Habits[idx] = updated
	out.UpdatedAt = t.clock.Now()
	return out, true
}

// DeleteHabit removes a habit and its whole ledger.
func (t *Tracker) DeleteHabit(child models.Child, habitID string) (models.Child, bool) {
	idx := child.FindHabit(habitID)
	if idx < 0 {
		return child, false
	}
	out := child.Clone()
	out.Habits = append(out.Habits[:idx], out.Habits[idx+1:]...)
	out.UpdatedAt = t.clock.Now()
	return out, true
}

// RequestCompletion marks an untouched day as pending review. Days that
// already carry any status are left alone.
func (t *Tracker) RequestCompletion(child models.Child, habitID, day string) (models.Child, bool) {
	return t.transition(child, habitID, day, func(h *models.Habit) bool {
		if _, ok := h.Status(day); ok {
			return false
		}
		h.Completions[day] = constants.StatusPending
		return true
	})
}

// RejectCompletion clears a pending day. Other statuses are left alone.
func (t *Tracker) RejectCompletion(child models.Child, habitID, day string) (models.Child, bool) {
	return t.transition(child, habitID, day, func(h *models.Habit) bool {
		if status, ok := h.Status(day); !ok || status != constants.StatusPending {
			return false
		}
		delete(h.Completions, day)
		return true
	})
}

// ToggleCompletion undoes a completed day, or completes it from any other
// state. Star rewards are credited or reversed to match.
func (t *Tracker) ToggleCompletion(child models.Child, habitID, day string) (models.Child, bool) {
	idx := child.FindHabit(habitID)
	if idx < 0 || !utils.ValidateDate(day) {
		return child, false
	}

	completed := true
	out, ok := t.transition(child, habitID, day, func(h *models.Habit) bool {
		if status, ok := h.Status(day); ok && status == constants.StatusCompleted {
			delete(h.Completions, day)
			completed = false
			return true
		}
		h.Completions[day] = constants.StatusCompleted
		return true
	})
	if !ok {
		return child, false
	}
	return t.ledger.ApplyCompletion(out, out.Habits[idx].Reward, day, completed), true
}

// SkipForDate hides the habit on day regardless of its current status.
// Skipping twice is the same as skipping once.
func (t *Tracker) SkipForDate(child models.Child, habitID, day string) (models.Child, bool) {
	return t.transition(child, habitID, day, func(h *models.Habit) bool {
		h.Completions[day] = constants.StatusSkipped
		return true
	})
}

// transition clones the child and runs apply on the target habit's ledger.
// The clone is discarded when apply reports no change.
func (t *Tracker) transition(child models.Child, habitID, day string, apply func(h *models.Habit) bool) (models.Child, bool) {
	idx := child.FindHabit(habitID)
	if idx < 0 || !utils.ValidateDate(day) {
		return child, false
	}

	out := child.Clone()
	habit := &out.Habits[idx]
	if habit.Completions == nil {
		habit.Completions = make(map[string]constants.CompletionStatus)
	}
	if !apply(habit) {
		return child, false
	}
	out.UpdatedAt = t.clock.Now()
	return out, true
}

// prepare trims the name, assigns an ID and creation time, and normalizes
// the schedule of a new habit.
func (t *Tracker) prepare(habit models.Habit) (models.Habit, bool) {
	habit = habit.Clone()
	habit.Name = strings.TrimSpace(habit.Name)
	if habit.Name == "" {
		return habit, false
	}
	if habit.ID == "" {
		habit.ID = t.newID()
	}
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = t.clock.Now()
	}
	if habit.Schedule.Type == "" {
		habit.Schedule.Type = constants.ScheduleDaily
	}
	habit.Schedule = habit.Schedule.Normalized()
	if habit.Schedule.Type == constants.ScheduleOnce {
		habit.StartDate = ""
	}
	if habit.Reward.Type == "" {
		habit.Reward.Type = constants.RewardStars
	}
	habit.Completions = nil
	return habit, true
}
