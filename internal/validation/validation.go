package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the `validate` tags of any model.
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// Habit checks a habit definition before it is added or edited.
func Habit(h models.Habit) error {
	if err := validate.Struct(h); err != nil {
		return err
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be blank")
	}
	switch h.Schedule.Type {
	case "", constants.ScheduleDaily, constants.ScheduleMonthly:
	case constants.ScheduleWeekly:
		for _, wd := range h.Schedule.Days {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday: %d", wd)
			}
		}
	case constants.ScheduleOnce:
		if !utils.ValidateDate(h.Schedule.Date) {
			return fmt.Errorf("one-off habit needs a date in YYYY-MM-DD format")
		}
	default:
		return fmt.Errorf("unknown schedule type %q", h.Schedule.Type)
	}
	if h.StartDate != "" && !utils.ValidateDate(h.StartDate) {
		return fmt.Errorf("invalid start date: %s (expected YYYY-MM-DD)", h.StartDate)
	}
	return nil
}

// ShopReward checks a reward before it is stored.
func ShopReward(r models.ShopReward) error {
	return validate.Struct(r)
}

// ConflictType represents the type of data problem found in a stored child
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictNegativeStars      ConflictType = "negative_stars"
	ConflictLegacySchedule     ConflictType = "legacy_schedule"
	ConflictEmptyWeekly        ConflictType = "empty_weekly"
	ConflictMonthlyEveryDay    ConflictType = "monthly_every_day"
)

// Conflict represents a detected problem in a child's data
type Conflict struct {
	Type        ConflictType
	Description string
	ChildID     string
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// ValidateChildren audits stored children for data the core tolerates but
// that usually points at an import or an old client: duplicate names,
// malformed dates, schedules falling back to legacy rules.
func ValidateChildren(children []models.Child) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, child := range children {
		result.Conflicts = append(result.Conflicts, validateChild(child)...)
	}
	return result
}

func validateChild(child models.Child) []Conflict {
	var conflicts []Conflict

	if child.Stars < 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictNegativeStars,
			Description: fmt.Sprintf("%s has a negative star balance (%d)", child.Name, child.Stars),
			ChildID:     child.ID,
		})
	}

	byName := make(map[string][]string)
	for _, h := range child.Habits {
		byName[h.NameKey()] = append(byName[h.NameKey()], h.ID)

		if h.Schedule.Normalized().Type == constants.ScheduleLegacy {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictLegacySchedule,
				Description: fmt.Sprintf("%s: habit %q has no recognized schedule type", child.Name, h.Name),
				ChildID:     child.ID,
				HabitIDs:    []string{h.ID},
			})
		}
		if h.Schedule.Type == constants.ScheduleWeekly && len(h.Schedule.Days) == 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictEmptyWeekly,
				Description: fmt.Sprintf("%s: weekly habit %q has no days and is never due", child.Name, h.Name),
				ChildID:     child.ID,
				HabitIDs:    []string{h.ID},
			})
		}
		if h.Schedule.Type == constants.ScheduleMonthly && h.Schedule.DayOfMonth == 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMonthlyEveryDay,
				Description: fmt.Sprintf("%s: monthly habit %q has no day of month and is due every day", child.Name, h.Name),
				ChildID:     child.ID,
				HabitIDs:    []string{h.ID},
			})
		}

		var bad []string
		for day := range h.Completions {
			if !utils.ValidateDate(day) {
				bad = append(bad, day)
			}
		}
		if h.StartDate != "" && !utils.ValidateDate(h.StartDate) {
			bad = append(bad, h.StartDate)
		}
		if len(bad) > 0 {
			sort.Strings(bad)
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("%s: habit %q has malformed dates: %s", child.Name, h.Name, strings.Join(bad, ", ")),
				ChildID:     child.ID,
				HabitIDs:    []string{h.ID},
			})
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ids := byName[name]
		if len(ids) > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("%s: %d habits share the name %q", child.Name, len(ids), name),
				ChildID:     child.ID,
				HabitIDs:    ids,
			})
		}
	}

	return conflicts
}
