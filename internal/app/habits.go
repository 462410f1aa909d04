package app

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/logger"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/scheduler"
	"github.com/julianstephens/habitus/internal/validation"
)

// DueHabits lists the child's habits due on day ("" for today).
func (s *Service) DueHabits(familyID, childID, day string) ([]models.Habit, error) {
	child, err := s.store.GetChild(familyID, childID)
	if err != nil {
		return nil, err
	}
	return s.scheduler.DueHabits(child, s.resolveDay(day))
}

// Week lists due habits for each day of the week containing day.
func (s *Service) Week(familyID, childID, day string) ([]scheduler.DaySchedule, error) {
	child, err := s.store.GetChild(familyID, childID)
	if err != nil {
		return nil, err
	}
	return s.scheduler.WeekOf(child, s.resolveDay(day))
}

func (s *Service) AddHabit(familyID, childID string, habit models.Habit) (models.Child, bool, error) {
	if err := validation.Habit(habit); err != nil {
		return models.Child{}, false, invalid(err)
	}
	return s.mutateChild("add", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.AddHabit(c, habit)
	})
}

// AssignHabit adds the same habit to several children of a family. Each
// child is handled on its own; the IDs of the children that received the
// habit are returned. When a save fails, the children saved before it are
// returned along with the error.
func (s *Service) AssignHabit(familyID string, childIDs []string, habit models.Habit) ([]string, error) {
	if err := validation.Habit(habit); err != nil {
		return nil, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	children := make([]models.Child, 0, len(childIDs))
	for _, id := range childIDs {
		child, err := s.store.GetChild(familyID, id)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	updated, assigned := s.tracker.AddHabitToMultipleChildren(children, habit)
	received := make(map[string]bool, len(assigned))
	for _, id := range assigned {
		received[id] = true
	}

	saved := make([]string, 0, len(assigned))
	for _, child := range updated {
		if !received[child.ID] {
			s.metrics.HabitOp("assign", false)
			continue
		}
		if err := s.store.SaveChild(child); err != nil {
			s.metrics.StorageFailure("save_child")
			logger.Warn("Habit assignment stopped", "family", familyID, "child", child.ID, "saved", len(saved), "error", err)
			return saved, fmt.Errorf("failed to save child %s: %w", child.ID, err)
		}
		s.metrics.HabitOp("assign", true)
		saved = append(saved, child.ID)
	}
	logger.Info("Habit assigned", "family", familyID, "requested", len(childIDs), "assigned", len(saved))
	return saved, nil
}

func (s *Service) UpdateHabit(familyID, childID string, habit models.Habit) (models.Child, bool, error) {
	if err := validation.Habit(habit); err != nil {
		return models.Child{}, false, invalid(err)
	}
	return s.mutateChild("update", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.UpdateHabit(c, habit)
	})
}

func (s *Service) DeleteHabit(familyID, childID, habitID string) (models.Child, bool, error) {
	return s.mutateChild("delete", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.DeleteHabit(c, habitID)
	})
}

func (s *Service) RequestCompletion(familyID, childID, habitID, day string) (models.Child, bool, error) {
	day = s.resolveDay(day)
	return s.mutateChild("request", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.RequestCompletion(c, habitID, day)
	})
}

func (s *Service) RejectCompletion(familyID, childID, habitID, day string) (models.Child, bool, error) {
	day = s.resolveDay(day)
	return s.mutateChild("reject", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.RejectCompletion(c, habitID, day)
	})
}

func (s *Service) ToggleCompletion(familyID, childID, habitID, day string) (models.Child, bool, error) {
	day = s.resolveDay(day)
	return s.mutateChild("toggle", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.ToggleCompletion(c, habitID, day)
	})
}

func (s *Service) SkipForDate(familyID, childID, habitID, day string) (models.Child, bool, error) {
	day = s.resolveDay(day)
	return s.mutateChild("skip", familyID, childID, func(c models.Child) (models.Child, bool) {
		return s.tracker.SkipForDate(c, habitID, day)
	})
}
