// Package app runs the habit and reward rules against stored family data.
//
// Every mutation follows the same cycle: load the child snapshot, apply one
// core operation, and persist the full new snapshot only if the operation
// changed something. Mutations are serialized by a single mutex, which is
// the only writer to the store in the process.
package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/habitus/internal/habits"
	"github.com/julianstephens/habitus/internal/logger"
	"github.com/julianstephens/habitus/internal/metrics"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/rewards"
	"github.com/julianstephens/habitus/internal/scheduler"
	"github.com/julianstephens/habitus/internal/storage"
	"github.com/julianstephens/habitus/internal/utils"
	"github.com/julianstephens/habitus/internal/validation"
)

// ErrInvalidInput is returned when a request fails struct validation before
// any rule is applied.
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	mu sync.Mutex

	store     storage.Provider
	clock     utils.Clock
	scheduler *scheduler.Scheduler
	tracker   *habits.Tracker
	ledger    *rewards.Ledger
	metrics   *metrics.Metrics
	newID     func() string
}

// New builds a service over an already loaded store. m may be nil.
func New(store storage.Provider, clock utils.Clock, m *metrics.Metrics) *Service {
	ledger := rewards.NewLedger(clock)
	return &Service{
		store:     store,
		clock:     clock,
		scheduler: scheduler.New(),
		tracker:   habits.NewTracker(ledger, clock),
		ledger:    ledger,
		metrics:   m,
		newID:     uuid.NewString,
	}
}

// Today is the current day according to the service clock.
func (s *Service) Today() string {
	return utils.Today(s.clock)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// CreateFamily adds a new family.
func (s *Service) CreateFamily(name string) (models.Family, error) {
	family := models.Family{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		CreatedAt: s.clock.Now(),
	}
	if err := validation.Struct(family); err != nil {
		return models.Family{}, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.AddFamily(family); err != nil {
		s.metrics.StorageFailure("add_family")
		return models.Family{}, fmt.Errorf("failed to save family: %w", err)
	}
	logger.Info("Family created", "family", family.ID)
	return family, nil
}

func (s *Service) Families() ([]models.Family, error) {
	return s.store.GetAllFamilies()
}

func (s *Service) Family(id string) (models.Family, error) {
	return s.store.GetFamily(id)
}

// AddChild creates a child with no habits and a zero balance.
func (s *Service) AddChild(familyID, name, avatar string) (models.Child, error) {
	now := s.clock.Now()
	child := models.Child{
		ID:          s.newID(),
		FamilyID:    familyID,
		Name:        strings.TrimSpace(name),
		Avatar:      avatar,
		Habits:      []models.Habit{},
		StarHistory: map[string]int{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.Struct(child); err != nil {
		return models.Child{}, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.store.GetFamily(familyID); err != nil {
		return models.Child{}, err
	}
	if err := s.store.SaveChild(child); err != nil {
		s.metrics.StorageFailure("save_child")
		return models.Child{}, fmt.Errorf("failed to save child: %w", err)
	}
	logger.Info("Child added", "family", familyID, "child", child.ID)
	return child, nil
}

func (s *Service) Children(familyID string) ([]models.Child, error) {
	return s.store.GetChildren(familyID)
}

func (s *Service) Child(familyID, childID string) (models.Child, error) {
	return s.store.GetChild(familyID, childID)
}

// ChildProfile holds the optional fields of a profile edit. Nil fields are
// left unchanged.
type ChildProfile struct {
	Name   *string
	Avatar *string
	Stars  *int
}

// UpdateChild edits a child's profile. Setting Stars is a manual balance
// correction and does not touch the star history.
func (s *Service) UpdateChild(familyID, childID string, p ChildProfile) (models.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	child, err := s.store.GetChild(familyID, childID)
	if err != nil {
		return models.Child{}, err
	}
	out := child.Clone()
	if p.Name != nil {
		out.Name = strings.TrimSpace(*p.Name)
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.Stars != nil {
		out.Stars = *p.Stars
	}
	if err := validation.Struct(out); err != nil {
		return models.Child{}, invalid(err)
	}
	out.UpdatedAt = s.clock.Now()

	if err := s.store.SaveChild(out); err != nil {
		s.metrics.StorageFailure("save_child")
		return models.Child{}, fmt.Errorf("failed to save child: %w", err)
	}
	logger.Info("Child updated", "family", familyID, "child", childID)
	return out, nil
}

// DeleteChild removes the child and its habits. Redemption records are kept
// as family history.
func (s *Service) DeleteChild(familyID, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteChild(familyID, childID); err != nil {
		return err
	}
	logger.Info("Child deleted", "family", familyID, "child", childID)
	return nil
}

// Audit reports data problems across a family's children.
func (s *Service) Audit(familyID string) (validation.ValidationResult, error) {
	children, err := s.store.GetChildren(familyID)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return validation.ValidateChildren(children), nil
}

// mutateChild is the load, apply, persist cycle shared by every habit
// operation. The stored child is returned unchanged when apply declines.
func (s *Service) mutateChild(op, familyID, childID string, apply func(models.Child) (models.Child, bool)) (models.Child, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	child, err := s.store.GetChild(familyID, childID)
	if err != nil {
		return models.Child{}, false, err
	}

	updated, ok := apply(child)
	s.metrics.HabitOp(op, ok)
	if !ok {
		logger.Debug("Habit operation not applied", "op", op, "child", childID)
		return child, false, nil
	}

	if err := s.store.SaveChild(updated); err != nil {
		s.metrics.StorageFailure("save_child")
		return child, false, fmt.Errorf("failed to save child: %w", err)
	}
	s.metrics.StarDelta(updated.Stars - child.Stars)
	logger.Info("Habit operation applied", "op", op, "child", childID, "stars", updated.Stars)
	return updated, true, nil
}

func (s *Service) resolveDay(day string) string {
	if day == "" {
		return s.Today()
	}
	return day
}
