package app

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitus/internal/logger"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/rewards"
	"github.com/julianstephens/habitus/internal/validation"
)

// SaveShopReward creates a reward (empty ID) or replaces an existing one.
func (s *Service) SaveShopReward(reward models.ShopReward) (models.ShopReward, error) {
	reward.Name = strings.TrimSpace(reward.Name)
	if reward.ID == "" {
		reward.ID = s.newID()
		reward.CreatedAt = s.clock.Now()
	}
	if err := validation.ShopReward(reward); err != nil {
		return models.ShopReward{}, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.store.GetFamily(reward.FamilyID); err != nil {
		return models.ShopReward{}, err
	}
	if err := s.store.SaveShopReward(reward); err != nil {
		s.metrics.StorageFailure("save_reward")
		return models.ShopReward{}, fmt.Errorf("failed to save reward: %w", err)
	}
	logger.Info("Shop reward saved", "family", reward.FamilyID, "reward", reward.ID)
	return reward, nil
}

func (s *Service) ShopRewards(familyID string, includeDeleted bool) ([]models.ShopReward, error) {
	return s.store.GetShopRewards(familyID, includeDeleted)
}

func (s *Service) ShopReward(familyID, rewardID string) (models.ShopReward, error) {
	return s.store.GetShopReward(familyID, rewardID)
}

// DeleteShopReward hides a reward from the shop. Past redemptions keep their
// own snapshot of it.
func (s *Service) DeleteShopReward(familyID, rewardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteShopReward(familyID, rewardID)
}

func (s *Service) RestoreShopReward(familyID, rewardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RestoreShopReward(familyID, rewardID)
}

// CheckAvailability reports whether the child may redeem the reward today.
func (s *Service) CheckAvailability(familyID, childID, rewardID string) (rewards.Availability, error) {
	if _, err := s.store.GetChild(familyID, childID); err != nil {
		return rewards.Availability{}, err
	}
	reward, err := s.store.GetShopReward(familyID, rewardID)
	if err != nil {
		return rewards.Availability{}, err
	}
	history, err := s.store.GetRedemptions(familyID, childID)
	if err != nil {
		return rewards.Availability{}, err
	}
	return s.ledger.CheckAvailability(childID, reward, history), nil
}

// Redeem spends the child's stars on a reward. The new balance and the
// redemption record are stored together.
func (s *Service) Redeem(familyID, childID, rewardID string) (models.Child, models.RedeemedReward, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	child, err := s.store.GetChild(familyID, childID)
	if err != nil {
		return models.Child{}, models.RedeemedReward{}, false, err
	}
	reward, err := s.store.GetShopReward(familyID, rewardID)
	if err != nil {
		return models.Child{}, models.RedeemedReward{}, false, err
	}
	history, err := s.store.GetRedemptions(familyID, childID)
	if err != nil {
		return models.Child{}, models.RedeemedReward{}, false, err
	}

	updated, record, ok := s.ledger.Redeem(child, reward, history)
	s.metrics.Redemption(ok, reward.Cost)
	if !ok {
		logger.Debug("Redemption not applied", "child", childID, "reward", rewardID, "stars", child.Stars, "cost", reward.Cost)
		return child, models.RedeemedReward{}, false, nil
	}

	if err := s.store.SaveRedemption(updated, record); err != nil {
		s.metrics.StorageFailure("save_redemption")
		return child, models.RedeemedReward{}, false, fmt.Errorf("failed to save redemption: %w", err)
	}
	logger.Info("Reward redeemed", "child", childID, "reward", rewardID, "stars", updated.Stars)
	return updated, record, true, nil
}

// Redemptions lists redemption history, for one child or the whole family
// when childID is empty.
func (s *Service) Redemptions(familyID, childID string) ([]models.RedeemedReward, error) {
	return s.store.GetRedemptions(familyID, childID)
}

// ToggleDelivery flips a redemption between delivered and pending.
func (s *Service) ToggleDelivery(familyID, redemptionID string) (models.RedeemedReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.GetRedemption(familyID, redemptionID)
	if err != nil {
		return models.RedeemedReward{}, err
	}
	updated := s.ledger.ToggleDelivery(record)
	if err := s.store.UpdateRedemption(updated); err != nil {
		s.metrics.StorageFailure("update_redemption")
		return models.RedeemedReward{}, fmt.Errorf("failed to update redemption: %w", err)
	}
	logger.Info("Delivery toggled", "redemption", redemptionID, "delivered", updated.IsDelivered)
	return updated, nil
}

// StarsEarned sums the stars a child earned from..to inclusive.
func (s *Service) StarsEarned(familyID, childID, from, to string) (int, error) {
	child, err := s.store.GetChild(familyID, childID)
	if err != nil {
		return 0, err
	}
	return s.ledger.StarsEarnedBetween(child, from, to)
}
