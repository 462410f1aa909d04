package models

import (
	"time"

	"github.com/julianstephens/habitus/internal/constants"
)

// RewardLimit caps how many times a child may redeem a reward per window
type RewardLimit struct {
	Period constants.LimitPeriod `json:"period" validate:"oneof=NONE DAY WEEK MONTH"`
	Count  int                   `json:"count" validate:"gte=0"`
}

// Active reports whether the limit restricts anything.
func (l *RewardLimit) Active() bool {
	return l != nil && l.Period != "" && l.Period != constants.LimitNone
}

// ShopReward is an item children can buy with stars
type ShopReward struct {
	ID        string       `json:"id"`
	FamilyID  string       `json:"familyId"`
	Name      string       `json:"name" validate:"required,max=80"`
	Icon      string       `json:"icon,omitempty"`
	Cost      int          `json:"cost" validate:"gt=0"`
	Image     string       `json:"image,omitempty"`
	Limit     *RewardLimit `json:"limit,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	DeletedAt *time.Time   `json:"deletedAt,omitempty"`
}

// Snapshot copies the reward so later edits do not leak into history.
func (r ShopReward) Snapshot() ShopReward {
	out := r
	out.DeletedAt = nil
	if r.Limit != nil {
		limit := *r.Limit
		out.Limit = &limit
	}
	return out
}

// RedeemedReward is the historical record of a single redemption
type RedeemedReward struct {
	ID           string     `json:"id"`
	FamilyID     string     `json:"familyId"`
	ChildID      string     `json:"childId"`
	Reward       ShopReward `json:"reward"`
	Date         string     `json:"date"` // YYYY-MM-DD format
	IsDelivered  bool       `json:"isDelivered"`
	DeliveryDate string     `json:"deliveryDate,omitempty"` // YYYY-MM-DD format
	CreatedAt    time.Time  `json:"createdAt"`
}
