// Package rewards keeps a child's star balance and gates shop redemptions.
//
// Every method takes a child by value and returns a new snapshot; callers
// persist the returned child and discard the input.
package rewards

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/utils"
)

type Ledger struct {
	clock utils.Clock
	newID func() string
}

func NewLedger(clock utils.Clock) *Ledger {
	return &Ledger{
		clock: clock,
		newID: uuid.NewString,
	}
}

// ApplyCompletion credits (completed=true) or reverses (completed=false) the
// stars a habit pays for day. Balance and history are floored at zero, so
// undoing a completion whose stars were already spent clamps instead of going
// negative. Activity rewards leave the child untouched.
func (l *Ledger) ApplyCompletion(child models.Child, reward models.Reward, day string, completed bool) models.Child {
	out := child.Clone()
	if reward.Type != constants.RewardStars {
		return out
	}

	delta := reward.Value
	if !completed {
		delta = -delta
	}

	out.Stars = max(0, out.Stars+delta)
	if out.StarHistory == nil {
		out.StarHistory = make(map[string]int)
	}
	out.StarHistory[day] = max(0, out.StarHistory[day]+delta)
	out.UpdatedAt = l.clock.Now()
	return out
}

// Redeem spends stars on reward. Availability is re-checked against history
// on every call. It fails without changing anything when the reward has no
// positive cost, its limit is reached, or the balance is too low.
func (l *Ledger) Redeem(child models.Child, reward models.ShopReward, history []models.RedeemedReward) (models.Child, models.RedeemedReward, bool) {
	if reward.Cost <= 0 {
		return child, models.RedeemedReward{}, false
	}
	if !l.CheckAvailability(child.ID, reward, history).IsAvailable {
		return child, models.RedeemedReward{}, false
	}
	if child.Stars < reward.Cost {
		return child, models.RedeemedReward{}, false
	}

	now := l.clock.Now()
	out := child.Clone()
	out.Stars -= reward.Cost
	out.UpdatedAt = now

	record := models.RedeemedReward{
		ID:        l.newID(),
		FamilyID:  child.FamilyID,
		ChildID:   child.ID,
		Reward:    reward.Snapshot(),
		Date:      utils.FormatDate(now),
		CreatedAt: now,
	}
	return out, record, true
}

// ToggleDelivery flips the delivered flag, stamping today on delivery and
// clearing the date when undone. Stars are never touched.
func (l *Ledger) ToggleDelivery(record models.RedeemedReward) models.RedeemedReward {
	record.IsDelivered = !record.IsDelivered
	if record.IsDelivered {
		record.DeliveryDate = utils.Today(l.clock)
	} else {
		record.DeliveryDate = ""
	}
	return record
}

// StarsEarnedBetween sums the star history from..to inclusive.
func (l *Ledger) StarsEarnedBetween(child models.Child, from, to string) (int, error) {
	days, err := utils.DaysBetween(from, to)
	if err != nil {
		return 0, fmt.Errorf("invalid range: %w", err)
	}
	total := 0
	for _, day := range days {
		total += child.StarHistory[day]
	}
	return total, nil
}
