package rewards

import (
	"time"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/utils"
)

// Availability is the verdict for redeeming a reward right now
type Availability struct {
	IsAvailable bool `json:"isAvailable"`
	Count       int  `json:"count"`
	Max         int  `json:"max"`
	// Window is the limit period that blocks the reward. Empty while available.
	Window constants.LimitPeriod `json:"window,omitempty"`
	// NextAvailable is the first day the window reopens. Empty while available.
	NextAvailable string `json:"nextAvailable,omitempty"`
}

// Label is a short human hint for when a blocked reward frees up.
func (a Availability) Label() string {
	switch a.Window {
	case constants.LimitDay:
		return "tomorrow"
	case constants.LimitWeek:
		return "next Monday"
	case constants.LimitMonth:
		return "next month"
	default:
		return ""
	}
}

// CheckAvailability counts the child's redemptions of reward inside the
// current limit window. history may hold records for other children and
// rewards; they are ignored.
func (l *Ledger) CheckAvailability(childID string, reward models.ShopReward, history []models.RedeemedReward) Availability {
	if !reward.Limit.Active() {
		return Availability{IsAvailable: true}
	}

	today := l.clock.Now()
	windowStart, reopens := window(reward.Limit.Period, today)

	count := 0
	for _, r := range history {
		if r.ChildID != childID || r.Reward.ID != reward.ID {
			continue
		}
		if reward.Limit.Period == constants.LimitDay {
			if r.Date == windowStart {
				count++
			}
			continue
		}
		if r.Date >= windowStart {
			count++
		}
	}

	a := Availability{
		IsAvailable: count < reward.Limit.Count,
		Count:       count,
		Max:         reward.Limit.Count,
	}
	if !a.IsAvailable {
		a.Window = reward.Limit.Period
		a.NextAvailable = reopens
	}
	return a
}

// window returns the first day counted by the period and the first day after
// it, both as YYYY-MM-DD.
func window(period constants.LimitPeriod, now time.Time) (start, next string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case constants.LimitWeek:
		return utils.FormatDate(utils.WeekStart(day)), utils.FormatDate(utils.NextWeekStart(day))
	case constants.LimitMonth:
		return utils.FormatDate(utils.MonthStart(day)), utils.FormatDate(utils.NextMonthStart(day))
	default:
		return utils.FormatDate(day), utils.FormatDate(utils.AddDays(day, 1))
	}
}
