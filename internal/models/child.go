package models

import "time"

// Family is the ownership boundary for children, shop rewards and redemptions
type Family struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// Child is a profile with a star balance and its own habits
type Child struct {
	ID          string         `json:"id"`
	FamilyID    string         `json:"familyId"`
	Name        string         `json:"name" validate:"required,max=60"`
	Avatar      string         `json:"avatar,omitempty"`
	Stars       int            `json:"stars" validate:"gte=0"`
	Habits      []Habit        `json:"habits"`
	StarHistory map[string]int `json:"starHistory,omitempty"` // YYYY-MM-DD -> stars earned
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// FindHabit returns the index of the habit with the given ID, or -1.
func (c Child) FindHabit(id string) int {
	for i, h := range c.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// HasHabitNamed reports whether a habit with the same normalized name exists.
// A habit whose ID equals exceptID is ignored.
func (c Child) HasHabitNamed(name, exceptID string) bool {
	key := NormalizeName(name)
	for _, h := range c.Habits {
		if h.ID != exceptID && h.NameKey() == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the child, habits and star history included.
func (c Child) Clone() Child {
	out := c
	if c.Habits != nil {
		out.Habits = make([]Habit, len(c.Habits))
		for i, h := range c.Habits {
			out.Habits[i] = h.Clone()
		}
	}
	if c.StarHistory != nil {
		out.StarHistory = make(map[string]int, len(c.StarHistory))
		for day, stars := range c.StarHistory {
			out.StarHistory[day] = stars
		}
	}
	return out
}
