package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
)

// ChildRow is the column form of a child shared by the SQL backends. Habits
// and star history are stored as JSON documents.
type ChildRow struct {
	ID          string
	FamilyID    string
	Name        string
	Avatar      string
	Stars       int
	Habits      string
	StarHistory string
	CreatedAt   string
	UpdatedAt   string
}

// EncodeChild converts a child into its row form.
func EncodeChild(c models.Child) (ChildRow, error) {
	habits := c.Habits
	if habits == nil {
		habits = []models.Habit{}
	}
	habitsJSON, err := json.Marshal(habits)
	if err != nil {
		return ChildRow{}, fmt.Errorf("failed to encode habits: %w", err)
	}
	history := c.StarHistory
	if history == nil {
		history = map[string]int{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return ChildRow{}, fmt.Errorf("failed to encode star history: %w", err)
	}

	return ChildRow{
		ID:          c.ID,
		FamilyID:    c.FamilyID,
		Name:        c.Name,
		Avatar:      c.Avatar,
		Stars:       c.Stars,
		Habits:      string(habitsJSON),
		StarHistory: string(historyJSON),
		CreatedAt:   FormatTime(c.CreatedAt),
		UpdatedAt:   FormatTime(c.UpdatedAt),
	}, nil
}

// Decode converts a row back into a child. Schedules are normalized so
// records from older clients come back with an explicit legacy type.
func (r ChildRow) Decode() (models.Child, error) {
	c := models.Child{
		ID:       r.ID,
		FamilyID: r.FamilyID,
		Name:     r.Name,
		Avatar:   r.Avatar,
		Stars:    r.Stars,
	}
	if err := json.Unmarshal([]byte(r.Habits), &c.Habits); err != nil {
		return models.Child{}, fmt.Errorf("failed to parse habits for child %s: %w", r.ID, err)
	}
	if c.Habits == nil {
		c.Habits = []models.Habit{}
	}
	for i := range c.Habits {
		c.Habits[i].Schedule = c.Habits[i].Schedule.Normalized()
	}
	if err := json.Unmarshal([]byte(r.StarHistory), &c.StarHistory); err != nil {
		return models.Child{}, fmt.Errorf("failed to parse star history for child %s: %w", r.ID, err)
	}

	var err error
	if c.CreatedAt, err = ParseTime(r.CreatedAt); err != nil {
		return models.Child{}, fmt.Errorf("failed to parse created_at for child %s: %w", r.ID, err)
	}
	if c.UpdatedAt, err = ParseTime(r.UpdatedAt); err != nil {
		return models.Child{}, fmt.Errorf("failed to parse updated_at for child %s: %w", r.ID, err)
	}
	return c, nil
}

// LimitColumns splits an optional limit into nullable columns.
func LimitColumns(l *models.RewardLimit) (sql.NullString, sql.NullInt64) {
	if l == nil {
		return sql.NullString{}, sql.NullInt64{}
	}
	return sql.NullString{String: string(l.Period), Valid: true}, sql.NullInt64{Int64: int64(l.Count), Valid: true}
}

// LimitFromColumns rebuilds an optional limit from nullable columns.
func LimitFromColumns(period sql.NullString, count sql.NullInt64) *models.RewardLimit {
	if !period.Valid {
		return nil
	}
	return &models.RewardLimit{
		Period: constants.LimitPeriod(period.String),
		Count:  int(count.Int64),
	}
}

// EncodeRewardSnapshot serializes the reward copy kept on a redemption.
func EncodeRewardSnapshot(r models.ShopReward) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode reward snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeRewardSnapshot parses the reward copy kept on a redemption.
func DecodeRewardSnapshot(data string) (models.ShopReward, error) {
	var r models.ShopReward
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return models.ShopReward{}, fmt.Errorf("failed to parse reward snapshot: %w", err)
	}
	return r, nil
}

// NullString maps "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// FormatTime renders timestamps as RFC3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime parses an RFC3339 timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// SettingsFields maps each key of the settings table to the field it fills.
func SettingsFields(s *models.Settings) map[string]*string {
	return map[string]*string{
		constants.SettingTimezone:        &s.Timezone,
		constants.SettingDefaultFamilyID: &s.DefaultFamilyID,
	}
}
