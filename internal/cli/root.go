package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/backup"
	"github.com/julianstephens/habitus/internal/logger"
	"github.com/julianstephens/habitus/internal/metrics"
	"github.com/julianstephens/habitus/internal/storage"
	"github.com/julianstephens/habitus/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Service *app.Service
	Metrics *metrics.Metrics

	// Family is the --family flag; empty falls back to the stored default.
	Family string
	// Listen is the address `serve` binds to.
	Listen string
	// Confirm asks a yes/no question before destructive commands. Nil
	// uses an interactive huh prompt.
	Confirm func(title string) (bool, error)
}

// IsSQLite reports whether the store is a local database file.
func (c *Context) IsSQLite() bool {
	path := c.Store.GetConfigPath()
	return path != "" && !strings.HasPrefix(path, "postgres")
}

// PerformAutomaticBackup snapshots a SQLite database before a destructive
// command. Failures are logged and do not stop the command.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FamilyID resolves the family a command operates on.
func (c *Context) FamilyID() (string, error) {
	if c.Family != "" {
		return c.Family, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.DefaultFamilyID == "" {
		return "", errors.New("no family selected, pass --family or run 'habitus family use <id>'")
	}
	return settings.DefaultFamilyID, nil
}

// Ask runs the confirmation prompt.
func (c *Context) Ask(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeBase()).Run()
	if err != nil {
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}

// ResolveDay validates an optional YYYY-MM-DD flag value. Empty means today.
func ResolveDay(day string) (string, error) {
	if day == "" {
		return "", nil
	}
	if !utils.ValidateDate(day) {
		return "", fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", day)
	}
	return day, nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"dom":       time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"seg":       time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"ter":       time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"qua":       time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"qui":       time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sex":       time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
		"sab":       time.Saturday,
	}

	seen := make(map[time.Weekday]bool)
	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		wd, ok := dayMap[part]
		if !ok {
			// Numeric form, 0=Sunday through 6=Saturday
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			wd = time.Weekday(num)
		}
		if !seen[wd] {
			seen[wd] = true
			weekdays = append(weekdays, wd)
		}
	}

	return weekdays, nil
}
