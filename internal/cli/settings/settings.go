package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used to decide what day it is (e.g. America/Sao_Paulo)."`
	DefaultFamily *string `help:"Family ID used when --family is not given. Pass an empty value to clear."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println(cli.TitleStyle.Render("Current Settings:"))
		fmt.Printf("  Timezone:       %s\n", settings.Timezone)
		family := settings.DefaultFamilyID
		if family == "" {
			family = cli.MutedStyle.Render("(none)")
		}
		fmt.Printf("  Default Family: %s\n", family)
		fmt.Printf("  Storage:        %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	updated := false
	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if !utils.ValidateTimezone(tz) {
			return fmt.Errorf("invalid timezone: %s", tz)
		}
		settings.Timezone = tz
		updated = true
	}
	if c.DefaultFamily != nil {
		id := strings.TrimSpace(*c.DefaultFamily)
		if id != "" {
			if _, err := ctx.Service.Family(id); err != nil {
				return fmt.Errorf("failed to find family with ID %s: %w", id, err)
			}
		}
		settings.DefaultFamilyID = id
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
