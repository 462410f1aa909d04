package rewards

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/constants"
	"github.com/julianstephens/habitus/internal/models"
)

func parseLimit(period string, count int) (*models.RewardLimit, error) {
	p := constants.LimitPeriod(strings.ToUpper(strings.TrimSpace(period)))
	switch p {
	case "", constants.LimitNone:
		return nil, nil
	case constants.LimitDay, constants.LimitWeek, constants.LimitMonth:
	default:
		return nil, fmt.Errorf("invalid limit period: %s (expected none|day|week|month)", period)
	}
	if count < 1 {
		return nil, fmt.Errorf("limit count must be at least 1")
	}
	return &models.RewardLimit{Period: p, Count: count}, nil
}

type RewardAddCmd struct {
	Name       string `arg:"" help:"Reward name."`
	Cost       int    `help:"Price in stars." required:""`
	Icon       string `help:"Icon shown in the shop."`
	Image      string `help:"Image reference shown in the shop."`
	Limit      string `help:"Redemption window (none|day|week|month)." default:"none"`
	LimitCount int    `help:"Redemptions allowed per window." default:"1"`
}

func (c *RewardAddCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	limit, err := parseLimit(c.Limit, c.LimitCount)
	if err != nil {
		return err
	}

	reward, err := ctx.Service.SaveShopReward(models.ShopReward{
		FamilyID: familyID,
		Name:     c.Name,
		Icon:     c.Icon,
		Image:    c.Image,
		Cost:     c.Cost,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("failed to add reward: %w", err)
	}
	fmt.Printf("Added reward: %s for %d★ (ID: %s)\n", reward.Name, reward.Cost, reward.ID)
	return nil
}

type RewardEditCmd struct {
	ID         string  `arg:"" help:"Reward ID to edit."`
	Name       *string `help:"New name."`
	Cost       *int    `help:"New price in stars."`
	Icon       *string `help:"New icon."`
	Image      *string `help:"New image reference."`
	Limit      *string `help:"New redemption window (none|day|week|month)."`
	LimitCount *int    `help:"New redemptions allowed per window."`
}

func (c *RewardEditCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	reward, err := ctx.Service.ShopReward(familyID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find reward with ID %s: %w", c.ID, err)
	}

	if c.Name != nil {
		reward.Name = *c.Name
	}
	if c.Cost != nil {
		reward.Cost = *c.Cost
	}
	if c.Icon != nil {
		reward.Icon = *c.Icon
	}
	if c.Image != nil {
		reward.Image = *c.Image
	}
	if c.Limit != nil || c.LimitCount != nil {
		period, count := string(constants.LimitNone), 1
		if reward.Limit != nil {
			period, count = string(reward.Limit.Period), reward.Limit.Count
		}
		if c.Limit != nil {
			period = *c.Limit
		}
		if c.LimitCount != nil {
			count = *c.LimitCount
		}
		if reward.Limit, err = parseLimit(period, count); err != nil {
			return err
		}
	}

	saved, err := ctx.Service.SaveShopReward(reward)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}
	fmt.Printf("Updated reward: %s for %d★\n", saved.Name, saved.Cost)
	return nil
}

type RewardListCmd struct {
	All   bool   `help:"Include deleted rewards."`
	Child string `help:"Show availability for this child."`
}

func (c *RewardListCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	list, err := ctx.Service.ShopRewards(familyID, c.All)
	if err != nil {
		return fmt.Errorf("failed to list rewards: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No rewards found. Add one with 'habitus reward add <name> --cost N'.")
		return nil
	}

	for _, r := range list {
		line := fmt.Sprintf("%s %s  %s", r.Icon, r.Name, cli.StarStyle.Render(fmt.Sprintf("%d★", r.Cost)))
		if limit := cli.FormatLimit(r.Limit); limit != "" {
			line += "  " + cli.MutedStyle.Render(limit)
		}
		if r.DeletedAt != nil {
			line += "  " + cli.WarningStyle.Render("(deleted)")
		} else if c.Child != "" {
			avail, err := ctx.Service.CheckAvailability(familyID, c.Child, r.ID)
			if err != nil {
				return fmt.Errorf("failed to check availability: %w", err)
			}
			if !avail.IsAvailable {
				line += "  " + cli.WarningStyle.Render("available "+avail.Label())
			}
		}
		fmt.Printf("%s %s\n", line, cli.MutedStyle.Render("("+r.ID+")"))
	}
	return nil
}

type RewardDeleteCmd struct {
	ID string `arg:"" help:"Reward ID to delete."`
}

func (c *RewardDeleteCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	if err := ctx.Service.DeleteShopReward(familyID, c.ID); err != nil {
		return fmt.Errorf("failed to delete reward: %w", err)
	}
	fmt.Printf("Deleted reward: %s\n", c.ID)
	return nil
}

type RewardRestoreCmd struct {
	ID string `arg:"" help:"Reward ID to restore."`
}

func (c *RewardRestoreCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	if err := ctx.Service.RestoreShopReward(familyID, c.ID); err != nil {
		return fmt.Errorf("failed to restore reward: %w", err)
	}
	fmt.Printf("Restored reward: %s\n", c.ID)
	return nil
}
