package rewards

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/errors"
	"github.com/julianstephens/habitus/internal/utils"
)

type RewardCheckCmd struct {
	Child  string `arg:"" help:"Child ID."`
	Reward string `arg:"" help:"Reward ID."`
}

func (c *RewardCheckCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	avail, err := ctx.Service.CheckAvailability(familyID, c.Child, c.Reward)
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	if avail.IsAvailable {
		fmt.Println(cli.SuccessStyle.Render("Available"))
	} else {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Limit reached, available %s (%s)", avail.Label(), avail.NextAvailable)))
	}
	if avail.Max > 0 {
		fmt.Printf("Redeemed %d of %d in the current window\n", avail.Count, avail.Max)
	}
	return nil
}

type RewardRedeemCmd struct {
	Child  string `arg:"" help:"Child ID."`
	Reward string `arg:"" help:"Reward ID."`
}

func (c *RewardRedeemCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	child, record, ok, err := ctx.Service.Redeem(familyID, c.Child, c.Reward)
	if err != nil {
		return fmt.Errorf("failed to redeem reward: %w", err)
	}
	if !ok {
		reward, err := ctx.Service.ShopReward(familyID, c.Reward)
		if err != nil {
			return fmt.Errorf("failed to load reward: %w", err)
		}
		avail, err := ctx.Service.CheckAvailability(familyID, c.Child, c.Reward)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if !avail.IsAvailable {
			return errors.NotApplied("%s is limited to %d per %s, available %s",
				reward.Name, avail.Max, strings.ToLower(string(avail.Window)), avail.Label())
		}
		return errors.NotApplied("%s costs %d★ but %s has %d★", reward.Name, reward.Cost, child.Name, child.Stars)
	}

	fmt.Printf("%s redeemed %s for %d★ (ID: %s)\n", child.Name, record.Reward.Name, record.Reward.Cost, record.ID)
	fmt.Printf("Remaining: %s\n", cli.StarStyle.Render(fmt.Sprintf("%d★", child.Stars)))
	return nil
}

type RedemptionListCmd struct {
	Child   string `help:"Only show this child's redemptions."`
	Pending bool   `help:"Only show redemptions not yet delivered."`
}

func (c *RedemptionListCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	records, err := ctx.Service.Redemptions(familyID, c.Child)
	if err != nil {
		return fmt.Errorf("failed to list redemptions: %w", err)
	}

	shown := 0
	for _, r := range records {
		if c.Pending && r.IsDelivered {
			continue
		}
		status := cli.WarningStyle.Render("pending")
		if r.IsDelivered {
			status = cli.SuccessStyle.Render("delivered " + r.DeliveryDate)
		}
		fmt.Printf("%s  %s %s  %d★  %s %s\n", r.Date, r.Reward.Icon, r.Reward.Name, r.Reward.Cost, status,
			cli.MutedStyle.Render("("+r.ID+")"))
		shown++
	}
	if shown == 0 {
		fmt.Println("No redemptions found.")
	}
	return nil
}

type RedemptionDeliverCmd struct {
	ID string `arg:"" help:"Redemption ID. Running it again marks the redemption pending."`
}

func (c *RedemptionDeliverCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	record, err := ctx.Service.ToggleDelivery(familyID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to toggle delivery: %w", err)
	}
	if record.IsDelivered {
		fmt.Printf("Marked %s as delivered on %s\n", record.Reward.Name, record.DeliveryDate)
	} else {
		fmt.Printf("Marked %s as pending\n", record.Reward.Name)
	}
	return nil
}

type StarsCmd struct {
	Child string `arg:"" help:"Child ID."`
	From  string `help:"First day (YYYY-MM-DD). Defaults to the start of this week."`
	To    string `help:"Last day (YYYY-MM-DD). Defaults to today."`
}

func (c *StarsCmd) Run(ctx *cli.Context) error {
	familyID, err := ctx.FamilyID()
	if err != nil {
		return err
	}
	today := ctx.Service.Today()
	to, err := cli.ResolveDay(c.To)
	if err != nil {
		return err
	}
	if to == "" {
		to = today
	}
	from, err := cli.ResolveDay(c.From)
	if err != nil {
		return err
	}
	if from == "" {
		d, _ := utils.ParseDate(to)
		from = utils.FormatDate(utils.WeekStart(d))
	}

	earned, err := ctx.Service.StarsEarned(familyID, c.Child, from, to)
	if err != nil {
		return fmt.Errorf("failed to sum stars: %w", err)
	}
	child, err := ctx.Service.Child(familyID, c.Child)
	if err != nil {
		return fmt.Errorf("failed to find child with ID %s: %w", c.Child, err)
	}
	fmt.Printf("%s earned %s from %s to %s (balance %d★)\n",
		child.Name, cli.StarStyle.Render(fmt.Sprintf("%d★", earned)), from, to, child.Stars)
	return nil
}
