package tracking

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/checkin"
	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/stats"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

type CheckinCmd struct {
	Yes    CheckinYesCmd    `cmd:"" help:"I stuck to the rules today."`
	No     CheckinNoCmd     `cmd:"" help:"I did not stick to the rules today."`
	Status CheckinStatusCmd `cmd:"" help:"Show today's check-in and the current streak."`
}

type CheckinYesCmd struct{}

func (c *CheckinYesCmd) Run(ctx *cli.Context) error {
	return recordCheckin(ctx, true)
}

type CheckinNoCmd struct{}

func (c *CheckinNoCmd) Run(ctx *cli.Context) error {
	return recordCheckin(ctx, false)
}

func recordCheckin(ctx *cli.Context, stuck bool) error {
	entry, added, err := ctx.Repo.AddCheckin(stuck)
	if err != nil {
		return fmt.Errorf("failed to record check-in: %w", err)
	}
	if !added {
		ctx.Printf("Already checked in today (%s). The first answer of the day is kept.\n", answer(entry.StuckToRules))
		return nil
	}

	checkins, err := ctx.Repo.GetCheckins()
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}
	streak := stats.CheckinStreak(checkins, ctx.Now())

	if stuck {
		ctx.Println(cli.SuccessStyle.Render("✓ Checked in: stuck to the rules"))
		ctx.Printf("  Streak: %s\n", cli.Plural(streak, "day", "days"))
		return nil
	}
	ctx.Println(cli.DangerStyle.Render("✗ Checked in: slipped today"))
	ctx.Println(cli.MutedStyle.Render("  Tomorrow is a fresh start."))
	return nil
}

type CheckinStatusCmd struct {
	JSON bool `help:"Print the status as JSON." name:"json"`
}

type checkinStatus struct {
	Date         string `json:"date"`
	CheckedIn    bool   `json:"checkedIn"`
	StuckToRules *bool  `json:"stuckToRules"`
	Streak       int    `json:"streak"`
	Total        int    `json:"total"`
}

func (c *CheckinStatusCmd) Run(ctx *cli.Context) error {
	checkins, err := ctx.Repo.GetCheckins()
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}
	now := ctx.Now()

	status := checkinStatus{
		Date:   utils.DayKey(now),
		Streak: stats.CheckinStreak(checkins, now),
		Total:  len(checkins),
	}
	if today := checkin.Today(checkins, now); today != nil {
		status.CheckedIn = true
		stuck := today.StuckToRules
		status.StuckToRules = &stuck
	}

	if c.JSON {
		return ctx.PrintJSON(status)
	}

	ctx.Println(cli.Header("Daily check-in"))
	if status.CheckedIn {
		ctx.Printf("Today:  %s\n", answer(*status.StuckToRules))
	} else {
		ctx.Printf("Today:  %s\n", cli.WarningStyle.Render("not checked in yet"))
	}
	ctx.Printf("Streak: %s\n", cli.Plural(status.Streak, "day", "days"))
	ctx.Printf("Total:  %s\n", cli.Plural(status.Total, "check-in", "check-ins"))
	return nil
}

func answer(stuck bool) string {
	if stuck {
		return "stuck to the rules"
	}
	return "slipped"
}
