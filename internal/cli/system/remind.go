package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/logger"
	"github.com/julianstephens/cloudcontrol/internal/notifier"
)

type RemindCmd struct {
	Motivation bool `help:"Send a motivation quote instead of the check-in reminder."`
	PrintCron  bool `help:"Print crontab entries for the reminders and exit." name:"print-cron"`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.PrintCron {
		binary, err := os.Executable()
		if err != nil {
			binary = "cloudcontrol"
		}
		lines, err := notifier.CronLines(settings.NotificationTime, binary)
		if err != nil {
			return err
		}
		for _, line := range lines {
			ctx.Println(line)
		}
		return nil
	}

	if c.Motivation {
		outcome, quote, err := ctx.Notifier.Motivate(settings)
		if err != nil {
			return fmt.Errorf("failed to send notification: %w", err)
		}
		logger.Debug("Motivation reminder", "outcome", outcome)
		if outcome == notifier.OutcomeSent {
			ctx.Printf("Sent: %s\n", quote)
		} else {
			ctx.Println(describe(outcome))
		}
		return nil
	}

	checkins, err := ctx.Repo.GetCheckins()
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}
	outcome, err := ctx.Notifier.RemindCheckIn(settings, checkins, ctx.Now())
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	logger.Debug("Check-in reminder", "outcome", outcome)
	ctx.Println(describe(outcome))
	return nil
}

func describe(outcome notifier.Outcome) string {
	switch outcome {
	case notifier.OutcomeSent:
		return "Reminder sent."
	case notifier.OutcomeDisabled:
		return "Notifications are disabled in settings."
	case notifier.OutcomeAlreadyLogged:
		return "Already checked in today. No reminder needed."
	default:
		return string(outcome)
	}
}
