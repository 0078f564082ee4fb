package settings

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
	"github.com/julianstephens/cloudcontrol/internal/validation"
)

type SettingsCmd struct {
	Show          ShowCmd          `cmd:"" default:"withargs" help:"Show current settings."`
	SetQuitDate   SetQuitDateCmd   `cmd:"" name:"set-quit-date" help:"Set your quit date (YYYY-MM-DD)."`
	ClearQuitDate ClearQuitDateCmd `cmd:"" name:"clear-quit-date" help:"Remove the quit date."`
	AddReason     AddReasonCmd     `cmd:"" name:"add-reason" help:"Add a personal reason for quitting."`
	RemoveReason  RemoveReasonCmd  `cmd:"" name:"remove-reason" help:"Remove a reason by its number."`
	SetReward     SetRewardCmd     `cmd:"" name:"set-reward" help:"Set the reward for completing a phase."`
	SetSpend      SetSpendCmd      `cmd:"" name:"set-spend" help:"Set what vaping used to cost per week."`
	Notifications NotificationsCmd `cmd:"" help:"Configure the daily check-in reminder."`
}

type ShowCmd struct {
	JSON bool `help:"Print settings as JSON." name:"json"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if c.JSON {
		return ctx.PrintJSON(settings)
	}

	ctx.Println(cli.Header("Current Settings"))
	if settings.QuitDate != nil {
		ctx.Printf("  Quit Date:             %s\n", settings.QuitDate.Local().Format(constants.DateFormat))
	} else {
		ctx.Printf("  Quit Date:             %s\n", cli.MutedStyle.Render("not set"))
	}
	ctx.Printf("  Weekly Spend:          $%.2f\n", settings.WeeklySpend)

	ctx.Println("\nReasons for Quitting:")
	if len(settings.QuitReasons) == 0 {
		ctx.Println(cli.MutedStyle.Render("  none yet"))
	}
	for i, reason := range settings.QuitReasons {
		ctx.Printf("  %d. %s\n", i+1, reason)
	}

	ctx.Println("\nPhase Rewards:")
	if len(settings.PhaseRewards) == 0 {
		ctx.Println(cli.MutedStyle.Render("  none yet"))
	}
	for _, id := range slices.Sorted(maps.Keys(settings.PhaseRewards)) {
		ctx.Printf("  Phase %d: %s\n", id, settings.PhaseRewards[id])
	}

	ctx.Println("\nNotification Settings:")
	ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	ctx.Printf("  Reminder Time:         %s\n", settings.NotificationTime)
	return nil
}

type SetQuitDateCmd struct {
	Date string `arg:"" help:"Quit date in YYYY-MM-DD format."`
}

func (c *SetQuitDateCmd) Run(ctx *cli.Context) error {
	date, err := utils.ParseDayKey(strings.TrimSpace(c.Date), time.Local)
	if err != nil {
		return err
	}
	if _, err := ctx.Repo.UpdateSettings(map[string]any{constants.SettingQuitDate: date}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("✓ Quit date set to %s\n", date.Format(constants.DateFormat))
	return nil
}

type ClearQuitDateCmd struct{}

func (c *ClearQuitDateCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Repo.UpdateSettings(map[string]any{constants.SettingQuitDate: nil}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("✓ Quit date cleared")
	return nil
}

type AddReasonCmd struct {
	Reason []string `arg:"" help:"Why you want to quit."`
}

func (c *AddReasonCmd) Run(ctx *cli.Context) error {
	reason := strings.TrimSpace(strings.Join(c.Reason, " "))
	if reason == "" {
		return errors.New("reason cannot be empty")
	}
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reasons := append(slices.Clone(settings.QuitReasons), reason)
	if _, err := ctx.Repo.UpdateSettings(map[string]any{constants.SettingQuitReasons: reasons}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("✓ Added reason #%d\n", len(reasons))
	return nil
}

type RemoveReasonCmd struct {
	Number int `arg:"" help:"Number of the reason, as listed by 'settings show'."`
}

func (c *RemoveReasonCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if c.Number < 1 || c.Number > len(settings.QuitReasons) {
		return fmt.Errorf("no reason #%d (you have %d)", c.Number, len(settings.QuitReasons))
	}
	removed := settings.QuitReasons[c.Number-1]
	reasons := slices.Delete(slices.Clone(settings.QuitReasons), c.Number-1, c.Number)
	if _, err := ctx.Repo.UpdateSettings(map[string]any{constants.SettingQuitReasons: reasons}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("✓ Removed reason: %s\n", removed)
	return nil
}

type SetRewardCmd struct {
	Phase  int      `arg:"" help:"Phase number (1-4)."`
	Reward []string `arg:"" optional:"" help:"The reward. Leave empty to remove it."`
}

func (c *SetRewardCmd) Run(ctx *cli.Context) error {
	if _, ok := models.GetPhase(c.Phase); !ok {
		return fmt.Errorf("unknown phase %d (expected %d-%d)", c.Phase, constants.FirstPhase, constants.FinalPhase)
	}
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	rewards := maps.Clone(settings.PhaseRewards)
	reward := strings.TrimSpace(strings.Join(c.Reward, " "))
	if reward == "" {
		delete(rewards, c.Phase)
	} else {
		rewards[c.Phase] = reward
	}
	if _, err := ctx.Repo.UpdateSettings(map[string]any{constants.SettingPhaseRewards: rewards}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if reward == "" {
		ctx.Printf("✓ Removed the reward for phase %d\n", c.Phase)
	} else {
		ctx.Printf("✓ Phase %d reward: %s\n", c.Phase, reward)
	}
	return nil
}

type SetSpendCmd struct {
	Amount string `arg:"" help:"Weekly cost, e.g. 25 or $25."`
}

func (c *SetSpendCmd) Run(ctx *cli.Context) error {
	amount, err := validation.ParseWeeklySpend(c.Amount)
	if err != nil {
		return err
	}
	if _, err := ctx.Repo.UpdateSettings(map[string]any{constants.SettingWeeklySpend: amount}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("✓ Weekly spend set to $%.2f\n", amount)
	return nil
}

type NotificationsCmd struct {
	Enable  bool   `help:"Turn reminders on." xor:"toggle"`
	Disable bool   `help:"Turn reminders off." xor:"toggle"`
	Time    string `help:"Reminder time in HH:MM format."`
}

func (c *NotificationsCmd) Run(ctx *cli.Context) error {
	partial := map[string]any{}
	if c.Enable {
		partial[constants.SettingNotificationsEnabled] = true
	}
	if c.Disable {
		partial[constants.SettingNotificationsEnabled] = false
	}
	if c.Time != "" {
		if err := validation.ValidateNotificationTime(c.Time); err != nil {
			return err
		}
		partial[constants.SettingNotificationTime] = c.Time
	}

	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if len(partial) > 0 {
		settings, err = ctx.Repo.UpdateSettings(partial)
		if err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("✓ Settings updated successfully")
	}

	state := "off"
	if settings.NotificationsEnabled {
		state = "on"
	}
	ctx.Printf("Reminders are %s, daily at %s.\n", state, settings.NotificationTime)
	if settings.NotificationsEnabled {
		ctx.Println(cli.MutedStyle.Render("Run 'cloudcontrol remind --print-cron' for a crontab entry."))
	}
	return nil
}
