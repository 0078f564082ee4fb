package tracking

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/stats"
	"github.com/julianstephens/cloudcontrol/internal/validation"
)

type LogCmd struct {
	Craving LogCravingCmd `cmd:"" help:"Log a craving."`
	Session LogSessionCmd `cmd:"" help:"Log a vape session."`
}

// EntryFlags are shared by both log commands.
type EntryFlags struct {
	Trigger   string `help:"What set it off (${triggers})." default:"craving"`
	Location  string `help:"Where it happened (${locations})." default:"other"`
	NightWake bool   `help:"It happened after waking up during the night." name:"night-wake"`
}

func (f EntryFlags) entry(logType constants.LogType) (models.LogEntry, error) {
	loc, err := validation.ValidateLocation(f.Location)
	if err != nil {
		return models.LogEntry{}, err
	}
	return models.LogEntry{
		Type:        logType,
		Trigger:     validation.NormalizeTrigger(f.Trigger),
		Location:    loc,
		IsNightWake: f.NightWake,
	}, nil
}

type LogCravingCmd struct {
	EntryFlags `embed:""`
}

func (c *LogCravingCmd) Run(ctx *cli.Context) error {
	entry, err := c.entry(constants.LogTypeCraving)
	if err != nil {
		return err
	}
	entry, err = ctx.Repo.AddLog(entry)
	if err != nil {
		return fmt.Errorf("failed to log craving: %w", err)
	}

	logs, err := ctx.Repo.GetLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	today := stats.CountByType(stats.TodayLogs(logs, ctx.Now()), constants.LogTypeCraving)

	ctx.Println(cli.SuccessStyle.Render("✓ Craving logged") + cli.MutedStyle.Render(fmt.Sprintf(" (%s today)", cli.Plural(today, "craving", "cravings"))))
	strategy := models.ReplacementStrategies[max(today-1, 0)%len(models.ReplacementStrategies)]
	ctx.Printf("  Try instead: %s\n", strategy)

	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if len(settings.QuitReasons) > 0 {
		reason := settings.QuitReasons[max(today-1, 0)%len(settings.QuitReasons)]
		ctx.Printf("  Remember: %s\n", reason)
	}
	return nil
}

type LogSessionCmd struct {
	EntryFlags `embed:""`
	Drags      int `help:"Number of drags taken (1-10)." default:"3"`
}

func (c *LogSessionCmd) Run(ctx *cli.Context) error {
	if err := validation.ValidateDragCount(c.Drags); err != nil {
		return err
	}
	entry, err := c.entry(constants.LogTypeVapeSession)
	if err != nil {
		return err
	}
	drags := c.Drags
	entry.DragCount = &drags

	entry, err = ctx.Repo.AddLog(entry)
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}

	logs, err := ctx.Repo.GetLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	today := stats.CountByType(stats.TodayLogs(logs, ctx.Now()), constants.LogTypeVapeSession)
	ctx.Println(cli.SuccessStyle.Render("✓ Session logged") +
		cli.MutedStyle.Render(fmt.Sprintf(" (%s, %s today)", cli.Plural(drags, "drag", "drags"), cli.Plural(today, "session", "sessions"))))

	data, err := ctx.Repo.GetPhaseData()
	if err != nil {
		return fmt.Errorf("failed to load phase: %w", err)
	}
	if warning := phaseOneWarning(data, entry); warning != "" {
		ctx.Println(cli.WarningStyle.Render("  " + warning))
	}
	return nil
}

// phaseOneWarning flags sessions that break the first phase's rules.
func phaseOneWarning(data models.PhaseData, entry models.LogEntry) string {
	if data.CurrentPhase != constants.FirstPhase {
		return ""
	}
	switch entry.Location {
	case constants.LocationBed:
		return "Phase 1 rule: the vape sleeps in another room."
	case constants.LocationCoding:
		return "Phase 1 rule: no vaping while coding. Use the designated spot."
	}
	return ""
}
