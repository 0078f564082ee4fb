package progress

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/health"
	"github.com/julianstephens/cloudcontrol/internal/models"
)

type HealthCmd struct {
	JSON bool `help:"Print health progress as JSON." name:"json"`
}

type healthReport struct {
	QuitDate  string           `json:"quitDate"`
	DaysUntil *int             `json:"daysUntil,omitempty"`
	Progress  *health.Progress `json:"progress,omitempty"`
}

func (c *HealthCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.QuitDate == nil {
		if c.JSON {
			return ctx.PrintJSON(healthReport{})
		}
		ctx.Println("No quit date set. Use 'cloudcontrol settings set-quit-date YYYY-MM-DD' to start the health timeline.")
		return nil
	}

	now := ctx.Now()
	quit := *settings.QuitDate
	report := healthReport{QuitDate: quit.Local().Format(constants.DateFormat)}

	if now.Before(quit) {
		days := health.DaysUntil(quit, now)
		report.DaysUntil = &days
		if c.JSON {
			return ctx.PrintJSON(report)
		}
		ctx.Println(cli.Header("Quit date: " + report.QuitDate))
		ctx.Printf("%s to go.\n", cli.Plural(days, "day", "days"))
		return nil
	}

	progress := health.CurrentProgress(quit, now)
	report.Progress = &progress
	if c.JSON {
		return ctx.PrintJSON(report)
	}

	ctx.Println(cli.Header(fmt.Sprintf("Nicotine-free since %s", report.QuitDate)))
	ctx.Printf("%d of %d milestones reached\n\n", progress.Achieved, progress.Total)
	for _, m := range models.HealthMilestones {
		if health.Reached(m, quit, now) {
			ctx.Println(cli.SuccessStyle.Render("✓ "+m.Title) + cli.MutedStyle.Render("  "+m.Description))
			continue
		}
		ctx.Println(cli.MutedStyle.Render("○ " + m.Title))
	}
	if !progress.Complete() {
		ctx.Println()
		ctx.Printf("Next: %s in %s\n", progress.Next.Title, progress.TimeRemaining)
	}
	return nil
}
