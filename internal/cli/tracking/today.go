package tracking

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/checkin"
	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/stats"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

type TodayCmd struct {
	JSON bool `help:"Print the dashboard as JSON." name:"json"`
}

type todayReport struct {
	Date             string                `json:"date"`
	Sessions         int                   `json:"sessions"`
	Cravings         int                   `json:"cravings"`
	NightWakes       int                   `json:"nightWakes"`
	SinceLastSession string                `json:"sinceLastSession,omitempty"`
	BedFreeStreak    int                   `json:"bedFreeStreak"`
	CheckedIn        bool                  `json:"checkedIn"`
	StuckToRules     *bool                 `json:"stuckToRules"`
	CurrentPhase     int                   `json:"currentPhase"`
	Spending         stats.SpendingSummary `json:"spending"`
	EstimatedSavings float64               `json:"estimatedSavings,omitempty"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	report, err := buildTodayReport(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(report)
	}

	now := ctx.Now()
	lines := []string{
		cli.Header("Today, " + now.Format("Mon Jan 2")),
		fmt.Sprintf("Sessions:    %d", report.Sessions),
		fmt.Sprintf("Cravings:    %d", report.Cravings),
		fmt.Sprintf("Night wakes: %d", report.NightWakes),
		"",
	}
	if report.SinceLastSession != "" {
		lines = append(lines, fmt.Sprintf("Last session:    %s ago", report.SinceLastSession))
	} else {
		lines = append(lines, "Last session:    "+cli.MutedStyle.Render("none logged"))
	}
	lines = append(lines, fmt.Sprintf("Bed-free streak: %s", cli.Plural(report.BedFreeStreak, "day", "days")))

	switch {
	case !report.CheckedIn:
		lines = append(lines, "Check-in:        "+cli.WarningStyle.Render("not yet"))
	case *report.StuckToRules:
		lines = append(lines, "Check-in:        "+cli.SuccessStyle.Render("✓ stuck to the rules"))
	default:
		lines = append(lines, "Check-in:        "+cli.DangerStyle.Render("✗ slipped"))
	}
	lines = append(lines, fmt.Sprintf("Phase:           %d of %d", report.CurrentPhase, constants.FinalPhase))

	if report.Spending.Count > 0 {
		lines = append(lines, fmt.Sprintf("Spent:           $%.2f (%s over %s)",
			report.Spending.Total,
			cli.Plural(report.Spending.Count, "purchase", "purchases"),
			cli.Plural(report.Spending.DaysSinceFirst, "day", "days")))
	}
	if report.EstimatedSavings > 0 {
		lines = append(lines, fmt.Sprintf("Saved so far:    $%.2f", report.EstimatedSavings))
	}

	ctx.Println(cli.Card(lines...))
	return nil
}

func buildTodayReport(ctx *cli.Context) (todayReport, error) {
	now := ctx.Now()

	logs, err := ctx.Repo.GetLogs()
	if err != nil {
		return todayReport{}, fmt.Errorf("failed to load logs: %w", err)
	}
	purchases, err := ctx.Repo.GetPurchases()
	if err != nil {
		return todayReport{}, fmt.Errorf("failed to load purchases: %w", err)
	}
	checkins, err := ctx.Repo.GetCheckins()
	if err != nil {
		return todayReport{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	data, err := ctx.Repo.GetPhaseData()
	if err != nil {
		return todayReport{}, fmt.Errorf("failed to load phase: %w", err)
	}
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return todayReport{}, fmt.Errorf("failed to load settings: %w", err)
	}

	todays := stats.TodayLogs(logs, now)
	report := todayReport{
		Date:          utils.DayKey(now),
		Sessions:      stats.CountByType(todays, constants.LogTypeVapeSession),
		Cravings:      stats.CountByType(todays, constants.LogTypeCraving),
		NightWakes:    stats.NightWakeCount(todays),
		BedFreeStreak: stats.BedFreeStreak(logs, now),
		CurrentPhase:  data.CurrentPhase,
		Spending:      stats.Spending(purchases, now),
	}
	if d, ok := stats.TimeSinceLastSession(logs, now); ok {
		report.SinceLastSession = stats.FormatSince(d)
	}
	if today := checkin.Today(checkins, now); today != nil {
		report.CheckedIn = true
		stuck := today.StuckToRules
		report.StuckToRules = &stuck
	}
	if settings.QuitDate != nil && settings.WeeklySpend > 0 && now.After(*settings.QuitDate) {
		weeks := now.Sub(*settings.QuitDate).Hours() / (24 * 7)
		report.EstimatedSavings = weeks * settings.WeeklySpend
	}
	return report, nil
}
