package progress

import (
	"errors"
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/stats"
)

type StatsCmd struct {
	Week    StatsWeekCmd    `cmd:"" default:"withargs" help:"Show sessions and cravings per day."`
	Summary StatsSummaryCmd `cmd:"" help:"Show totals for the last seven days."`
	Trend   StatsTrendCmd   `cmd:"" help:"Show the daily craving trend."`
}

type StatsWeekCmd struct {
	Days int  `help:"Number of days to show, ending today." default:"7"`
	All  bool `help:"Show every day since the first log entry."`
	JSON bool `help:"Print the buckets as JSON." name:"json"`
}

func (c *StatsWeekCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 && !c.All {
		return errors.New("--days must be at least 1")
	}
	logs, err := ctx.Repo.GetLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}

	var numDays *int
	if !c.All {
		numDays = &c.Days
	}
	days := stats.WeeklyStats(logs, numDays, ctx.Now())

	if c.JSON {
		return ctx.PrintJSON(days)
	}

	maxCount := 0
	for _, d := range days {
		maxCount = max(maxCount, d.Sessions, d.Cravings)
	}

	ctx.Println(cli.Header(fmt.Sprintf("Last %s", cli.Plural(len(days), "day", "days"))))
	ctx.Println(cli.MutedStyle.Render("Sessions"))
	for _, d := range days {
		ctx.Println(cli.Row(d.Label, d.Sessions, maxCount))
	}
	ctx.Println()
	ctx.Println(cli.MutedStyle.Render("Cravings"))
	for _, d := range days {
		ctx.Println(cli.Row(d.Label, d.Cravings, maxCount))
	}

	nightWakes := 0
	for _, d := range days {
		nightWakes += d.NightWakes
	}
	if nightWakes > 0 {
		ctx.Println()
		ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("%s with a night-wake session", cli.Plural(nightWakes, "session", "sessions"))))
	}
	return nil
}

type StatsSummaryCmd struct {
	JSON bool `help:"Print the summary as JSON." name:"json"`
}

type summaryReport struct {
	stats.Summary
	BedFreeStreak int `json:"bedFreeStreak"`
}

func (c *StatsSummaryCmd) Run(ctx *cli.Context) error {
	logs, err := ctx.Repo.GetLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	now := ctx.Now()
	report := summaryReport{
		Summary:       stats.WeeklySummary(logs, now),
		BedFreeStreak: stats.BedFreeStreak(logs, now),
	}

	if c.JSON {
		return ctx.PrintJSON(report)
	}

	ctx.Println(cli.Card(
		cli.Header(fmt.Sprintf("Last %d days", constants.SummaryDays)),
		fmt.Sprintf("Sessions:         %d", report.TotalSessions),
		fmt.Sprintf("Cravings:         %d", report.TotalCravings),
		fmt.Sprintf("Night wakes:      %d", report.TotalNightWakes),
		fmt.Sprintf("Sessions per day: %s", report.AvgSessionsPerDay),
		fmt.Sprintf("Bed-free streak:  %s", cli.Plural(report.BedFreeStreak, "day", "days")),
	))
	return nil
}

type StatsTrendCmd struct {
	Days int  `help:"Number of days in the trend, ending today." default:"14"`
	JSON bool `help:"Print the trend as JSON." name:"json"`
}

func (c *StatsTrendCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return errors.New("--days must be at least 1")
	}
	logs, err := ctx.Repo.GetLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	points := stats.CravingTrend(logs, c.Days, ctx.Now())

	if c.JSON {
		return ctx.PrintJSON(points)
	}

	maxCount, total := 0, 0
	for _, p := range points {
		maxCount = max(maxCount, p.Count)
		total += p.Count
	}

	ctx.Println(cli.Header(fmt.Sprintf("Craving trend, last %s", cli.Plural(len(points), "day", "days"))))
	for _, p := range points {
		ctx.Println(cli.Row(p.Label, p.Count, maxCount))
	}
	ctx.Println()
	ctx.Printf("Total: %s\n", cli.Plural(total, "craving", "cravings"))
	if len(points) >= 2 {
		half := len(points) / 2
		first, second := 0, 0
		for i, p := range points {
			if i < half {
				first += p.Count
			} else if i >= len(points)-half {
				second += p.Count
			}
		}
		switch {
		case second < first:
			ctx.Println(cli.SuccessStyle.Render("Cravings are trending down."))
		case second > first:
			ctx.Println(cli.WarningStyle.Render("Cravings are trending up."))
		default:
			ctx.Println(cli.MutedStyle.Render("Cravings are holding steady."))
		}
	}
	return nil
}
