package progress

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/phase"
)

type PhaseCmd struct {
	Show     PhaseShowCmd     `cmd:"" default:"withargs" help:"Show the program and the current phase."`
	Start    PhaseStartCmd    `cmd:"" help:"Start the current phase."`
	Complete PhaseCompleteCmd `cmd:"" help:"Complete the current phase and unlock the next one."`
}

type PhaseShowCmd struct {
	JSON bool `help:"Print phase progress as JSON." name:"json"`
}

type phaseReport struct {
	models.PhaseData
	Gate   phase.Gate `json:"gate"`
	Reward string     `json:"reward,omitempty"`
}

func (c *PhaseShowCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Repo.GetPhaseData()
	if err != nil {
		return fmt.Errorf("failed to load phase: %w", err)
	}
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	now := ctx.Now()
	gate := phase.CurrentGate(data, now)

	if c.JSON {
		return ctx.PrintJSON(phaseReport{
			PhaseData: data,
			Gate:      gate,
			Reward:    settings.PhaseRewards[data.CurrentPhase],
		})
	}

	for _, p := range models.Phases {
		status := phase.Status(data, p.ID)
		title := fmt.Sprintf("Phase %d: %s (%s)", p.ID, p.Name, p.Weeks)
		switch status {
		case constants.PhaseStatusCompleted:
			ctx.Println(cli.SuccessStyle.Render("✓ " + title))
		case constants.PhaseStatusCurrent:
			ctx.Println(cli.Header("▶ " + title))
		default:
			ctx.Println(cli.MutedStyle.Render("  " + title))
		}
		if status != constants.PhaseStatusCurrent {
			continue
		}

		for _, rule := range p.Rules {
			ctx.Printf("    • %s\n", rule)
		}
		ctx.Printf("    Goal: %s\n", p.Goal)
		if reward := settings.PhaseRewards[p.ID]; reward != "" {
			ctx.Printf("    Reward: %s\n", reward)
		}
		ctx.Printf("    %s\n", gateLine(gate))
	}
	return nil
}

func gateLine(g phase.Gate) string {
	switch {
	case !g.Started:
		return cli.WarningStyle.Render("Not started. Run 'cloudcontrol phase start' when you are ready.")
	case g.CanComplete:
		return cli.SuccessStyle.Render(fmt.Sprintf("Day %d of %d. Ready to complete.", g.DayCount, g.RequiredDays))
	default:
		return fmt.Sprintf("Day %d of %d, %s to go.", g.DayCount, g.RequiredDays, cli.Plural(g.DaysRemaining, "day", "days"))
	}
}

type PhaseStartCmd struct{}

func (c *PhaseStartCmd) Run(ctx *cli.Context) error {
	data, started, err := ctx.Repo.StartPhase()
	if err != nil {
		return fmt.Errorf("failed to start phase: %w", err)
	}
	p, _ := models.GetPhase(data.CurrentPhase)
	if !started {
		ctx.Printf("Phase %d is already running since %s.\n", p.ID, data.PhaseStartedAt.Local().Format(constants.DateFormat))
		return nil
	}
	ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Started phase %d: %s", p.ID, p.Name)))
	ctx.Printf("  Complete it after %s.\n", cli.Plural(p.RequiredDays(), "day", "days"))
	return nil
}

type PhaseCompleteCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *PhaseCompleteCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Repo.GetPhaseData()
	if err != nil {
		return fmt.Errorf("failed to load phase: %w", err)
	}
	if phase.IsFinal(data) {
		ctx.Println("You are on the final phase. There is nothing left to unlock.")
		return nil
	}

	current, _ := models.GetPhase(data.CurrentPhase)
	gate := phase.CurrentGate(data, ctx.Now())
	title := fmt.Sprintf("Complete phase %d: %s?", current.ID, current.Name)
	description := "The next phase will be unlocked."
	if !gate.CanComplete {
		ctx.Println(gateLine(gate))
		if !gate.Started {
			return nil
		}
		title = fmt.Sprintf("Complete phase %d early?", current.ID)
		description = fmt.Sprintf("%s remain before this phase has run its course.", cli.Plural(gate.DaysRemaining, "day", "days"))
	}
	ok, err := ctx.Confirmed(c.Yes, title, description)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Phase not completed.")
		return nil
	}

	data, advanced, err := ctx.Repo.AdvancePhase()
	if err != nil {
		return fmt.Errorf("failed to complete phase: %w", err)
	}
	if !advanced {
		ctx.Println("You are on the final phase. There is nothing left to unlock.")
		return nil
	}

	ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Completed phase %d: %s", current.ID, current.Name)))
	settings, err := ctx.Repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if reward := settings.PhaseRewards[current.ID]; reward != "" {
		ctx.Printf("  You earned your reward: %s\n", reward)
	}
	next, _ := models.GetPhase(data.CurrentPhase)
	ctx.Printf("  Unlocked phase %d: %s. Run 'cloudcontrol phase start' to begin.\n", next.ID, next.Name)
	return nil
}
