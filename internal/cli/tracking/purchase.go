package tracking

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/stats"
	"github.com/julianstephens/cloudcontrol/internal/validation"
)

type PurchaseCmd struct {
	Add  PurchaseAddCmd  `cmd:"" help:"Record money spent on vaping supplies."`
	List PurchaseListCmd `cmd:"" help:"List recorded purchases and the total spent."`
}

type PurchaseAddCmd struct {
	Amount string `arg:"" help:"Amount spent, e.g. 12.50 or $12.50."`
}

func (c *PurchaseAddCmd) Run(ctx *cli.Context) error {
	amount, err := validation.ParseAmount(c.Amount)
	if err != nil {
		return err
	}
	if _, err := ctx.Repo.AddPurchase(amount); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	purchases, err := ctx.Repo.GetPurchases()
	if err != nil {
		return fmt.Errorf("failed to load purchases: %w", err)
	}
	summary := stats.Spending(purchases, ctx.Now())
	ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded $%.2f", amount)))
	ctx.Printf("  Total spent: $%.2f across %s\n", summary.Total, cli.Plural(summary.Count, "purchase", "purchases"))
	return nil
}

type PurchaseListCmd struct {
	JSON bool `help:"Print purchases as JSON." name:"json"`
}

type purchaseList struct {
	Purchases []models.Purchase     `json:"purchases"`
	Summary   stats.SpendingSummary `json:"summary"`
}

func (c *PurchaseListCmd) Run(ctx *cli.Context) error {
	purchases, err := ctx.Repo.GetPurchases()
	if err != nil {
		return fmt.Errorf("failed to load purchases: %w", err)
	}
	summary := stats.Spending(purchases, ctx.Now())

	if c.JSON {
		return ctx.PrintJSON(purchaseList{Purchases: purchases, Summary: summary})
	}

	if len(purchases) == 0 {
		ctx.Println("No purchases recorded.")
		return nil
	}

	ctx.Println(cli.Header("Purchases"))
	for _, p := range purchases {
		ctx.Printf("  %s  $%8.2f\n", p.Timestamp.Local().Format(constants.DateFormat), p.Amount)
	}
	ctx.Println()
	ctx.Printf("Total: $%.2f (%s over %s)\n",
		summary.Total,
		cli.Plural(summary.Count, "purchase", "purchases"),
		cli.Plural(summary.DaysSinceFirst, "day", "days"))
	return nil
}
