package system

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Confirmed(c.Yes,
		"Erase all cloudcontrol data?",
		"Logs, check-ins, purchases, phase progress and settings will be deleted.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Reset cancelled.")
		return nil
	}

	if backupPath := ctx.PerformAutomaticBackup(); backupPath != "" {
		ctx.Printf("Backed up current data to: %s\n", backupPath)
	}
	if err := ctx.Repo.ResetAll(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	ctx.Println(cli.SuccessStyle.Render("✓ All data cleared"))
	return nil
}
