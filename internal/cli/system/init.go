package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/cloudcontrol/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing data before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.wipe(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if c.Force && !ctx.IsFileStore() {
		if err := ctx.Repo.ResetAll(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}
	if err := ctx.Repo.EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to write defaults: %w", err)
	}

	ctx.Printf("Initialized cloudcontrol storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.Println(cli.MutedStyle.Render("Next: 'cloudcontrol phase' to read the plan, then 'cloudcontrol phase start'."))
	return nil
}

// wipe deletes a file-based store so Init starts from scratch. Database-backed
// stores are cleared after Init instead.
func (c *InitCmd) wipe(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return nil
	}
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		if backupPath := ctx.PerformAutomaticBackup(); backupPath != "" {
			ctx.Printf("Backed up existing data to: %s\n", backupPath)
		}
		// Close first to release the file
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
