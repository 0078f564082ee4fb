package system

import (
	"fmt"

	"github.com/julianstephens/cloudcontrol/internal/cli"
)

type ValidateCmd struct {
	JSON bool `help:"Print conflicts as JSON." name:"json"`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := ctx.Repo.Validate()
	if err != nil {
		return fmt.Errorf("failed to validate data: %w", err)
	}

	if c.JSON {
		if err := ctx.PrintJSON(result.Conflicts); err != nil {
			return err
		}
	} else if result.HasConflicts() {
		ctx.Println(cli.WarningStyle.Render(result.FormatReport()))
	} else {
		ctx.Println(cli.SuccessStyle.Render("✓ " + result.FormatReport()))
	}

	if result.HasConflicts() {
		return fmt.Errorf("found %s", cli.Plural(len(result.Conflicts), "data integrity problem", "data integrity problems"))
	}
	return nil
}
