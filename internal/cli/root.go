package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/backup"
	"github.com/julianstephens/cloudcontrol/internal/logger"
	"github.com/julianstephens/cloudcontrol/internal/notifier"
	"github.com/julianstephens/cloudcontrol/internal/storage"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store    storage.Backend
	Repo     *storage.Repository
	Notifier *notifier.Notifier
	Out      io.Writer
	Confirm  ConfirmFunc
}

// NewContext wires a Context for store that prints to stdout and prompts with huh.
func NewContext(store storage.Backend) *Context {
	return &Context{
		Store:    store,
		Repo:     storage.NewRepository(store),
		Notifier: notifier.New(),
		Out:      os.Stdout,
		Confirm:  HuhConfirm,
	}
}

// Now returns the current time from the repository clock.
func (c *Context) Now() time.Time {
	return c.Repo.Now()
}

// Printf writes formatted output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line of output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// IsFileStore reports whether the backend lives in a local file that can be backed up.
func (c *Context) IsFileStore() bool {
	switch c.Store.(type) {
	case *storage.SQLiteStore, *storage.JSONStore:
		return true
	default:
		return false
	}
}

// PerformAutomaticBackup snapshots a file-based store, logging rather than returning
// failures. It returns the backup path, or "" when nothing was written.
func (c *Context) PerformAutomaticBackup() string {
	if !c.IsFileStore() {
		return ""
	}
	path, err := backup.NewManager(c.Store.GetConfigPath()).CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return ""
	}
	return path
}
