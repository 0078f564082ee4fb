package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/cloudcontrol/internal/cli"
	"github.com/julianstephens/cloudcontrol/internal/cli/progress"
	"github.com/julianstephens/cloudcontrol/internal/cli/settings"
	"github.com/julianstephens/cloudcontrol/internal/cli/system"
	"github.com/julianstephens/cloudcontrol/internal/cli/tracking"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	apperrors "github.com/julianstephens/cloudcontrol/internal/errors"
	"github.com/julianstephens/cloudcontrol/internal/keyring"
	"github.com/julianstephens/cloudcontrol/internal/logger"
	"github.com/julianstephens/cloudcontrol/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path (.db for SQLite, .json for JSON) or PostgreSQL connection string. Use 'keyring' to read the connection string from the OS keyring. Credentials must NOT be embedded here." env:"CLOUDCONTROL_CONFIG"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize cloudcontrol storage."`
	Today    tracking.TodayCmd    `cmd:"" help:"Show today's dashboard." default:"1"`
	Log      tracking.LogCmd      `cmd:"" help:"Log a craving or a vape session."`
	Checkin  tracking.CheckinCmd  `cmd:"" help:"Answer the daily check-in."`
	Purchase tracking.PurchaseCmd `cmd:"" help:"Track money spent on vaping."`
	Stats    progress.StatsCmd    `cmd:"" help:"Show usage statistics."`
	Phase    progress.PhaseCmd    `cmd:"" help:"Follow the four-phase reduction program."`
	Health   progress.HealthCmd   `cmd:"" help:"Show health recovery milestones."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Remind   system.RemindCmd     `cmd:"" help:"Send the daily reminder notification (for cron or systemd timers)."`
	Backup   system.BackupCmd     `cmd:"" help:"Manage data backups."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Validate system.ValidateCmd   `cmd:"" help:"Check stored data for integrity problems."`
	Reset    system.ResetCmd      `cmd:"" help:"Erase all data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track cravings and vape sessions while working through a four-phase plan to quit nicotine."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":   constants.Version,
			"triggers":  strings.Join(constants.Triggers, ", "),
			"locations": locationNames(),
		},
	)

	config, source, err := resolveConfig(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir := filepath.Dir(expandHome(constants.DefaultConfigPath))
	// secret sources only ever hold PostgreSQL connection strings
	if source == "" && !storage.IsPostgresConnString(config) {
		configDir = filepath.Dir(config)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(err)
	}

	if source != "" {
		logger.Debug("Using connection string", "source", source)
	}

	store, err := openStore(config, source)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	// init and keyring commands work without loaded storage
	command := ctx.Command()
	if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", command, "storage", store.GetConfigPath())
	if err := ctx.Run(cli.NewContext(store)); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// resolveConfig picks the storage location. An explicit --config wins; otherwise the
// connection string comes from the environment or the OS keyring, and finally the
// default SQLite path. A non-empty source means the value came from one of those
// secret sources and may carry a password.
func resolveConfig(flag string) (string, keyring.Source, error) {
	switch flag {
	case "":
	case "keyring":
		conn, err := keyring.GetConnectionString()
		if err != nil {
			return "", "", err
		}
		return conn, keyring.SourceKeyring, nil
	default:
		return expandHome(flag), "", nil
	}

	conn, source, err := keyring.LookupConnection()
	if err == nil {
		return conn, source, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		return "", "", err
	}
	return expandHome(constants.DefaultConfigPath), "", nil
}

func openStore(config string, source keyring.Source) (storage.Backend, error) {
	if source != "" {
		return storage.NewPostgresStore(config), nil
	}
	store, err := storage.New(config)
	if errors.Is(err, storage.ErrEmbeddedCredentials) {
		return nil, errors.New("PostgreSQL connection strings with embedded credentials are not allowed in --config. " +
			"Store it with 'cloudcontrol keyring set', export " + constants.ConnectionEnvVar + ", or use a .pgpass file")
	}
	return store, err
}

func locationNames() string {
	names := make([]string, len(constants.Locations))
	for i, l := range constants.Locations {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
