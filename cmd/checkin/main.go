package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/checkin/internal/auth"
	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/cli/account"
	"github.com/julianstephens/checkin/internal/cli/backups"
	"github.com/julianstephens/checkin/internal/cli/habits"
	"github.com/julianstephens/checkin/internal/cli/schedule"
	"github.com/julianstephens/checkin/internal/cli/system"
	"github.com/julianstephens/checkin/internal/config"
	"github.com/julianstephens/checkin/internal/constants"
	apperrors "github.com/julianstephens/checkin/internal/errors"
	"github.com/julianstephens/checkin/internal/keyring"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/storage/postgres"
	"github.com/julianstephens/checkin/internal/storage/sqlite"
	"github.com/julianstephens/checkin/internal/tracker"
	"github.com/julianstephens/checkin/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the config file (TOML or YAML)." type:"string" default:"${config_path}" env:"CHECKIN_CONFIG"`
	DB      string `name:"db" help:"Database path or PostgreSQL connection string. Overrides the config file. PostgreSQL credentials must NOT be embedded; use CHECKIN_DB_CONNECTION, .pgpass, or the OS keyring instead." type:"string"`
	Debug   bool   `help:"Log debug output to stderr as well as the log file."`

	Init     system.InitCmd       `cmd:"" help:"Initialize checkin storage."`
	Register account.RegisterCmd  `cmd:"" help:"Create an account."`
	Login    account.LoginCmd     `cmd:"" help:"Sign in to an account."`
	Logout   account.LogoutCmd    `cmd:"" help:"Sign out."`
	Whoami   account.WhoamiCmd    `cmd:"" help:"Show the signed-in account."`
	Habit    habits.HabitCmd      `cmd:"" help:"Track daily habits and streaks."`
	Schedule schedule.ScheduleCmd `cmd:"" help:"Manage dated schedule entries."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily habit streaks and a dated schedule, per account"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir, err := config.ExpandHome(constants.DefaultConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Logging.Debug,
		ConfigDir: configDir,
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := openStore(cfg, CLI.DB)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx, err := newContext(cfg, store)
	if err != nil {
		apperrors.Fatal(err)
	}

	logger.Debug("running command", "command", ctx.Command(), "backend", cfg.Storage.Backend)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// openStore picks a backend from the --db flag and the config file. The
// chosen backend and location are written back into cfg so commands that
// branch on them see the effective values.
func openStore(cfg *config.Config, dbFlag string) (storage.Provider, error) {
	if dbFlag != "" {
		cfg.Storage.Path = dbFlag
		if postgres.IsConnString(dbFlag) {
			cfg.Storage.Backend = constants.BackendPostgres
		}
	}

	switch cfg.Storage.Backend {
	case constants.BackendPostgres:
		connStr, err := resolveConnString(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		if err := postgres.ValidateConnString(connStr); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; use %s, a .pgpass file, or 'checkin keyring set' instead", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	case constants.BackendJSON:
		path, err := config.ExpandHome(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		cfg.Storage.Path = path
		return storage.NewJSONStore(path), nil
	case constants.BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		path, err := config.ExpandHome(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		cfg.Storage.Path = path
		return sqlite.NewStore(path), nil
	}
}

// resolveConnString prefers an explicit value, then the environment, then
// the OS keyring.
func resolveConnString(configured string) (string, error) {
	if postgres.IsConnString(configured) {
		return configured, nil
	}
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) || errors.Is(err, keyring.ErrKeyringUnavailable) {
			return "", fmt.Errorf("no PostgreSQL connection string configured; pass --db, set %s, or run 'checkin keyring set'", constants.EnvDBConnection)
		}
		return "", err
	}
	return connStr, nil
}

func newContext(cfg *config.Config, store storage.Provider) (*cli.Context, error) {
	loc, err := utils.LoadLocation(cfg.General.Timezone)
	if err != nil {
		return nil, err
	}
	digest, err := auth.DigestFor(cfg.Auth.Digest)
	if err != nil {
		return nil, err
	}

	return &cli.Context{
		Store:  store,
		Config: cfg,
		Tracker: tracker.New(store, tracker.Options{
			Clock:        utils.SystemClock{Location: loc},
			StreakPolicy: cfg.Habits.StreakPolicy,
			Digest:       digest,
		}),
	}, nil
}
