package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/checkin/internal/backup"
	"github.com/julianstephens/checkin/internal/config"
	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Config  *config.Config

	// Out receives command output. Defaults to stdout.
	Out io.Writer
	// PromptPassword asks for a secret when no --password flag or
	// CHECKIN_PASSWORD is given. Defaults to a huh password input.
	PromptPassword func(title string) (string, error)
	// Confirm asks a yes/no question. Defaults to a huh confirm.
	Confirm func(title string) (bool, error)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Load opens the store. Every command except init calls it first.
func (c *Context) Load() error {
	return c.Store.Load()
}

// Password resolves a password from, in order, the flag value, the
// CHECKIN_PASSWORD environment variable and an interactive prompt.
func (c *Context) Password(flag, title string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(constants.EnvPassword); env != "" {
		return env, nil
	}

	prompt := c.PromptPassword
	if prompt == nil {
		prompt = huhPassword
	}
	return prompt(title)
}

func huhPassword(title string) (string, error) {
	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("password is required")
			}
			return nil
		}).
		Value(&password).
		Run()
	return password, err
}

// Ask returns true when the user agrees to title.
func (c *Context) Ask(title string) (bool, error) {
	confirm := c.Confirm
	if confirm == nil {
		confirm = huhConfirm
	}
	return confirm(title)
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// BackupManager returns a manager for the configured store, or an error for
// backends that are not file based.
func (c *Context) BackupManager() (*backup.Manager, error) {
	return backup.NewManager(c.Store.GetConfigPath(), c.Config.Storage.Backend)
}

// PerformAutomaticBackup snapshots file-backed stores. Failures are logged,
// never returned.
func (c *Context) PerformAutomaticBackup() {
	if c.Config == nil {
		return
	}
	switch c.Config.Storage.Backend {
	case constants.BackendSQLite, constants.BackendJSON:
	default:
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Warn("Automatic backup unavailable", "error", err)
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
