package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	backend := ctx.Config.Storage.Backend
	path := ctx.Store.GetConfigPath()
	fileBacked := backend == constants.BackendSQLite || backend == constants.BackendJSON

	if fileBacked {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil && c.Force:
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", path)
		case statErr == nil && backend == constants.BackendJSON:
			ctx.Printf("Storage already initialized at: %s\n", path)
			return nil
		case statErr != nil && !os.IsNotExist(statErr):
			return fmt.Errorf("failed to access existing database: %w", statErr)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, path)
	return nil
}
