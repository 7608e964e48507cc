package system

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/migration"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/utils"
	"github.com/julianstephens/checkin/internal/validation"
)

// migrated is implemented by the SQL backends.
type migrated interface {
	Runner() (*migration.Runner, error)
}

type DoctorCmd struct{}

type check struct {
	name string
	// warn marks checks whose failure does not fail the command
	warn    bool
	needsDB bool
	run     func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Storage reachable", run: checkStoreReachable},
		{name: "Schema version", needsDB: true, run: checkSchema},
		{name: "Data integrity", needsDB: true, run: checkDataIntegrity},
		{name: "Session", needsDB: true, run: checkSession},
		{name: "Schedule conflicts", warn: true, needsDB: true, run: checkScheduleConflicts},
		{name: "Backups present", warn: true, run: checkBackupsPresent},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	reachable := false
	for i, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				reachable = true
			}
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Some checks failed. Please review the errors above.")
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.Keys()
	return err
}

func checkSchema(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrated)
	if !ok {
		return nil
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'checkin init'", pending)
	}
	return nil
}

func checkDataIntegrity(ctx *cli.Context) error {
	problems, err := inspect(ctx.Store)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// inspect decodes every stored collection and reports anything the stores
// would never have written themselves.
func inspect(store storage.Provider) ([]string, error) {
	accounts := map[string]models.Account{}
	if _, err := storage.GetJSON(store, constants.AccountsKey, &accounts); err != nil {
		return nil, err
	}

	keys, err := store.Keys()
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, key := range keys {
		switch {
		case strings.HasPrefix(key, constants.HabitsKeyPrefix):
			owner := strings.TrimPrefix(key, constants.HabitsKeyPrefix)
			if _, ok := accounts[owner]; !ok {
				problems = append(problems, fmt.Sprintf("%s belongs to an unknown account", key))
			}
			var list []models.Habit
			if _, err := storage.GetJSON(store, key, &list); err != nil {
				problems = append(problems, err.Error())
				continue
			}
			seen := map[string]bool{}
			for _, h := range list {
				if seen[h.Text] {
					problems = append(problems, fmt.Sprintf("%s has duplicate habit %q", key, h.Text))
				}
				seen[h.Text] = true
				if h.Streak < 0 {
					problems = append(problems, fmt.Sprintf("%s habit %q has a negative streak", key, h.Text))
				}
			}

		case strings.HasPrefix(key, constants.ScheduleKeyPrefix):
			owner := strings.TrimPrefix(key, constants.ScheduleKeyPrefix)
			if _, ok := accounts[owner]; !ok {
				problems = append(problems, fmt.Sprintf("%s belongs to an unknown account", key))
			}
			var entries []models.ScheduleEntry
			if _, err := storage.GetJSON(store, key, &entries); err != nil {
				problems = append(problems, err.Error())
				continue
			}
			result := validation.New().ValidateEntries(entries)
			for _, c := range result.Errors() {
				problems = append(problems, key+": "+c.Description)
			}
		}
	}

	sort.Strings(problems)
	return problems, nil
}

func checkScheduleConflicts(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return err
	}

	var clashes []string
	for _, key := range keys {
		if !strings.HasPrefix(key, constants.ScheduleKeyPrefix) {
			continue
		}
		var entries []models.ScheduleEntry
		if _, err := storage.GetJSON(ctx.Store, key, &entries); err != nil {
			// reported by the integrity check
			continue
		}
		result := validation.New().ValidateEntries(entries)
		for _, c := range result.Warnings() {
			owner := strings.TrimPrefix(key, constants.ScheduleKeyPrefix)
			clashes = append(clashes, owner+": "+c.Description)
		}
	}
	if len(clashes) > 0 {
		return errors.New(strings.Join(clashes, "; "))
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	id, ok, err := ctx.Store.Get(constants.SessionKey)
	if err != nil || !ok {
		return err
	}
	accounts := map[string]models.Account{}
	if _, err := storage.GetJSON(ctx.Store, constants.AccountsKey, &accounts); err != nil {
		return err
	}
	if _, exists := accounts[id]; !exists {
		return fmt.Errorf("current session refers to unknown account %q, run 'checkin logout'", id)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	switch ctx.Config.Storage.Backend {
	case constants.BackendSQLite, constants.BackendJSON:
	default:
		return fmt.Errorf("backups are not managed for the %s backend", ctx.Config.Storage.Backend)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, run 'checkin backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	tz := ctx.Config.General.Timezone
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	now := time.Now().In(loc)
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
