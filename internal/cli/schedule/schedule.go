package schedule

import (
	"strings"

	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/validation"
)

// shortID is how many id characters listings show.
const shortID = 8

type ScheduleCmd struct {
	Add    ScheduleAddCmd    `cmd:"" help:"Add a schedule entry."`
	List   ScheduleListCmd   `cmd:"" help:"List schedule entries in date and time order." default:"1"`
	Done   ScheduleDoneCmd   `cmd:"" help:"Mark an entry done. The entry is kept."`
	Remove ScheduleRemoveCmd `cmd:"" help:"Delete an entry."`
}

type ScheduleAddCmd struct {
	Date string   `arg:"" help:"Date (YYYY-MM-DD) or 'today'."`
	Time string   `arg:"" help:"Time of day (HH:MM or a bare hour)."`
	Text []string `arg:"" help:"What is scheduled."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	e, err := ctx.Tracker.AddEntry(resolveDate(ctx, c.Date), c.Time, strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.Printf("✓ Scheduled %s %s %s [%s]\n", e.Date, e.Time, e.Text, short(e.ID))
	return nil
}

type ScheduleListCmd struct {
	Date  string `help:"Only show entries on this date (YYYY-MM-DD)."`
	Today bool   `help:"Only show today's entries."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	var (
		entries []models.ScheduleEntry
		err     error
	)
	switch {
	case c.Today:
		entries, err = ctx.Tracker.ListEntriesForDate(ctx.Tracker.Today())
	case c.Date != "":
		entries, err = ctx.Tracker.ListEntriesForDate(resolveDate(ctx, c.Date))
	default:
		entries, err = ctx.Tracker.ListEntries()
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		ctx.Println("Nothing scheduled.")
		return nil
	}
	for _, e := range entries {
		mark := "[ ]"
		if e.Done {
			mark = "[x]"
		}
		ctx.Printf("%s %s %s  %s  (%s)\n", mark, e.Date, e.Time, e.Text, short(e.ID))
	}

	result := validation.New().ValidateEntries(entries)
	for _, c := range result.Warnings() {
		ctx.Printf("⚠ %d entries share %s %s\n", len(c.EntryIDs), c.Date, c.Time)
	}
	return nil
}

type ScheduleDoneCmd struct {
	ID string `arg:"" help:"Entry id or a unique prefix of it."`
}

func (c *ScheduleDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	e, err := ctx.Tracker.CompleteEntry(c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Done: %s %s %s\n", e.Date, e.Time, e.Text)
	return nil
}

type ScheduleRemoveCmd struct {
	ID string `arg:"" help:"Entry id or a unique prefix of it."`
}

func (c *ScheduleRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	if err := ctx.Tracker.RemoveEntry(c.ID); err != nil {
		return err
	}
	ctx.Println("✓ Entry removed")
	return nil
}

func resolveDate(ctx *cli.Context, date string) string {
	if strings.EqualFold(strings.TrimSpace(date), "today") {
		return ctx.Tracker.Today()
	}
	return date
}

func short(id string) string {
	if len(id) > shortID {
		return id[:shortID]
	}
	return id
}
