package habits

import (
	"errors"
	"strings"

	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/habits"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Start tracking a habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status." default:"1"`
	Done   HabitDoneCmd   `cmd:"" help:"Check a habit off for today."`
	Remove HabitRemoveCmd `cmd:"" help:"Stop tracking a habit."`
}

type HabitAddCmd struct {
	Text []string `arg:"" help:"Habit text."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	text := strings.Join(c.Text, " ")
	err := ctx.Tracker.AddHabit(text)
	if errors.Is(err, habits.ErrDuplicateHabit) {
		ctx.Printf("Already tracking %q.\n", strings.TrimSpace(text))
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added habit: %s\n", strings.TrimSpace(text))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	list, err := ctx.Tracker.ListHabits()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No habits yet. Add one with 'checkin habit add <text>'.")
		return nil
	}

	for _, h := range list {
		mark := "[ ]"
		if h.CompletedToday {
			mark = "[x]"
		}
		ctx.Printf("%s %s  (streak %d)\n", mark, h.Text, h.Streak)
	}
	return nil
}

type HabitDoneCmd struct {
	Text []string `arg:"" help:"Habit text."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	h, err := ctx.Tracker.CompleteHabit(strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s done for %s (streak %d)\n", h.Text, h.LastCompleted, h.Streak)
	return nil
}

type HabitRemoveCmd struct {
	Text []string `arg:"" help:"Habit text."`
}

func (c *HabitRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if err := ctx.Tracker.RemoveHabit(text); err != nil {
		return err
	}
	ctx.Printf("✓ Removed habit: %s\n", text)
	return nil
}
