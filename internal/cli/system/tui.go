package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Tracker), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
