package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/checkin/internal/cli"
	"github.com/julianstephens/checkin/internal/session"
)

type RegisterCmd struct {
	Username string `arg:"" help:"Account name (case-sensitive)."`
	Password string `help:"Password. Prompted for when omitted." env:"CHECKIN_PASSWORD"`
	Login    bool   `help:"Log in after registering."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	password, err := ctx.Password(c.Password, "Choose a password")
	if err != nil {
		return err
	}
	if err := ctx.Tracker.Register(c.Username, password); err != nil {
		return err
	}
	username := strings.TrimSpace(c.Username)
	ctx.Printf("✓ Registered %s\n", username)

	if c.Login {
		if err := ctx.Tracker.Login(username, password); err != nil {
			return err
		}
		ctx.Printf("✓ Logged in as %s\n", username)
	}
	return nil
}

type LoginCmd struct {
	Username string `arg:"" help:"Account name."`
	Password string `help:"Password. Prompted for when omitted." env:"CHECKIN_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	password, err := ctx.Password(c.Password, fmt.Sprintf("Password for %s", strings.TrimSpace(c.Username)))
	if err != nil {
		return err
	}
	if err := ctx.Tracker.Login(c.Username, password); err != nil {
		return err
	}
	ctx.Printf("✓ Logged in as %s\n", strings.TrimSpace(c.Username))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	if err := ctx.Tracker.Logout(); err != nil {
		return err
	}
	ctx.Println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	id, err := ctx.Tracker.Whoami()
	if errors.Is(err, session.ErrNoActiveSession) {
		ctx.Println("Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Println(id)
	return nil
}
