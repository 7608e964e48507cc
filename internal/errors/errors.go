package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/julianstephens/checkin/internal/auth"
	"github.com/julianstephens/checkin/internal/habits"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/schedule"
	"github.com/julianstephens/checkin/internal/session"
)

const prefix = "Error: "

var prefixColor = color.New(color.FgRed, color.Bold)

// Format renders err with the "Error: " prefix. It returns "" for nil.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return prefix + err.Error()
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf(prefix+format, args...)
}

// UserMessage turns an engine error into the sentence shown to the user.
// Errors outside the taxonomy fall back to their own text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrNoActiveSession):
		return "You are not logged in. Run 'checkin login' first."
	case errors.Is(err, auth.ErrAccountExists):
		return "That username is already taken."
	case errors.Is(err, auth.ErrAccountNotFound):
		return "No account with that username."
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "Incorrect password."
	case errors.Is(err, habits.ErrDuplicateHabit):
		return "You already track that habit."
	case errors.Is(err, habits.ErrHabitNotFound):
		return "No habit with that name."
	case errors.Is(err, habits.ErrAlreadyCompletedToday):
		return "Already checked off today. Come back tomorrow."
	case errors.Is(err, schedule.ErrEntryNotFound):
		return "No schedule entry with that id."
	case errors.Is(err, schedule.ErrAmbiguousID):
		return "That id prefix matches several entries. Use more characters."
	default:
		return err.Error()
	}
}

func printError(msg string) {
	prefixColor.Fprint(os.Stderr, prefix)
	fmt.Fprintln(os.Stderr, msg)
}

// Fatal logs err, prints its user message and exits with status 1.
// A nil err does nothing.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	printError(UserMessage(err))
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	printError(msg)
	os.Exit(1)
}
