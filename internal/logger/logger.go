package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/checkin/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init is called, and
// every helper below is a no-op while it is.
var Logger *log.Logger

const logFileName = constants.AppName + ".log"

type Config struct {
	Debug     bool
	ConfigDir string

	// Output replaces the rotating log file when set. Tests use it to
	// capture what was logged.
	Output io.Writer
}

// Path returns the log file location for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", logFileName)
}

func Init(cfg Config) error {
	var writer io.Writer = cfg.Output
	if writer == nil {
		logFile := Path(cfg.ConfigDir)
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		writer = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		if cfg.Output == nil {
			writer = io.MultiWriter(os.Stderr, writer)
		}
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
