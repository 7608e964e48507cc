package constants

const (
	AppName            = "checkin"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/checkin"
	DefaultConfigPath  = "~/.config/checkin/config.toml"
	DefaultDBPath      = "~/.config/checkin/checkin.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment overrides
	EnvDBConnection = "CHECKIN_DB_CONNECTION"
	EnvConfigPath   = "CHECKIN_CONFIG"
	EnvPassword     = "CHECKIN_PASSWORD"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "checkin-"
	BackupFileSuffix = ".db"
)
