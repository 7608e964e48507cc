package constants

// StorageBackend names a persistence substrate.
type StorageBackend string

const (
	BackendSQLite   StorageBackend = "sqlite"
	BackendJSON     StorageBackend = "json"
	BackendPostgres StorageBackend = "postgres"
	BackendMemory   StorageBackend = "memory"

	// Storage keys. Per-account keys are built with a prefix and the account id.
	AccountsKey       = "accounts"
	SessionKey        = "session:current"
	HabitsKeyPrefix   = "habits:"
	ScheduleKeyPrefix = "schedules:"
)
