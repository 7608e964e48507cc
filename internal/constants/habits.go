package constants

// StreakPolicy decides how a completion after a gap affects a habit's streak.
type StreakPolicy string

// DigestAlgorithm names the one-way function applied to passwords.
type DigestAlgorithm string

const (
	// StreakResetOnGap restarts the streak at 1 unless the previous completion was yesterday.
	StreakResetOnGap StreakPolicy = "reset_on_gap"
	// StreakAlwaysIncrement adds 1 on every completion regardless of missed days.
	StreakAlwaysIncrement StreakPolicy = "always_increment"

	DigestSHA256  DigestAlgorithm = "sha256"
	DigestBlake2b DigestAlgorithm = "blake2b"
)
