package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/julianstephens/checkin/internal/constants"
)

// DigestFunc maps a plaintext password to a fixed-length hex string.
type DigestFunc func(plaintext string) string

func SHA256Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func Blake2bDigest(plaintext string) string {
	sum := blake2b.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// DigestFor returns the digest function for a configured algorithm.
func DigestFor(algorithm constants.DigestAlgorithm) (DigestFunc, error) {
	switch algorithm {
	case constants.DigestSHA256, "":
		return SHA256Digest, nil
	case constants.DigestBlake2b:
		return Blake2bDigest, nil
	default:
		return nil, fmt.Errorf("unknown digest algorithm %q", algorithm)
	}
}
