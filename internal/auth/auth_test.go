package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/storage"
)

func TestRegisterAndVerify(t *testing.T) {
	creds := NewCredentials(storage.NewMemoryStore())

	require.NoError(t, creds.Register("alice", SHA256Digest("pw1")))

	err := creds.Register("alice", SHA256Digest("pw2"))
	assert.ErrorIs(t, err, ErrAccountExists)

	assert.NoError(t, creds.Verify("alice", SHA256Digest("pw1")))

	err = creds.Verify("alice", SHA256Digest("wrong"))
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.ErrorIs(t, err, ErrAuth)

	err = creds.Verify("bob", SHA256Digest("pw1"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestFailedRegisterKeepsOriginalDigest(t *testing.T) {
	creds := NewCredentials(storage.NewMemoryStore())
	require.NoError(t, creds.Register("alice", SHA256Digest("pw1")))
	require.Error(t, creds.Register("alice", SHA256Digest("pw2")))

	assert.NoError(t, creds.Verify("alice", SHA256Digest("pw1")))
	assert.ErrorIs(t, creds.Verify("alice", SHA256Digest("pw2")), ErrPasswordMismatch)
}

func TestIDsAreCaseSensitiveAndTrimmed(t *testing.T) {
	creds := NewCredentials(storage.NewMemoryStore())

	require.NoError(t, creds.Register("  alice ", SHA256Digest("pw")))
	require.NoError(t, creds.Register("Alice", SHA256Digest("other")))

	assert.NoError(t, creds.Verify("alice", SHA256Digest("pw")))
	assert.NoError(t, creds.Verify("Alice", SHA256Digest("other")))

	n, err := creds.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := creds.Exists("alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	kv := storage.NewMemoryStore()
	creds := NewCredentials(kv)

	tests := []struct {
		name   string
		id     string
		digest string
	}{
		{name: "empty id", id: "", digest: SHA256Digest("pw")},
		{name: "blank id", id: "   ", digest: SHA256Digest("pw")},
		{name: "empty digest", id: "alice", digest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, creds.Register(tt.id, tt.digest), models.ErrValidation)
		})
	}

	_, ok, err := kv.Get(constants.AccountsKey)
	require.NoError(t, err)
	assert.False(t, ok, "failed registrations must not write")
}

func TestDigests(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", SHA256Digest("abc"))

	assert.Len(t, Blake2bDigest("abc"), 64)
	assert.Equal(t, Blake2bDigest("abc"), Blake2bDigest("abc"))
	assert.NotEqual(t, SHA256Digest("abc"), Blake2bDigest("abc"))

	for _, algo := range []constants.DigestAlgorithm{constants.DigestSHA256, constants.DigestBlake2b} {
		fn, err := DigestFor(algo)
		require.NoError(t, err)
		assert.Len(t, fn("pw"), 64)
	}

	_, err := DigestFor("md5")
	assert.Error(t, err)
}
