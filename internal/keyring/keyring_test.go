package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://checkin@localhost:5432/checkin?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSetRejectsBlank(t *testing.T) {
	gokeyring.MockInit()

	for _, secret := range []string{"", "   "} {
		if err := SetConnectionString(secret); err == nil {
			t.Errorf("SetConnectionString(%q) should fail", secret)
		}
	}
}

func TestVaultsAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	a := Vault{Service: "checkin-test", User: "a"}
	b := Vault{Service: "checkin-test", User: "b"}

	if err := a.Set("secret-a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := b.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("vault b error = %v, want ErrNotFound", err)
	}
	if !a.Available() {
		t.Error("Available = false, want true with mock keyring")
	}
}

func TestUnavailableKeyring(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	t.Cleanup(gokeyring.MockInit)

	if _, err := GetConnectionString(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("error = %v, want ErrKeyringUnavailable", err)
	}
	if Default().Available() {
		t.Error("Available = true, want false when the keyring errors")
	}
}
