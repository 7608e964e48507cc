package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/checkin/internal/constants"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != constants.BackendSQLite {
		t.Errorf("backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Auth.Digest != constants.DigestSHA256 {
		t.Errorf("digest = %q, want sha256", cfg.Auth.Digest)
	}
	if cfg.Habits.StreakPolicy != constants.StreakResetOnGap {
		t.Errorf("streak policy = %q, want reset_on_gap", cfg.Habits.StreakPolicy)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `
[storage]
backend = "json"
path = "/tmp/checkin.json"

[auth]
digest = "blake2b"

[habits]
streak_policy = "always_increment"

[logging]
debug = true
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `
storage:
  backend: json
  path: /tmp/checkin.json
auth:
  digest: blake2b
habits:
  streak_policy: always_increment
logging:
  debug: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Storage.Backend != constants.BackendJSON {
				t.Errorf("backend = %q, want json", cfg.Storage.Backend)
			}
			if cfg.Storage.Path != "/tmp/checkin.json" {
				t.Errorf("path = %q", cfg.Storage.Path)
			}
			if cfg.Auth.Digest != constants.DigestBlake2b {
				t.Errorf("digest = %q, want blake2b", cfg.Auth.Digest)
			}
			if cfg.Habits.StreakPolicy != constants.StreakAlwaysIncrement {
				t.Errorf("streak policy = %q, want always_increment", cfg.Habits.StreakPolicy)
			}
			if !cfg.Logging.Debug {
				t.Error("logging.debug = false, want true")
			}
		})
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("CHECKIN_TEST_DB", "/var/lib/checkin/data.db")

	cfg, err := Load(writeFile(t, "config.toml", "[storage]\npath = \"${CHECKIN_TEST_DB}\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Path != "/var/lib/checkin/data.db" {
		t.Errorf("path = %q, want expanded value", cfg.Storage.Path)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "backend", content: "[storage]\nbackend = \"redis\"\n", wantErr: "storage.backend"},
		{name: "digest", content: "[auth]\ndigest = \"md5\"\n", wantErr: "auth.digest"},
		{name: "streak policy", content: "[habits]\nstreak_policy = \"sometimes\"\n", wantErr: "habits.streak_policy"},
		{name: "timezone", content: "[general]\ntimezone = \"Mars/Olympus\"\n", wantErr: "general.timezone"},
		{name: "unknown key", content: "[storage]\nbakend = \"json\"\n", wantErr: "unknown key"},
		{name: "malformed", content: "[storage\n", wantErr: "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", tt.content))
			if err == nil {
				t.Fatal("Load should have failed")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{in: "~/checkin.db", want: filepath.Join(home, "checkin.db")},
		{in: "~", want: home},
		{in: "/abs/checkin.db", want: "/abs/checkin.db"},
		{in: "relative.db", want: "relative.db"},
	}

	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
