package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Point at a path that does not exist to force defaults.
	t.Setenv(configEnvVar, filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:8473" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.Watch.DebounceMillis != 250 {
		t.Errorf("Watch.DebounceMillis = %d, want 250", cfg.Watch.DebounceMillis)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = "0.0.0.0:9000"

[watch]
debounce_millis = 500

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configEnvVar, path)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q, want 0.0.0.0:9000", cfg.Server.Addr)
	}
	if cfg.Watch.DebounceMillis != 500 {
		t.Errorf("Watch.DebounceMillis = %d, want 500", cfg.Watch.DebounceMillis)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	// Sections omitted from the file keep their defaults.
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configEnvVar, path)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Server.Addr != "127.0.0.1:8473" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not toml {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configEnvVar, path)

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should fail on malformed file")
	}
}
