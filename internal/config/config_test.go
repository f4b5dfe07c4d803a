// ABOUTME: Tests for minds configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/tmp/minds-xdg")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBName != "minds.db" {
		t.Errorf("DBName = %q, want minds.db", cfg.DBName)
	}
	if cfg.Organization != "harperreed" || cfg.Application != "minds" {
		t.Errorf("Unexpected namespace %s/%s", cfg.Organization, cfg.Application)
	}
	if !cfg.RestoreDrafts {
		t.Error("Expected RestoreDrafts to default to true")
	}
	if got := cfg.DBPath(); got != "/tmp/minds-xdg/minds/minds.db" {
		t.Errorf("DBPath() = %q", got)
	}
	if got := cfg.SettingsDir(); got != "/tmp/minds-xdg/minds/settings" {
		t.Errorf("SettingsDir() = %q", got)
	}
	if got := cfg.LogPath(); got != "/tmp/minds-xdg/minds/minds.log" {
		t.Errorf("LogPath() = %q", got)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_dir: /srv/minds\ndb_name: other.db\nrestore_drafts: false\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.DBPath(); got != "/srv/minds/other.db" {
		t.Errorf("DBPath() = %q", got)
	}
	if cfg.RestoreDrafts {
		t.Error("Expected RestoreDrafts false from file")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("Expected default MaxBackups to survive, got %d", cfg.Log.MaxBackups)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MINDS_DATA_DIR", "/var/lib/minds")
	t.Setenv("MINDS_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/var/lib/minds" {
		t.Errorf("DataDir = %q, want /var/lib/minds", cfg.DataDir)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.DataDir = "/tmp/minds-saved"
	cfg.SeedPath = "/usr/share/minds/minds.db"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "/tmp/minds-saved" {
		t.Errorf("DataDir = %q", loaded.DataDir)
	}
	if loaded.GetSeedPath() != "/usr/share/minds/minds.db" {
		t.Errorf("SeedPath = %q", loaded.GetSeedPath())
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestLogPathExplicit(t *testing.T) {
	home, _ := os.UserHomeDir()
	cfg := &Config{Log: LogConfig{File: "~/logs/minds.log"}}
	if got, want := cfg.LogPath(), filepath.Join(home, "logs/minds.log"); got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestExpandPathEmpty(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want %q", got, "")
	}
}

func TestExpandPathAbsolute(t *testing.T) {
	if got := ExpandPath("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("ExpandPath(\"/tmp/foo\") = %q, want %q", got, "/tmp/foo")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}
	want := filepath.Join(home, "data/minds")
	if got := ExpandPath("~/data/minds"); got != want {
		t.Errorf("ExpandPath(\"~/data/minds\") = %q, want %q", got, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	if got := GetConfigPath(); got != "/tmp/xdg-config/minds/config.yaml" {
		t.Errorf("GetConfigPath() = %q", got)
	}
}
