package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a settings file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mirror_config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

const validConfig = `ROOT_FOLDER_PATH = "/data/pictures"
EXCLUSION_OVERRIDES = [".Single"]
CLOSE_DELAY = 0
PRESERVE_FILE_NAMES = true
MIRROR_FOLDER_PATH = "."
PATH_SEPARATOR = "#,"
`

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RootFolderPath != "" {
		t.Errorf("RootFolderPath = %q, want empty", cfg.RootFolderPath)
	}
	if len(cfg.ExclusionOverrides) != 1 || cfg.ExclusionOverrides[0] != ".Single" {
		t.Errorf("ExclusionOverrides = %v, want [.Single]", cfg.ExclusionOverrides)
	}
	if cfg.CloseDelay != 0 {
		t.Errorf("CloseDelay = %d, want 0", cfg.CloseDelay)
	}
	if !cfg.PreserveFileNames {
		t.Error("PreserveFileNames = false, want true")
	}
	if cfg.MirrorFolderPath != "." {
		t.Errorf("MirrorFolderPath = %q, want %q", cfg.MirrorFolderPath, ".")
	}
	if cfg.PathSeparator != "#," {
		t.Errorf("PathSeparator = %q, want %q", cfg.PathSeparator, "#,")
	}
	if len(cfg.DisqualifiedExtensions) != 1 || cfg.DisqualifiedExtensions[0] != ".ini" {
		t.Errorf("DisqualifiedExtensions = %v, want [.ini]", cfg.DisqualifiedExtensions)
	}
	if cfg.HistoryDBPath != "" {
		t.Errorf("HistoryDBPath = %q, want empty (disabled)", cfg.HistoryDBPath)
	}
}

// TestLoadValidFile tests loading a complete valid settings file
func TestLoadValidFile(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RootFolderPath != "/data/pictures" {
		t.Errorf("RootFolderPath = %q, want %q", cfg.RootFolderPath, "/data/pictures")
	}
	if cfg.PathSeparator != "#," {
		t.Errorf("PathSeparator = %q, want %q", cfg.PathSeparator, "#,")
	}
	// Optional keys absent from the file fall back to defaults
	if len(cfg.DisqualifiedExtensions) != 1 || cfg.DisqualifiedExtensions[0] != ".ini" {
		t.Errorf("DisqualifiedExtensions = %v, want default [.ini]", cfg.DisqualifiedExtensions)
	}
	if cfg.HistoryDBPath != "" {
		t.Errorf("HistoryDBPath = %q, want empty default", cfg.HistoryDBPath)
	}
}

// TestLoadMissingRequiredKeys verifies every absent required key is reported
func TestLoadMissingRequiredKeys(t *testing.T) {
	path := writeConfig(t, `ROOT_FOLDER_PATH = "/data"
PRESERVE_FILE_NAMES = true
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail when required keys are missing")
	}

	var missing *MissingSettingsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSettingsError, got %T: %v", err, err)
	}

	want := []string{"EXCLUSION_OVERRIDES", "CLOSE_DELAY", "MIRROR_FOLDER_PATH", "PATH_SEPARATOR"}
	for _, key := range want {
		found := false
		for _, m := range missing.Settings {
			if m == key {
				found = true
			}
		}
		if !found {
			t.Errorf("missing settings %v should include %s", missing.Settings, key)
		}
	}
	if len(missing.Settings) != len(want) {
		t.Errorf("missing settings = %v, want exactly %v", missing.Settings, want)
	}
}

// TestLoadEmptyStringIsUseless verifies empty strings count as missing
func TestLoadEmptyStringIsUseless(t *testing.T) {
	path := writeConfig(t, strings.Replace(validConfig, `ROOT_FOLDER_PATH = "/data/pictures"`, `ROOT_FOLDER_PATH = ""`, 1))

	_, err := Load(path)
	var missing *MissingSettingsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSettingsError, got %v", err)
	}
	if len(missing.Settings) != 1 || missing.Settings[0] != "ROOT_FOLDER_PATH" {
		t.Errorf("missing settings = %v, want [ROOT_FOLDER_PATH]", missing.Settings)
	}
}

// TestLoadFileNotExists verifies a missing file is an error
func TestLoadFileNotExists(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load() should fail on a missing file")
	}
}

// TestLoadMalformedFile verifies parse errors are surfaced
func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "ROOT_FOLDER_PATH = [not closed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on malformed TOML")
	}
}

// TestLoadInvalidCloseDelay verifies CLOSE_DELAY below -1 is rejected
func TestLoadInvalidCloseDelay(t *testing.T) {
	path := writeConfig(t, strings.Replace(validConfig, "CLOSE_DELAY = 0", "CLOSE_DELAY = -2", 1))
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should reject CLOSE_DELAY = -2")
	}
}

// TestLoadExplicitEmptyOptionalLists verifies an explicitly empty optional key
// is respected rather than overwritten by the default
func TestLoadExplicitEmptyOptionalLists(t *testing.T) {
	path := writeConfig(t, validConfig+"DISQUALIFIED_EXTENSIONS = []\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.DisqualifiedExtensions) != 0 {
		t.Errorf("DisqualifiedExtensions = %v, want empty", cfg.DisqualifiedExtensions)
	}
}

// TestMirrorRoot verifies the "." convention resolves to the root folder
func TestMirrorRoot(t *testing.T) {
	cfg := &Config{RootFolderPath: "/data/pictures", MirrorFolderPath: "."}
	if got := cfg.MirrorRoot(); got != "/data/pictures" {
		t.Errorf("MirrorRoot() = %q, want %q", got, "/data/pictures")
	}

	cfg.MirrorFolderPath = "/elsewhere"
	if got := cfg.MirrorRoot(); got != "/elsewhere" {
		t.Errorf("MirrorRoot() = %q, want %q", got, "/elsewhere")
	}
}

// TestMirrorDir verifies the hidden subfolder convention
func TestMirrorDir(t *testing.T) {
	cfg := &Config{RootFolderPath: "/data", MirrorFolderPath: "."}
	want := filepath.Join("/data", MirrorSubfolder)
	if got := cfg.MirrorDir(); got != want {
		t.Errorf("MirrorDir() = %q, want %q", got, want)
	}
}

// TestWriteDefaultRoundTrip verifies the generated template parses and fails
// validation only on the intentionally empty ROOT_FOLDER_PATH
func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror_config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	_, err := Load(path)
	var missing *MissingSettingsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSettingsError from fresh template, got %v", err)
	}
	if len(missing.Settings) != 1 || missing.Settings[0] != "ROOT_FOLDER_PATH" {
		t.Errorf("missing settings = %v, want [ROOT_FOLDER_PATH]", missing.Settings)
	}
}

// TestWriteDefaultRefusesOverwrite verifies an existing file is never clobbered
func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := writeConfig(t, validConfig)
	if err := WriteDefault(path); err == nil {
		t.Fatal("WriteDefault() should refuse to overwrite an existing file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config back: %v", err)
	}
	if string(data) != validConfig {
		t.Error("existing config was modified")
	}
}
