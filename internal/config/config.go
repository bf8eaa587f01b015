// Package config loads and validates the mirror settings file.
//
// Settings live in a TOML file (mirror_config.toml by default) with the keys
// documented in WriteDefault's template. Loading distinguishes a key that is
// absent from one that is set to its zero value, because absent required keys
// are a fatal configuration error while optional keys fall back to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/harrison/mirror/internal/filelock"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = "mirror_config.toml"

// MirrorSubfolder is the fixed name of the hidden mirror folder created
// directly under MIRROR_FOLDER_PATH. Its contents are destroyed on every run.
const MirrorSubfolder = ".Mirror"

// requiredKeys are the settings that must be present in the file. A missing or
// empty-string value for any of them aborts the run before any filesystem
// mutation.
var requiredKeys = []string{
	"ROOT_FOLDER_PATH",
	"EXCLUSION_OVERRIDES",
	"CLOSE_DELAY",
	"PRESERVE_FILE_NAMES",
	"MIRROR_FOLDER_PATH",
	"PATH_SEPARATOR",
}

// Config represents mirror configuration options
type Config struct {
	// RootFolderPath is the tree that gets flattened into the mirror
	RootFolderPath string `toml:"ROOT_FOLDER_PATH"`

	// ExclusionOverrides lists dot-prefixed folder names that are mirrored anyway
	ExclusionOverrides []string `toml:"EXCLUSION_OVERRIDES"`

	// CloseDelay is how long the program stays open after a run, in seconds
	// (0 = exit immediately, -1 = never close)
	CloseDelay int `toml:"CLOSE_DELAY"`

	// PreserveFileNames keeps original file names in the mirror instead of
	// positional indices
	PreserveFileNames bool `toml:"PRESERVE_FILE_NAMES"`

	// MirrorFolderPath is where the .Mirror folder lives ("." = same as root)
	MirrorFolderPath string `toml:"MIRROR_FOLDER_PATH"`

	// PathSeparator joins path segments in mirrored file names
	PathSeparator string `toml:"PATH_SEPARATOR"`

	// DisqualifiedExtensions lists file extensions that are never mirrored
	DisqualifiedExtensions []string `toml:"DISQUALIFIED_EXTENSIONS"`

	// HistoryDBPath is the sqlite run-history database ("" = history disabled)
	HistoryDBPath string `toml:"HISTORY_DB_PATH"`
}

// DefaultConfig returns a Config with the values WriteDefault puts in a fresh
// settings file.
func DefaultConfig() *Config {
	return &Config{
		RootFolderPath:         "",
		ExclusionOverrides:     []string{".Single"},
		CloseDelay:             0,
		PreserveFileNames:      true,
		MirrorFolderPath:       ".",
		PathSeparator:          "#,",
		DisqualifiedExtensions: []string{".ini"},
		HistoryDBPath:          "",
	}
}

// MissingSettingsError reports required settings that are absent from the
// configuration file or carry a useless (empty) value.
type MissingSettingsError struct {
	Settings []string
}

// Error implements the error interface.
func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("missing or useless configuration settings: %s", strings.Join(e.Settings, ", "))
}

// Load reads and validates the settings file at path.
// A file that cannot be read or parsed is an error. Required keys that are
// absent or empty are reported together in a MissingSettingsError so the user
// sees every problem at once. Optional keys fall back to their defaults only
// when absent.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if !meta.IsDefined(key) {
			missing = append(missing, key)
			continue
		}
		// An empty string is as useless as an absent key.
		switch key {
		case "ROOT_FOLDER_PATH":
			if cfg.RootFolderPath == "" {
				missing = append(missing, key)
			}
		case "MIRROR_FOLDER_PATH":
			if cfg.MirrorFolderPath == "" {
				missing = append(missing, key)
			}
		case "PATH_SEPARATOR":
			if cfg.PathSeparator == "" {
				missing = append(missing, key)
			}
		}
	}
	if len(missing) > 0 {
		return nil, &MissingSettingsError{Settings: missing}
	}

	if cfg.CloseDelay < -1 {
		return nil, fmt.Errorf("CLOSE_DELAY must be >= -1, got %d", cfg.CloseDelay)
	}

	defaults := DefaultConfig()
	if !meta.IsDefined("DISQUALIFIED_EXTENSIONS") {
		cfg.DisqualifiedExtensions = defaults.DisqualifiedExtensions
	}
	if !meta.IsDefined("HISTORY_DB_PATH") {
		cfg.HistoryDBPath = defaults.HistoryDBPath
	}

	return &cfg, nil
}

// MirrorRoot resolves MIRROR_FOLDER_PATH, where "." means "same as root".
func (c *Config) MirrorRoot() string {
	if c.MirrorFolderPath == "." {
		return c.RootFolderPath
	}
	return c.MirrorFolderPath
}

// MirrorDir returns the full path of the hidden mirror folder.
func (c *Config) MirrorDir() string {
	return filepath.Join(c.MirrorRoot(), MirrorSubfolder)
}

// defaultTemplate is the commented settings file written for first-time users.
const defaultTemplate = `# The path to the folder that includes all of your image pair subfolders.
ROOT_FOLDER_PATH = ""

# By default folders starting with '.' in the root folder are excluded, create exclusions by passing in folder names here.
EXCLUSION_OVERRIDES = [".Single"]

# How long the program stays open (IN SECONDS) before it closes the terminal, set to -1 to never close unless closed by you.
CLOSE_DELAY = 0

# Whether to include the original file names in the mirror folder, does not work when using '--randomize'.
PRESERVE_FILE_NAMES = true

# Where should the .Mirror folder be placed and read from? Set to '.' for root folder.
# PLEASE BE CAREFUL WHEN USING THIS SETTING!
# THE MIRROR FOLDER WILL BE DESTROYED ON EVERY RUN, DO NOT SET IT TO AN IMPORTANT FOLDER!
MIRROR_FOLDER_PATH = "."

# Folder separator for mirrored files, so if a file was located at '<root>/a/b/file.txt' it would be 'a<PATH SEPARATOR>b<PATH SEPARATOR>file.txt' in the mirror folder.
PATH_SEPARATOR = "#,"

# File extensions that are never mirrored.
DISQUALIFIED_EXTENSIONS = [".ini"]

# Record every run in this sqlite database, leave empty to disable.
HISTORY_DB_PATH = ""
`

// WriteDefault writes the commented default settings file to path.
// The write is atomic so a crash never leaves a half-written config behind.
// Fails if a file already exists at path.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file %s: %w", path, err)
	}

	if err := filelock.AtomicWrite(path, []byte(defaultTemplate)); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
