package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/mirror/internal/config"
	"github.com/harrison/mirror/internal/filelock"
	"github.com/harrison/mirror/internal/history"
	"github.com/harrison/mirror/internal/logger"
	"github.com/harrison/mirror/internal/mirror"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Erase and rebuild the mirror folder",
		Long: `Erase the mirror folder and rebuild it from the configured root.

Settings are read from mirror_config.toml in the working directory (override
with --config). If the settings file does not exist, a commented default is
generated and the run aborts so you can fill in ROOT_FOLDER_PATH.

Examples:
  mirror run                      # refresh using mirror_config.toml
  mirror run --randomize          # random 20-character names instead of encoded paths
  mirror run --verbose            # show every copy and skip
  mirror run --report-file r.yaml # write the run report as YAML`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	// Add flags
	cmd.Flags().BoolP("randomize", "r", false, "Use random file names in the mirror instead of encoded paths")
	cmd.Flags().BoolP("verbose", "v", false, "Show per-file detail (debug level logging)")
	cmd.Flags().String("config", config.DefaultPath, "Path to the settings file")
	cmd.Flags().String("report-file", "", "Write the run report to this file as YAML")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	randomize, _ := cmd.Flags().GetBool("randomize")
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	reportFile, _ := cmd.Flags().GetString("report-file")

	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.OutOrStdout(), logLevel)

	// First run: generate a commented settings file. Loading it immediately
	// afterwards fails on the empty ROOT_FOLDER_PATH, which walks the user
	// through filling it in.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.WriteDefault(configPath); err != nil {
			log.Criticalf("Failed to generate a default configuration file: %v", err)
			return err
		}
		log.Infof("No configuration file found, generated a default one at '%s'.", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		var missing *config.MissingSettingsError
		if errors.As(err, &missing) {
			for _, setting := range missing.Settings {
				log.Criticalf("%s not defined in configuration file or has useless value. Find the configuration at '%s'.", setting, configPath)
			}
			log.Criticalf("Don't see some of those settings in your config file? Delete it and allow it to regenerate.")
			return fmt.Errorf("configuration invalid")
		}
		log.Criticalf("%v", err)
		return err
	}

	log.Infof("Using folder '%s' as root folder", cfg.RootFolderPath)
	log.Infof("Using folder '%s' as mirror folder", cfg.MirrorDir())

	// Validate the root before taking the lock or touching the mirror, so a
	// typo in ROOT_FOLDER_PATH never destroys an existing mirror.
	if info, err := os.Stat(cfg.RootFolderPath); err != nil || !info.IsDir() {
		log.Criticalf("Root folder path doesn't actually exist, double check your spelling.")
		return fmt.Errorf("root folder %s does not exist", cfg.RootFolderPath)
	}

	// The refresh starts by erasing the mirror, so two runs against the same
	// mirror folder must never overlap.
	lock := filelock.NewRunLock(filepath.Join(cfg.MirrorRoot(), ".mirror.lock"))
	acquired, err := lock.TryAcquire()
	if err != nil {
		log.Criticalf("%v", err)
		return err
	}
	if !acquired {
		log.Criticalf("Another mirror run is already in progress for '%s'.", cfg.MirrorDir())
		return fmt.Errorf("mirror folder is locked by another run")
	}
	defer lock.Release()

	settings := &mirror.Settings{
		RootPath:               cfg.RootFolderPath,
		MirrorDir:              cfg.MirrorDir(),
		ExclusionOverrides:     cfg.ExclusionOverrides,
		PathSeparator:          cfg.PathSeparator,
		PreserveNames:          cfg.PreserveFileNames,
		Randomize:              randomize,
		DisqualifiedExtensions: cfg.DisqualifiedExtensions,
	}

	report, err := mirror.NewRefresher(settings, log).Refresh()
	if err != nil {
		log.Criticalf("%v", err)
		return err
	}

	log.Debugf("Run %s finished in %dms: %d copied, %d skipped, %d warnings, %d errors",
		report.RunID, report.DurationMS, report.Copied, report.Skipped(), report.Warnings, report.Errors)
	log.Infof("Mirror updated! If something doesn't look right, double check for warnings above!")

	if reportFile != "" {
		if err := writeReport(reportFile, report); err != nil {
			log.Errorf("Failed to write report file: %v", err)
		}
	}

	if cfg.HistoryDBPath != "" {
		if err := recordRun(cfg.HistoryDBPath, report); err != nil {
			log.Errorf("Failed to record run in history: %v", err)
		}
	}

	waitBeforeClose(log, cfg.CloseDelay)
	return nil
}

// writeReport marshals the run report as YAML and writes it atomically.
func writeReport(path string, report *mirror.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return filelock.AtomicWrite(path, data)
}

// recordRun appends the run to the history database. History failures are
// never fatal, the mirror itself is already up to date.
func recordRun(dbPath string, report *mirror.RunReport) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(report)
}

// waitBeforeClose implements the post-run close delay: 0 returns immediately,
// -1 blocks forever, anything else counts down one line per second. This is
// purely process lifecycle, kept out of the mirror core.
func waitBeforeClose(log logger.Logger, closeDelay int) {
	switch {
	case closeDelay == 0:
		return
	case closeDelay < 0:
		log.Warnf("This window will never close, feel free to close it at your leisure.")
		for {
			time.Sleep(time.Hour)
		}
	default:
		for i := 0; i < closeDelay; i++ {
			log.Infof("This window will close in %d seconds.%s", closeDelay-i, strings.Repeat(".", i))
			time.Sleep(time.Second)
		}
	}
}
