package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/mirror/internal/config"
	"github.com/harrison/mirror/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded mirror runs",
		Long: `Show the most recent mirror runs from the history database.

Requires HISTORY_DB_PATH to be set in the settings file; history is disabled
by default.`,
		Args: cobra.NoArgs,
		RunE: historyCommand,
	}

	cmd.Flags().String("config", config.DefaultPath, "Path to the settings file")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to show")

	return cmd
}

// historyCommand implements the history command logic
func historyCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.HistoryDBPath == "" {
		return fmt.Errorf("run history is disabled, set HISTORY_DB_PATH in %s to enable it", configPath)
	}

	store, err := history.NewStore(cfg.HistoryDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-20s  %-10s  %8s  %8s  %8s  %8s  %s\n",
		"STARTED", "MODE", "COPIED", "SKIPPED", "WARNINGS", "ERRORS", "DURATION")
	for _, run := range runs {
		fmt.Fprintf(out, "%-20s  %-10s  %8d  %8d  %8d  %8d  %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.NamingMode,
			run.Copied,
			run.Skipped,
			run.Warnings,
			run.Errors,
			(time.Duration(run.DurationMS) * time.Millisecond).String(),
		)
	}
	return nil
}
