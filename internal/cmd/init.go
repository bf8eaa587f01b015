package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/mirror/internal/config"
	"github.com/harrison/mirror/internal/logger"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a commented default settings file",
		Long: `Generate mirror_config.toml with commented defaults.

Fails if the file already exists; delete it first to regenerate.`,
		Args: cobra.NoArgs,
		RunE: initCommand,
	}

	cmd.Flags().String("config", config.DefaultPath, "Path to write the settings file to")

	return cmd
}

// initCommand implements the init command logic
func initCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	log := logger.NewConsoleLogger(cmd.OutOrStdout(), "info")

	if err := config.WriteDefault(configPath); err != nil {
		return err
	}

	log.Infof("Generated default configuration at '%s'. Fill in ROOT_FOLDER_PATH before running 'mirror run'.", configPath)
	return nil
}
