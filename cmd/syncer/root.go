package main

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"seconddraft/internal/config"
)

type commandContext struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "syncer",
		Short:         "Mirror Patreon collections into markdown files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cc.configPath)
			if err != nil {
				return err
			}
			if cc.logLevel != "" {
				cfg.LogLevel = cc.logLevel
			}
			cc.cfg = cfg
			cc.logger = setupLogger(cfg.LogLevel, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&cc.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		newSyncCommand(cc),
		newScheduleCommand(cc),
		newRenderCommand(cc),
		newWarmCommand(cc),
		newCollectionsCommand(cc),
		newPostsCommand(cc),
	)

	return rootCmd
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
