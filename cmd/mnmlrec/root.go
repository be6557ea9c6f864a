package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
	"github.com/oukeidos/mnmlrec/internal/cleanup"
	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/version"
)

type rootOptions struct {
	prefsPath string
	appID     string
	logLevel  string
	logFile   string
}

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "Recording controls settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(opts); err != nil {
				return err
			}
			logChangedFlags(cmd)
			return nil
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(groupUsageTemplate)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.prefsPath, "prefs", "", "Preferences file (default: the desktop app's preferences)")
	pf.StringVar(&opts.appID, "app-id", version.AppID, "Application ID the preferences belong to")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "Append JSON logs to this file")

	cmd.AddCommand(
		newAboutCmd(),
		newSettingsCmd(opts),
		newPermissionCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}

func setupLogging(opts *rootOptions) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return apperrors.Validation(err.Error())
	}
	if opts.logFile == "" {
		logger.Init(level, nil)
		return nil
	}
	f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	cleanup.Register("log file", f.Close)
	logger.Init(level, f)
	return nil
}

func logChangedFlags(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		logger.Debug("Flag set", "command", cmd.CommandPath(), "flag", f.Name, "value", f.Value.String())
	})
}
