package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/permission"
	"github.com/oukeidos/mnmlrec/internal/prefs"
	"github.com/oukeidos/mnmlrec/internal/prompt"
	"github.com/oukeidos/mnmlrec/internal/settings"
	"github.com/oukeidos/mnmlrec/internal/version"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change recording controls settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsList(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	cmd.AddCommand(
		newSettingsListCmd(opts),
		newSettingsGetCmd(opts),
		newSettingsSetCmd(opts),
		newSettingsResetCmd(opts),
		newSettingsWatchCmd(opts),
	)
	return cmd
}

func newSettingsListCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List settings and their values (default if no action given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsList(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSettingsGetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <setting>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsGet(cmd, opts, args[0])
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "set <setting> <on|off>",
		Short: "Change one setting, asking for permission when it needs one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, opts, args[0], args[1], assumeYes)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to permission prompts")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSettingsResetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore every setting to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsReset(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newSettingsWatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print settings as they change until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsWatch(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func lookupDefinition(key string) (prefs.Definition, error) {
	def, ok := prefs.Lookup(key)
	if !ok {
		return prefs.Definition{}, apperrors.NotFound(fmt.Sprintf("unknown setting %q (see '%s settings list')", key, version.Name))
	}
	return def, nil
}

func runSettingsList(cmd *cobra.Command, opts *rootOptions) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}

	defs := prefs.Definitions()
	keys := []string{"SETTING"}
	titles := []string{"TITLE"}
	for _, def := range defs {
		keys = append(keys, def.Key)
		titles = append(titles, def.Title)
	}
	keyWidth, titleWidth := columnWidth(keys), columnWidth(titles)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s  %s\n", padRight("SETTING", keyWidth), padRight("VALUE", 5), padRight("TITLE", titleWidth), "NOTES")
	for _, def := range defs {
		value := store.Bool(def.Key, def.Default).Get()
		notes := ""
		if def.Gated {
			notes = "needs overlay permission"
		}
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			padRight(def.Key, keyWidth),
			padRight(onOff(value), 5),
			padRight(def.Title, titleWidth),
			notes,
		)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, opts *rootOptions, key string) error {
	def, err := lookupDefinition(key)
	if err != nil {
		return err
	}
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), onOff(store.Bool(def.Key, def.Default).Get()))
	return nil
}

// runSettingsSet drives the same synchronizer the desktop screen uses, with
// headless switches standing in for the widgets and terminal prompts for
// the explanation and the system permission screen.
func runSettingsSet(cmd *cobra.Command, opts *rootOptions, key, raw string, assumeYes bool) error {
	def, err := lookupDefinition(key)
	if err != nil {
		return err
	}
	value, err := prefs.ParseValue(raw)
	if err != nil {
		return err
	}
	store, err := openStore(opts)
	if err != nil {
		return err
	}

	grants := newGrantStore()
	confirmer := newConfirmer(cmd)
	var (
		queued    []permission.Request
		promptErr error
	)
	screen, err := settings.NewSynchronizer(settings.Deps{
		Store:   store,
		Checker: grants,
		Requester: permission.RequesterFunc(func(req permission.Request) error {
			queued = append(queued, req)
			return nil
		}),
		Explainer: settings.ExplainerFunc(func(done func(bool)) {
			ok, err := confirmer.Confirm(permission.OverlayRationale+"\nContinue?", assumeYes)
			if err != nil {
				promptErr = err
				ok = false
			}
			done(ok)
		}),
		AppID: opts.appID,
	})
	if err != nil {
		return err
	}
	switches := make(map[string]*settings.Switch)
	if err := screen.Attach(func(k string) (settings.Toggle, bool) {
		sw := settings.NewSwitch(false)
		switches[k] = sw
		return sw, true
	}); err != nil {
		return err
	}
	defer screen.Close()

	switches[def.Key].Flip(value)
	for len(queued) > 0 {
		req := queued[0]
		queued = queued[1:]
		screen.HandlePermissionResult(permission.Result{
			Token: req.Token,
			Code:  systemPermissionScreen(confirmer, grants, req, assumeYes),
		})
	}

	if err := store.LastError(); err != nil {
		return err
	}
	if promptErr != nil {
		return promptErr
	}
	if got := store.Bool(def.Key, def.Default).Get(); got != value {
		return apperrors.New(apperrors.KindPermission,
			fmt.Sprintf("%s stays %s: overlay permission was not granted", def.Key, onOff(got)), nil)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", def.Key, onOff(value))
	return nil
}

// systemPermissionScreen plays the part of the OS "display over other
// apps" screen for a terminal session.
func systemPermissionScreen(c *prompt.Confirmer, grants grantStore, req permission.Request, assumeYes bool) permission.ResultCode {
	if grants.Granted() {
		return permission.ResultOK
	}
	ok, err := c.Confirm(fmt.Sprintf("Allow %s to display over other apps?", req.AppID), assumeYes)
	if err != nil || !ok {
		return permission.ResultCanceled
	}
	if err := grants.Grant(); err != nil {
		logger.Warn("Failed to store permission grant", "error", err)
		return permission.ResultCanceled
	}
	return permission.ResultOK
}

func runSettingsReset(cmd *cobra.Command, opts *rootOptions) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	for _, def := range prefs.Definitions() {
		store.Bool(def.Key, def.Default).Set(def.Default)
		if err := store.LastError(); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults.")
	return nil
}

func runSettingsWatch(cmd *cobra.Command, opts *rootOptions) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := store.Watch(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	for _, def := range prefs.Definitions() {
		key := def.Key
		cancel := store.Bool(key, def.Default).Observe(func(v bool) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, "%s = %s\n", key, onOff(v))
		})
		defer cancel()
	}

	<-ctx.Done()
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
