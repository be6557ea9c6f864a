package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPermissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Manage the display-over-other-apps permission in the OS keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPermissionStatus(cmd)
		},
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the permission is granted (default if no action given)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPermissionStatus(cmd)
			},
		},
		&cobra.Command{
			Use:   "grant",
			Short: "Grant the permission",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newGrantStore().Grant(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Display over other apps: granted")
				return nil
			},
		},
		&cobra.Command{
			Use:   "revoke",
			Short: "Revoke the permission",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newGrantStore().Revoke(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Display over other apps: revoked")
				return nil
			},
		},
	)
	for _, sub := range cmd.Commands() {
		sub.SetUsageTemplate(subcommandUsageTemplate)
	}
	return cmd
}

func runPermissionStatus(cmd *cobra.Command) error {
	granted, err := newGrantStore().Status()
	if err != nil {
		return err
	}
	state := "not granted"
	if granted {
		state = "granted"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Display over other apps: %s\n", state)
	return nil
}
