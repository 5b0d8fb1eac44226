package main

import (
	"fmt"

	"pomotray/internal/platform"
	"pomotray/internal/storage"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the settings file",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := settingsPath(platform.NewService())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := settingsPath(platform.NewService())
			if err != nil {
				return err
			}
			store, err := storage.Open(path)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, showing defaults\n", err)
			}
			data, err := storage.EncodeSettingsAs(store.Current(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", storage.FormatYAML, "output format: yaml or toml")

	cmd.AddCommand(pathCmd, showCmd)
	return cmd
}
