//go:build linux

// Command pomotray-hotkey holds the X11 global hotkey for pomotray. It prints
// "ready" once the key is grabbed, "down" on every press, and exits when its
// stdin closes. pomotray starts it only when DISPLAY is set.
package main

import (
	"fmt"
	"io"
	"os"

	"pomotray/internal/input"
	"pomotray/internal/input/keymap"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           input.AgentName + " <combination>",
		Short:         "Hold a global hotkey for pomotray",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := serve(args[0], in, out)
			if err != nil {
				fmt.Fprintf(out, "%s%v\n", input.AgentErrorPrefix, err)
			}
			return err
		},
	}
}

func serve(value string, in io.Reader, out io.Writer) error {
	combination, err := input.ParseHotkey(value)
	if err != nil {
		return err
	}
	registered, err := keymap.New(combination.Modifiers, combination.Key)
	if err != nil {
		return err
	}
	if err := registered.Register(); err != nil {
		return fmt.Errorf("register %s: %w", combination, err)
	}
	defer registered.Unregister()

	fmt.Fprintln(out, input.AgentReady)

	closed := make(chan struct{})
	go func() {
		io.Copy(io.Discard, in)
		close(closed)
	}()

	keydown := registered.Keydown()
	for {
		select {
		case <-closed:
			return nil
		case <-keydown:
			fmt.Fprintln(out, input.AgentKeydown)
		}
	}
}
