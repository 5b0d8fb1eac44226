// Command pomotray is a pomodoro timer that lives in the system tray.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pomotray/internal/core/model"
	"pomotray/internal/logging"
	"pomotray/internal/platform"
	"pomotray/internal/storage"

	"github.com/spf13/cobra"
)

const (
	appName = "pomotray"
	appID   = "io.pomotray.app"
)

type options struct {
	logLevel   string
	logFile    string
	noClearLog bool
	terminal   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "pomotray [work] [short-break] [sessions] [long-break]",
		Short: "Pomodoro timer for the system tray",
		Long: `pomotray alternates work sessions with short breaks and takes a long
break after every few sessions.

Passing durations starts quick mode: settings are kept in memory only and
second-level durations are allowed.`,
		Example: `  pomotray                  # 25m work, 5m break, persistent settings
  pomotray 15s 5s 4 10s     # quick mode: 15s work, 5s break, 4 sessions, 10s long break
  pomotray 2m 30s 2 1m --terminal
  pomotray --log-level debug`,
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path (default <config dir>/pomotray/logs/pomotray.log)")
	flags.BoolVar(&opts.noClearLog, "no-clear-log", false, "keep the previous log file instead of clearing it at startup")
	cmd.Flags().BoolVarP(&opts.terminal, "terminal", "t", false, "run in the terminal instead of the system tray")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

func run(ctx context.Context, opts *options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}

	service := platform.NewService()
	appDir, err := platform.AppDir(service, appName)
	if err != nil {
		return err
	}

	logFile := opts.logFile
	if logFile == "" {
		logFile = filepath.Join(appDir, "logs", appName+".log")
	}
	var console io.Writer
	if opts.terminal {
		console = io.Discard
	}
	closer, err := logging.Setup(logging.Options{
		Level:        level,
		File:         logFile,
		ClearOnStart: !opts.noClearLog,
		Console:      console,
	})
	if err != nil {
		logging.Warnf("main: %v", err)
	}
	defer closer.Close()

	provider, persistent, err := loadProvider(service, args)
	if err != nil {
		return err
	}

	instance := &application{
		service:    service,
		appDir:     appDir,
		provider:   provider,
		persistent: persistent,
	}
	if opts.terminal {
		logging.Infof("main: starting terminal mode")
		return instance.runTerminal(ctx, os.Stdin, os.Stdout)
	}
	logging.Infof("main: starting %s", appName)
	return instance.runDesktop(ctx)
}

// loadProvider returns the in-memory quick-mode provider when durations are
// given and the settings file store otherwise.
func loadProvider(service platform.Service, args []string) (model.Provider, bool, error) {
	quick, ok, err := quickConfig(args)
	if err != nil {
		return nil, false, err
	}
	if ok {
		logging.Infof("main: quick mode, work %s, short break %s, %d sessions, long break %s",
			quick.WorkDuration, quick.ShortBreakDuration, quick.SessionsUntilLongBreak, quick.LongBreakDuration)
		return model.NewMemoryProvider(quick), false, nil
	}

	path, err := settingsPath(service)
	if err != nil {
		return nil, false, err
	}
	store, err := storage.Open(path)
	if err != nil {
		logging.Warnf("main: %v, using defaults", err)
	}
	return store, true, nil
}

func settingsPath(service platform.Service) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate settings: %w", err)
	}
	return storage.ResolvePath(configDir, appName), nil
}
