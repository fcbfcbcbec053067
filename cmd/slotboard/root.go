package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/slotboard/internal/app"
)

var (
	cfgPath   string
	prefsPath string
	apiURL    string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "slotboard",
	Short: "Timetable generator controller",
	Long: "slotboard finds a reachable timetable backend, drives its seed/generate/upload\n" +
		"endpoints and shows the resulting day by slot grid. Without a subcommand it\n" +
		"starts the interactive terminal UI.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", "", "config file (default ~/.config/slotboard/config.toml)")
	flags.StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/slotboard/prefs.toml)")
	flags.StringVar(&apiURL, "api", "", "backend base URL, overrides api_url")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(tuiCmd)
}

func options() app.Options {
	return app.Options{
		ConfigPath: cfgPath,
		PrefsPath:  prefsPath,
		APIURL:     apiURL,
		LogLevel:   logLevel,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()
	return app.Run(ctx, options())
}
