package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hexvoid/voidpanel/internal/app"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	configPath  string
	prefsPath   string
	host        string
	pollSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "voidpanel",
	Short: "Terminal control panel for a VoidShell console daemon",
	Long: `voidpanel is a terminal control panel for a PS5 running the VoidShell
homebrew daemon. It polls console telemetry, manages the game library,
installs and uploads packages, sends payloads, and edits the daemon's
configuration remotely.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return app.Run(ctx, app.Options{
			ConfigPath: configPath,
			PrefsPath:  prefsPath,
			Host:       host,
			PollEvery:  pollSeconds,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the voidpanel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("voidpanel " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "panel config path (default ~/.config/voidpanel/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "preferences path (default ~/.config/voidpanel/prefs.toml)")
	rootCmd.Flags().StringVar(&host, "host", "", "daemon address as host:port, overrides the config file")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "telemetry poll interval in seconds")
	rootCmd.AddCommand(versionCmd)
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "voidpanel: %v\n", err)
		return 1
	}
	return 0
}
