// Command console serves the IoT manager web console.
package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	consoleerrors "github.com/iot-manager/console/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		consoleerrors.DisableColors()
	}

	if err := newRootCmd().Execute(); err != nil {
		consoleerrors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "IoT manager web console",
		Long: `console serves the IoT manager single-page console.

Pages:
  /         Sensor Data
  /books    Books
  /ping     ping
  /photos   Photo Gallery (gallery variant only)

Configuration is read from config.toml in the working directory, an
optional config.<SERVICE_ENV>.toml overlay and CONSOLE_* environment
variables. Flags take precedence over all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		versionCmd(),
	)
	return rootCmd
}
