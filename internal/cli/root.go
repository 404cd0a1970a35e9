package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corvank/sdkfetch/internal/debug"
)

// Version information (overwritten by main via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sdkfetch",
	Short: "Git SDK artifact fetcher",
	Long: `sdkfetch resolves and downloads Git SDK build artifacts.

Use "sdkfetch get" to:
  1. Resolve the artifact for a flavor/architecture pair
  2. Print its stable identity (usable as a cache key)
  3. Materialize it into an output directory

The minimal flavor is downloaded as a prebuilt release archive; every
other flavor is produced from a shallow clone of the SDK repository,
either as a worktree checkout (full) or through the build-extra
packaging scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
