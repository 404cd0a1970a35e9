package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corvank/sdkfetch/internal/app"
	"github.com/corvank/sdkfetch/internal/config"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Resolve and download an SDK artifact",
	Long: `Resolve an SDK artifact for a flavor/architecture pair and download
it into the output directory.

The resolved artifact identity is printed before the download starts;
it changes only when the artifact contents would differ, so callers can
use it as a cache key and skip the download entirely on a hit.

Examples:
  sdkfetch get --flavor=minimal --architecture=x86_64 --output=./sdk
  sdkfetch get --flavor=full --architecture=aarch64 --output=./sdk
  sdkfetch get --flavor=build-installers --architecture=i686 --output=./sdk --verbose`,
	RunE: runGet,
}

// Get command flags
var (
	getFlavor    string
	getArch      string
	getOutput    string
	getVerbose   bool
	getForce     bool
	getToken     string
	getCloneOpts string
	getConfig    string
)

func init() {
	getCmd.Flags().StringVarP(&getFlavor, FlagFlavor, "f", "", DescFlavor)
	getCmd.Flags().StringVarP(&getArch, FlagArchitecture, "a", "", DescArchitecture)
	getCmd.Flags().StringVarP(&getOutput, FlagOutput, "o", "", DescOutput)
	getCmd.Flags().BoolVarP(&getVerbose, FlagVerbose, "v", false, DescVerbose)
	getCmd.Flags().BoolVar(&getForce, FlagForce, false, DescForce)
	getCmd.Flags().StringVar(&getToken, FlagToken, "", DescToken)
	getCmd.Flags().StringVar(&getCloneOpts, FlagCloneOpts, "", DescCloneOpts)
	getCmd.Flags().StringVarP(&getConfig, FlagConfig, "c", "", DescConfig)

	getCmd.MarkFlagRequired(FlagOutput)
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(getConfig)
	if err != nil {
		return err
	}

	flavor := getFlavor
	if flavor == "" {
		flavor = cfg.Defaults.Flavor
	}
	arch := getArch
	if arch == "" {
		arch = cfg.Defaults.Architecture
	}

	if err := ValidateOutputPath(getOutput); err != nil {
		return err
	}

	token := getGitHubToken(getToken)
	if token == "" {
		token = cfg.GitHub.Token
	}

	opts := app.FetchOptions{
		Flavor:       flavor,
		Architecture: arch,
		OutputDir:    getOutput,
		Verbose:      getVerbose,
		GitHubToken:  token,
		APIURL:       cfg.GitHub.APIURL,
		CloneOpts:    getCloneOpts,
	}

	printProgress(fmt.Sprintf("Resolving %s artifact for %s...", flavor, arch))
	artifact, err := app.ResolveArtifact(cmd.Context(), opts)
	if err != nil {
		printErrorMsg(fmt.Sprintf("Resolution failed: %v", err))
		return err
	}

	printInfo(fmt.Sprintf("Artifact: %s", artifact.Name))
	printInfo(fmt.Sprintf("Identity: %s", artifact.ID))

	if err := prepareOutputDir(getOutput); err != nil {
		return err
	}

	printProgress(fmt.Sprintf("Downloading into %s...", getOutput))
	result, err := app.DownloadArtifact(cmd.Context(), artifact, opts)
	if err != nil {
		printErrorMsg(fmt.Sprintf("Download failed: %v", err))
		return err
	}

	printSuccess(fmt.Sprintf("Materialized %s in %s", result.ArtifactName, result.OutputDir))
	return nil
}

// prepareOutputDir enforces the fresh-output-directory contract up front.
// With --force a leftover directory is removed; interactively the user is
// asked; otherwise the fetch is refused before any download work starts.
func prepareOutputDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if !getForce {
		if globalQuiet {
			return fmt.Errorf("output directory %s already exists (use --force to remove it)", path)
		}
		confirmed, err := confirmRemoveOutputDir(path)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("output directory %s already exists", path)
		}
	} else {
		printWarning(fmt.Sprintf("Removing existing output directory %s", path))
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
