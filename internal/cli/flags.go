package cli

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagFlavor       = "flavor"
	FlagArchitecture = "architecture"
	FlagOutput       = "output"
	FlagVerbose      = "verbose"
	FlagForce        = "force"
	FlagToken        = "token"
	FlagCloneOpts    = "clone-opts"
	FlagConfig       = "config"
	FlagNoColor      = "no-color"
	FlagQuiet        = "quiet"
	FlagDebug        = "debug"

	// Flag descriptions
	DescFlavor       = "Artifact flavor (minimal, full, or a build-extra variant)"
	DescArchitecture = "Target architecture (i686, x86_64, aarch64)"
	DescOutput       = "Output directory (must not exist)"
	DescVerbose      = "Verbose extraction output"
	DescForce        = "Remove a pre-existing output directory"
	DescToken        = "GitHub access token"
	DescCloneOpts    = "Extra git clone options (shell-quoted)"
	DescConfig       = "Path to config file"
	DescNoColor      = "Disable colored output"
	DescQuiet        = "Suppress non-error output"
	DescDebug        = "Enable debug logging"
)

var pathTraversalPattern = regexp.MustCompile(`\.\.`)

// ValidateOutputPath validates the output directory path.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	// Check for path traversal attempts
	if pathTraversalPattern.MatchString(path) {
		return fmt.Errorf("output path contains invalid traversal: %s", path)
	}

	return nil
}

// getGitHubToken retrieves GitHub token from the flag, environment, or gh CLI.
// Priority: --token flag > GITHUB_TOKEN env > GH_TOKEN env > gh auth token
func getGitHubToken(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	// Try environment variables first (highest priority)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}

	// Try gh CLI auth token (uses gh's secure credential storage)
	// Only attempt if gh command is available
	if _, err := exec.LookPath("gh"); err == nil {
		cmd := exec.Command("gh", "auth", "token")
		output, err := cmd.Output()
		if err == nil {
			token := strings.TrimSpace(string(output))
			if token != "" {
				return token
			}
		}
	}

	return ""
}
