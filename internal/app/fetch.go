// Package app implements the sdkfetch workflows invoked by the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/corvank/sdkfetch/internal/debug"
	"github.com/corvank/sdkfetch/internal/sdk"
)

// FetchOptions contains options for artifact fetching.
type FetchOptions struct {
	// Flavor is the packaging variant (minimal, full, or a build-extra
	// defined variant).
	Flavor string
	// Architecture is the target CPU architecture.
	Architecture string
	// OutputDir is the directory the artifact is materialized into. It
	// must not exist yet.
	OutputDir string
	// Verbose enables verbose extraction output.
	Verbose bool
	// GitHubToken is the GitHub access token (optional).
	GitHubToken string
	// APIURL overrides the GitHub API endpoint (optional).
	APIURL string
	// CloneOpts is a shell-quoted string of extra git-clone arguments.
	CloneOpts string
}

// FetchResult describes a completed fetch.
type FetchResult struct {
	// ArtifactName is the logical artifact name, "<repo>-<flavor>".
	ArtifactName string
	// ArtifactID is the artifact's stable identity, usable as a cache
	// key by the caller.
	ArtifactID string
	// OutputDir is where the artifact was materialized.
	OutputDir string
}

// ResolveArtifact validates the options and resolves the artifact's name,
// identity, and download strategy. No clone or download happens here.
func ResolveArtifact(ctx context.Context, opts FetchOptions) (*sdk.Artifact, error) {
	debug.DebugSection("[app] Resolve artifact")
	debug.DebugValue("[app] Flavor", opts.Flavor)
	debug.DebugValue("[app] Architecture", opts.Architecture)

	if err := validateFetchOptions(opts); err != nil {
		return nil, NewValidationError("invalid fetch options", err)
	}

	resolver := sdk.NewResolver(opts.GitHubToken)
	if opts.APIURL != "" {
		resolver.GitHub.BaseURL = opts.APIURL
	}
	if opts.CloneOpts != "" {
		cloneOpts, err := shellquote.Split(opts.CloneOpts)
		if err != nil {
			return nil, NewValidationError("invalid clone options", err)
		}
		resolver.CloneOpts = cloneOpts
	}

	artifact, err := resolver.Resolve(ctx, sdk.Flavor(opts.Flavor), sdk.Architecture(opts.Architecture))
	if err != nil {
		return nil, NewResolveError("failed to resolve artifact", err)
	}

	debug.DebugValue("[app] ArtifactName", artifact.Name)
	debug.DebugValue("[app] ArtifactID", artifact.ID)
	return artifact, nil
}

// DownloadArtifact runs the artifact's deferred download into the output
// directory.
func DownloadArtifact(ctx context.Context, artifact *sdk.Artifact, opts FetchOptions) (*FetchResult, error) {
	debug.DebugSection("[app] Download artifact")
	debug.DebugValue("[app] OutputDir", opts.OutputDir)
	debug.DebugValue("[app] Verbose", opts.Verbose)

	if err := artifact.Downloader.Download(ctx, opts.OutputDir, opts.Verbose); err != nil {
		return nil, NewDownloadError(fmt.Sprintf("failed to download %s", artifact.Name), err)
	}

	return &FetchResult{
		ArtifactName: artifact.Name,
		ArtifactID:   artifact.ID,
		OutputDir:    opts.OutputDir,
	}, nil
}

// Fetch resolves and immediately downloads an artifact.
func Fetch(ctx context.Context, opts FetchOptions) (*FetchResult, error) {
	artifact, err := ResolveArtifact(ctx, opts)
	if err != nil {
		return nil, err
	}
	return DownloadArtifact(ctx, artifact, opts)
}

// validateFetchOptions validates fetch options.
func validateFetchOptions(opts FetchOptions) error {
	if opts.Flavor == "" {
		return fmt.Errorf("flavor cannot be empty")
	}
	if opts.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return nil
}
