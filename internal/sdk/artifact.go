package sdk

import "context"

// Downloader materializes a resolved artifact into an output directory.
// The output directory must not exist beforehand; a download leaves
// temporary state behind when it fails partway (see the strategy
// implementations for the exact lifecycle).
//
// Downloads are single-use in practice: the temporary paths involved are
// fixed, so concurrent downloads of the same artifact from one process
// collide. Single-flight per flavor is the caller's responsibility.
type Downloader interface {
	Download(ctx context.Context, outputDir string, verbose bool) error
}

// Artifact is a resolved SDK artifact: its logical name, a stable identity
// string, and the deferred download operation.
type Artifact struct {
	// Name is "<repo>-<flavor>".
	Name string
	// ID uniquely identifies the artifact contents. It changes only when
	// the underlying content would differ, making it usable as a cache
	// key by callers.
	ID string
	// Downloader materializes the artifact.
	Downloader Downloader
}
