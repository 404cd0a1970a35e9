package sdk

import "fmt"

// InvalidArchitectureError reports a value outside the closed architecture
// set. It is returned before any I/O is attempted.
type InvalidArchitectureError struct {
	// Architecture is the rejected value.
	Architecture Architecture
}

// Error implements the error interface.
func (e *InvalidArchitectureError) Error() string {
	return fmt.Sprintf("invalid architecture: %s", e.Architecture)
}

// ReleaseLookupError reports a non-200 response when looking up the
// ci-artifacts release of a repository.
type ReleaseLookupError struct {
	// Repo is the repository whose release was queried.
	Repo string
	// Status is the HTTP status code returned by the API.
	Status int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ReleaseLookupError) Error() string {
	return fmt.Sprintf("ci-artifacts release lookup for %s failed with status %d", e.Repo, e.Status)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ReleaseLookupError) Unwrap() error {
	return e.Cause
}

// NoArtifactAssetError reports a ci-artifacts release that carries no
// .tar.gz asset.
type NoArtifactAssetError struct {
	// Repo is the repository whose release was inspected.
	Repo string
}

// Error implements the error interface.
func (e *NoArtifactAssetError) Error() string {
	return fmt.Sprintf("no .tar.gz asset found in the ci-artifacts release of %s", e.Repo)
}
