// Package sdk resolves and materializes Git SDK build artifacts for a
// requested flavor and CPU architecture, either through a clone/checkout
// pipeline or by downloading a prebuilt release archive.
package sdk

// Flavor selects the packaging variant of an SDK artifact.
type Flavor string

const (
	// FlavorMinimal is materialized from a prebuilt release archive
	// instead of a clone. No commit is resolved for it.
	FlavorMinimal Flavor = "minimal"
	// FlavorFull is a complete worktree checkout of the SDK repository.
	FlavorFull Flavor = "full"
)

// Architecture is the target CPU architecture. The set is closed; each
// value maps to exactly one SDK repository.
type Architecture string

const (
	ArchI686    Architecture = "i686"
	ArchX86_64  Architecture = "x86_64"
	ArchAarch64 Architecture = "aarch64"
)

var repoByArch = map[Architecture]string{
	ArchI686:    "git-sdk-32",
	ArchX86_64:  "git-sdk-64",
	ArchAarch64: "git-sdk-arm64",
}

// Repo returns the SDK repository name for the architecture.
func (a Architecture) Repo() (string, error) {
	repo, ok := repoByArch[a]
	if !ok {
		return "", &InvalidArchitectureError{Architecture: a}
	}
	return repo, nil
}

// Metadata is the derived naming for one artifact request.
type Metadata struct {
	// Repo is the SDK repository the artifact comes from.
	Repo string
	// ArtifactName is "<repo>-<flavor>".
	ArtifactName string
}

// MetadataFor computes artifact naming for a flavor/architecture pair.
// An unknown architecture fails here, before any network or filesystem
// activity.
func MetadataFor(flavor Flavor, arch Architecture) (Metadata, error) {
	repo, err := arch.Repo()
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Repo:         repo,
		ArtifactName: repo + "-" + string(flavor),
	}, nil
}
