package sdk

import (
	"errors"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		name         string
		flavor       Flavor
		arch         Architecture
		wantRepo     string
		wantArtifact string
		wantErr      bool
	}{
		{
			name:         "x86_64 full",
			flavor:       FlavorFull,
			arch:         ArchX86_64,
			wantRepo:     "git-sdk-64",
			wantArtifact: "git-sdk-64-full",
		},
		{
			name:         "i686 full",
			flavor:       FlavorFull,
			arch:         ArchI686,
			wantRepo:     "git-sdk-32",
			wantArtifact: "git-sdk-32-full",
		},
		{
			name:         "aarch64 minimal",
			flavor:       FlavorMinimal,
			arch:         ArchAarch64,
			wantRepo:     "git-sdk-arm64",
			wantArtifact: "git-sdk-arm64-minimal",
		},
		{
			name:         "build-installers flavor",
			flavor:       Flavor("build-installers"),
			arch:         ArchX86_64,
			wantRepo:     "git-sdk-64",
			wantArtifact: "git-sdk-64-build-installers",
		},
		{
			name:    "unknown architecture",
			flavor:  FlavorFull,
			arch:    Architecture("armv7"),
			wantErr: true,
		},
		{
			name:    "empty architecture",
			flavor:  FlavorFull,
			arch:    Architecture(""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := MetadataFor(tt.flavor, tt.arch)
			if tt.wantErr {
				if err == nil {
					t.Fatal("MetadataFor() error = nil, want error")
				}
				var archErr *InvalidArchitectureError
				if !errors.As(err, &archErr) {
					t.Fatalf("MetadataFor() error = %v, want *InvalidArchitectureError", err)
				}
				if archErr.Architecture != tt.arch {
					t.Errorf("error names architecture %q, want %q", archErr.Architecture, tt.arch)
				}
				return
			}
			if err != nil {
				t.Fatalf("MetadataFor() error = %v", err)
			}
			if meta.Repo != tt.wantRepo {
				t.Errorf("Repo = %q, want %q", meta.Repo, tt.wantRepo)
			}
			if meta.ArtifactName != tt.wantArtifact {
				t.Errorf("ArtifactName = %q, want %q", meta.ArtifactName, tt.wantArtifact)
			}
		})
	}
}
