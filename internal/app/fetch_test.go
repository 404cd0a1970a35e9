package app

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/corvank/sdkfetch/internal/sdk"
)

func TestResolveArtifactValidation(t *testing.T) {
	tests := []struct {
		name string
		opts FetchOptions
	}{
		{
			name: "empty flavor",
			opts: FetchOptions{Architecture: "x86_64", OutputDir: "out"},
		},
		{
			name: "empty output",
			opts: FetchOptions{Flavor: "full", Architecture: "x86_64"},
		},
		{
			name: "unparsable clone options",
			opts: FetchOptions{Flavor: "full", Architecture: "x86_64", OutputDir: "out", CloneOpts: "'unterminated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveArtifact(context.Background(), tt.opts)
			var appErr *AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("ResolveArtifact() error = %v, want *AppError", err)
			}
			if appErr.Type != ValidationFailed {
				t.Errorf("Type = %v, want ValidationFailed", appErr.Type)
			}
		})
	}
}

func TestResolveArtifactInvalidArchitecture(t *testing.T) {
	_, err := ResolveArtifact(context.Background(), FetchOptions{
		Flavor:       "full",
		Architecture: "armv7",
		OutputDir:    "out",
	})

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("ResolveArtifact() error = %v, want *AppError", err)
	}
	if appErr.Type != ResolveFailed {
		t.Errorf("Type = %v, want ResolveFailed", appErr.Type)
	}

	var archErr *sdk.InvalidArchitectureError
	if !errors.As(err, &archErr) {
		t.Errorf("error chain %v should carry *sdk.InvalidArchitectureError", err)
	}
}

// buildTarGz produces a small gzip-compressed tar archive holding a single
// file with the given content.
func buildTarGz(t *testing.T, name, content string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name: name,
		Mode: 0o644,
		Size: int64(len(content)),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchMinimal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test requires tar on PATH")
	}

	archive := buildTarGz(t, "etc/motd", "welcome\n")

	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/repos/git-for-windows/git-sdk-64/releases/tags/ci-artifacts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"tag_name": "ci-artifacts",
			"assets": [
				{"name": "sdkfetch-test-minimal.tar.gz",
				 "updated_at": "2024-01-01T00:00:00Z",
				 "browser_download_url": "%s/download"}
			]
		}`, server.URL)
	})
	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "sdk")
	result, err := Fetch(context.Background(), FetchOptions{
		Flavor:       "minimal",
		Architecture: "x86_64",
		OutputDir:    outputDir,
		APIURL:       server.URL,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if result.ArtifactName != "git-sdk-64-minimal" {
		t.Errorf("ArtifactName = %q", result.ArtifactName)
	}
	if result.ArtifactID != "ci-artifacts-2024-01-01T00:00:00Z" {
		t.Errorf("ArtifactID = %q", result.ArtifactID)
	}

	extracted := filepath.Join(outputDir, "etc", "motd")
	content, err := os.ReadFile(extracted)
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(content) != "welcome\n" {
		t.Errorf("extracted content = %q, want %q", content, "welcome\n")
	}
}
