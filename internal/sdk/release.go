package sdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/corvank/sdkfetch/internal/debug"
	"github.com/corvank/sdkfetch/internal/github"
	"github.com/corvank/sdkfetch/internal/run"
)

// resolveMinimal resolves the minimal flavor against the fixed-tag
// ci-artifacts release. The identity keys off the asset's last-modified
// timestamp; no commit is involved.
func (r *Resolver) resolveMinimal(ctx context.Context, meta Metadata) (*Artifact, error) {
	release, status, err := r.GitHub.GetReleaseByTag(ctx, r.owner(), meta.Repo, ciArtifactsTag)
	if err != nil {
		return nil, &ReleaseLookupError{Repo: meta.Repo, Status: status, Cause: err}
	}

	asset := findTarGzAsset(release.Assets)
	if asset == nil {
		return nil, &NoArtifactAssetError{Repo: meta.Repo}
	}
	debug.DebugValue("release asset", asset.Name)

	return &Artifact{
		Name: meta.ArtifactName,
		ID:   ciArtifactsTag + "-" + asset.UpdatedAt,
		Downloader: &releaseDownloader{
			assetName: asset.Name,
			assetURL:  asset.BrowserDownloadURL,
			token:     r.Token,
			client:    r.httpClient(),
			runner:    r.Runner,
			host:      r.host(),
			tempBase:  r.tempBase(),
		},
	}, nil
}

func findTarGzAsset(assets []*github.ReleaseAsset) *github.ReleaseAsset {
	for _, asset := range assets {
		if strings.HasSuffix(asset.Name, ".tar.gz") {
			return asset
		}
	}
	return nil
}

// releaseDownloader materializes the minimal flavor by streaming the
// release archive to a temporary file and extracting it with tar.
type releaseDownloader struct {
	assetName string
	assetURL  string
	token     string
	client    *http.Client
	runner    run.Runner
	host      *HostEnv
	tempBase  string
}

// Download fetches the archive and extracts it into outputDir. The output
// directory must not exist yet; re-downloading over a previous directory
// is deliberately refused, the caller removes or renames it first. The
// temporary archive is removed only after a clean extraction — a failed
// extraction leaves it behind.
func (d *releaseDownloader) Download(ctx context.Context, outputDir string, verbose bool) error {
	debug.DebugSection("download " + d.assetName)

	tmpFile := filepath.Join(d.tempBase, d.assetName)
	if err := d.fetchAsset(ctx, tmpFile); err != nil {
		return err
	}

	if err := os.Mkdir(outputDir, 0o755); err != nil {
		return err
	}

	if err := d.extract(ctx, tmpFile, outputDir, verbose); err != nil {
		return err
	}

	debug.Debug("extracted %s into %s", d.assetName, outputDir)
	if err := os.Remove(tmpFile); err != nil {
		return fmt.Errorf("failed to remove %s: %w", tmpFile, err)
	}
	return nil
}

// fetchAsset streams the asset to dest. Completion is tied to the file
// write finishing, not to the HTTP body alone.
func (d *releaseDownloader) fetchAsset(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.assetURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/octet-stream")
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("error downloading %s: %w", d.assetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: %s", d.assetURL, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", dest, err)
	}
	return nil
}

// extract unpacks the gzip-compressed tar archive into outputDir using the
// OS-native tar.
func (d *releaseDownloader) extract(ctx context.Context, archive, outputDir string, verbose bool) error {
	flags := "-xzf"
	if verbose {
		flags = "-xzvf"
	}

	if err := d.runner.Run(ctx, run.Command{
		Path: d.host.TarPath(),
		Args: []string{flags, archive, "-C", outputDir},
	}); err != nil {
		return fmt.Errorf("failed to extract %s: %w", archive, err)
	}
	return nil
}
