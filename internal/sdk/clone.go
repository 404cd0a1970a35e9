package sdk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"github.com/corvank/sdkfetch/internal/debug"
	"github.com/corvank/sdkfetch/internal/run"
)

// cloneDownloader materializes a clone-based flavor: a shallow bare clone
// of the SDK repository pinned to the resolved commit, followed by either
// a worktree checkout (flavor "full") or the build-extra packaging script
// (any other flavor).
type cloneDownloader struct {
	owner     string
	repo      string
	commit    string
	arch      Architecture
	flavor    Flavor
	runner    run.Runner
	host      *HostEnv
	tmpDir    string
	cloneOpts []string
}

// Download runs the clone pipeline into outputDir. Each stage is gated on
// the previous stage's exit code; the first nonzero exit aborts the whole
// pipeline. The temporary clone is removed only when the final stage
// succeeds — a failed run leaves it behind for inspection.
func (d *cloneDownloader) Download(ctx context.Context, outputDir string, verbose bool) error {
	debug.DebugSection("clone " + d.repo)

	if err := d.bareClone(ctx); err != nil {
		return err
	}

	if d.flavor == FlavorFull {
		if err := d.addWorktree(ctx, outputDir); err != nil {
			return err
		}
	} else {
		if err := d.pinCommit(ctx); err != nil {
			return err
		}
		if err := d.cloneBuildExtra(ctx); err != nil {
			return err
		}
		if err := d.runPackagingScript(ctx, outputDir); err != nil {
			return err
		}
	}

	debug.DebugSection("cleanup " + d.tmpDir)
	if err := os.RemoveAll(d.tmpDir); err != nil {
		return fmt.Errorf("failed to remove temporary clone %s: %w", d.tmpDir, err)
	}
	return nil
}

// bareClone performs a shallow single-branch bare clone into the fixed
// temporary path. Non-full flavors add a blob filter, deferring file
// contents the packaging script never reads.
func (d *cloneDownloader) bareClone(ctx context.Context) error {
	debug.DebugSection("bare clone " + d.repo)

	args := []string{"clone", "--depth=1", "--single-branch", "--branch=" + defaultBranch, "--bare"}
	if d.flavor != FlavorFull {
		args = append(args, "--filter=blob:none")
	}
	args = append(args, d.cloneOpts...)
	args = append(args, d.remoteURL(d.repo), d.tmpDir)

	if err := d.runner.Run(ctx, run.Command{
		Path: d.host.GitPath(),
		Args: args,
		Env:  d.host.GitEnv(),
	}); err != nil {
		return fmt.Errorf("failed to clone %s: %w", d.repo, err)
	}
	return nil
}

// addWorktree materializes the full flavor: one step that both pins the
// bare repository to the resolved commit and checks out its files.
func (d *cloneDownloader) addWorktree(ctx context.Context, outputDir string) error {
	debug.DebugSection("worktree checkout " + d.commit)

	if err := d.runner.Run(ctx, run.Command{
		Path: d.host.GitPath(),
		Args: []string{"worktree", "add", outputDir, d.commit},
		Dir:  d.tmpDir,
		Env:  d.host.GitEnv(),
	}); err != nil {
		return fmt.Errorf("failed to add worktree at %s: %w", outputDir, err)
	}
	return nil
}

// pinCommit points the bare repository's HEAD at the resolved commit.
// Without a checkout step nothing else would fix it.
func (d *cloneDownloader) pinCommit(ctx context.Context) error {
	debug.DebugSection("pin HEAD to " + d.commit)

	if err := d.runner.Run(ctx, run.Command{
		Path: d.host.GitPath(),
		Args: []string{"update-ref", "HEAD", d.commit},
		Dir:  d.tmpDir,
		Env:  d.host.GitEnv(),
	}); err != nil {
		return fmt.Errorf("failed to update HEAD to %s: %w", d.commit, err)
	}
	return nil
}

// cloneBuildExtra fetches the packaging-script repository into a
// subdirectory of the temporary clone.
func (d *cloneDownloader) cloneBuildExtra(ctx context.Context) error {
	debug.DebugSection("clone " + buildExtraRepo)

	dest := d.buildExtraDir()
	if err := d.runner.Run(ctx, run.Command{
		Path: d.host.GitPath(),
		Args: []string{"clone", "--depth=1", d.remoteURL(buildExtraRepo), dest},
		Env:  d.host.GitEnv(),
	}); err != nil {
		return fmt.Errorf("failed to clone %s: %w", buildExtraRepo, err)
	}
	return nil
}

// runPackagingScript invokes build-extra's please.sh to produce the
// packaged artifact, under the toolchain shell with its PATH ordering and
// fixed locale.
func (d *cloneDownloader) runPackagingScript(ctx context.Context, outputDir string) error {
	debug.DebugSection("package " + string(d.flavor))

	command := shellquote.Join(
		filepath.Join(d.buildExtraDir(), "please.sh"),
		"create-sdk-artifact",
		"--architecture="+string(d.arch),
		"--out="+outputDir,
		"--sdk="+d.tmpDir,
		string(d.flavor),
	)

	if err := d.runner.Run(ctx, run.Command{
		Path: d.host.BashPath(),
		Args: []string{"-lc", command},
		Env:  d.host.ScriptEnv(),
	}); err != nil {
		return fmt.Errorf("packaging script failed: %w", err)
	}
	return nil
}

func (d *cloneDownloader) buildExtraDir() string {
	return filepath.Join(d.tmpDir, buildExtraRepo)
}

func (d *cloneDownloader) remoteURL(repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s", d.owner, repo)
}
