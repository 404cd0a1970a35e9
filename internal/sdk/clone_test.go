package sdk

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corvank/sdkfetch/internal/run"
)

func newCloneDownloader(flavor Flavor, runner run.Runner, tmpDir string) *cloneDownloader {
	return &cloneDownloader{
		owner:  "git-for-windows",
		repo:   "git-sdk-64",
		commit: "cafebabe",
		arch:   ArchX86_64,
		flavor: flavor,
		runner: runner,
		host:   &HostEnv{},
		tmpDir: tmpDir,
	}
}

func TestCloneFullFlavor(t *testing.T) {
	runner := newFakeRunner()
	tmpDir := filepath.Join(t.TempDir(), "clone.git")
	d := newCloneDownloader(FlavorFull, runner, tmpDir)

	outputDir := filepath.Join(t.TempDir(), "out")
	if err := d.Download(context.Background(), outputDir, false); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	if len(runner.commands) != 2 {
		t.Fatalf("ran %d commands, want 2: %v", len(runner.commands), runner.commands)
	}

	clone := runner.commands[0]
	if clone.Path != "git" {
		t.Errorf("first command = %q, want git", clone.Path)
	}
	wantClone := []string{
		"clone", "--depth=1", "--single-branch", "--branch=main", "--bare",
		"https://github.com/git-for-windows/git-sdk-64", tmpDir,
	}
	if !equalArgs(clone.Args, wantClone) {
		t.Errorf("clone args = %v, want %v", clone.Args, wantClone)
	}
	if clone.Env["GIT_CONFIG_PARAMETERS"] != "'checkout.workers=56'" {
		t.Errorf("clone env = %v, want checkout.workers override", clone.Env)
	}

	worktree := runner.commands[1]
	wantWorktree := []string{"worktree", "add", outputDir, "cafebabe"}
	if !equalArgs(worktree.Args, wantWorktree) {
		t.Errorf("worktree args = %v, want %v", worktree.Args, wantWorktree)
	}
	if worktree.Dir != tmpDir {
		t.Errorf("worktree ran in %q, want %q", worktree.Dir, tmpDir)
	}
}

func TestClonePackagingFlavor(t *testing.T) {
	runner := newFakeRunner()
	tmpDir := filepath.Join(t.TempDir(), "clone.git")
	d := newCloneDownloader(Flavor("build-installers"), runner, tmpDir)

	outputDir := filepath.Join(t.TempDir(), "out")
	if err := d.Download(context.Background(), outputDir, false); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	if len(runner.commands) != 4 {
		t.Fatalf("ran %d commands, want 4: %v", len(runner.commands), runner.commands)
	}

	clone := runner.commands[0]
	if !containsArg(clone.Args, "--filter=blob:none") {
		t.Errorf("partial clone should use a blob filter, args = %v", clone.Args)
	}

	updateRef := runner.commands[1]
	wantUpdateRef := []string{"update-ref", "HEAD", "cafebabe"}
	if !equalArgs(updateRef.Args, wantUpdateRef) {
		t.Errorf("update-ref args = %v, want %v", updateRef.Args, wantUpdateRef)
	}
	if updateRef.Dir != tmpDir {
		t.Errorf("update-ref ran in %q, want %q", updateRef.Dir, tmpDir)
	}

	extraClone := runner.commands[2]
	wantExtra := []string{
		"clone", "--depth=1",
		"https://github.com/git-for-windows/build-extra",
		filepath.Join(tmpDir, "build-extra"),
	}
	if !equalArgs(extraClone.Args, wantExtra) {
		t.Errorf("build-extra clone args = %v, want %v", extraClone.Args, wantExtra)
	}

	script := runner.commands[3]
	if script.Path != "bash" {
		t.Errorf("packaging script runs under %q, want bash", script.Path)
	}
	if len(script.Args) != 2 || script.Args[0] != "-lc" {
		t.Fatalf("script args = %v, want [-lc <command>]", script.Args)
	}
	command := script.Args[1]
	for _, want := range []string{
		"please.sh",
		"create-sdk-artifact",
		"--architecture=x86_64",
		"--out=" + outputDir,
		"--sdk=" + tmpDir,
		"build-installers",
	} {
		if !strings.Contains(command, want) {
			t.Errorf("script command %q missing %q", command, want)
		}
	}
	if script.Env["LC_CTYPE"] != "C.UTF-8" {
		t.Errorf("script env = %v, want fixed locale", script.Env)
	}
}

func TestCloneExtraOptions(t *testing.T) {
	runner := newFakeRunner()
	tmpDir := filepath.Join(t.TempDir(), "clone.git")
	d := newCloneDownloader(FlavorFull, runner, tmpDir)
	d.cloneOpts = []string{"--config", "http.sslVerify=false"}

	if err := d.Download(context.Background(), t.TempDir()+"/out", false); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	clone := runner.commands[0]
	if !containsArg(clone.Args, "--config") || !containsArg(clone.Args, "http.sslVerify=false") {
		t.Errorf("clone args = %v, want extra options included", clone.Args)
	}
}

func TestCloneFailureAbortsPipeline(t *testing.T) {
	runner := newFakeRunner()
	runner.failAt = 0
	runner.failErr = &run.ExitError{Path: "git", Code: 128}

	tmpDir := filepath.Join(t.TempDir(), "clone.git")
	d := newCloneDownloader(FlavorFull, runner, tmpDir)

	err := d.Download(context.Background(), t.TempDir()+"/out", false)
	if err == nil {
		t.Fatal("Download() error = nil, want clone failure")
	}
	if code, ok := run.ExitCode(err); !ok || code != 128 {
		t.Errorf("ExitCode() = %d, %v, want 128, true", code, ok)
	}
	if len(runner.commands) != 1 {
		t.Errorf("ran %d commands after failure, want 1", len(runner.commands))
	}
}

func TestCloneFailureLeavesTempClone(t *testing.T) {
	runner := newFakeRunner()
	runner.failAt = 1
	runner.failErr = &run.ExitError{Path: "git", Code: 1}

	tmpDir := filepath.Join(t.TempDir(), "clone.git")
	if err := mkdirAll(tmpDir); err != nil {
		t.Fatal(err)
	}

	d := newCloneDownloader(FlavorFull, runner, tmpDir)
	if err := d.Download(context.Background(), t.TempDir()+"/out", false); err == nil {
		t.Fatal("Download() error = nil, want worktree failure")
	}

	if !dirExists(tmpDir) {
		t.Error("failed download removed the temporary clone; it must stay for inspection")
	}
}

func TestCloneSuccessRemovesTempClone(t *testing.T) {
	runner := newFakeRunner()
	tmpDir := filepath.Join(t.TempDir(), "clone.git")
	if err := mkdirAll(tmpDir); err != nil {
		t.Fatal(err)
	}

	d := newCloneDownloader(FlavorFull, runner, tmpDir)
	if err := d.Download(context.Background(), t.TempDir()+"/out", false); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	if dirExists(tmpDir) {
		t.Error("successful download left the temporary clone behind")
	}
}

func equalArgs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
