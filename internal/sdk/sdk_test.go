package sdk

import (
	"context"
	"os"

	"github.com/corvank/sdkfetch/internal/run"
)

// fakeRunner records every command instead of spawning processes. It can
// be told to fail at a given command index.
type fakeRunner struct {
	commands []run.Command
	failAt   int
	failErr  error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{failAt: -1}
}

func (f *fakeRunner) Run(ctx context.Context, cmd run.Command) error {
	idx := len(f.commands)
	f.commands = append(f.commands, cmd)
	if idx == f.failAt {
		return f.failErr
	}
	return nil
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
