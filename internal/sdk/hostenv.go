package sdk

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// HostEnv locates the source-control toolchain used for subprocesses. On
// build agents a preferred Git installation ships under the agent home
// directory; elsewhere the tools come from PATH unchanged.
type HostEnv struct {
	// AgentHome is the build-agent home directory (AGENT_HOMEDIRECTORY),
	// empty when not running on an agent.
	AgentHome string
	// Path is the ambient PATH value.
	Path string
	// Comspec is the Windows command-interpreter path (COMSPEC).
	Comspec string
	// Windir is the Windows installation directory (WINDIR).
	Windir string
}

// DetectHostEnv reads the ambient environment variables that influence
// subprocess construction.
func DetectHostEnv() *HostEnv {
	return &HostEnv{
		AgentHome: os.Getenv("AGENT_HOMEDIRECTORY"),
		Path:      os.Getenv("PATH"),
		Comspec:   os.Getenv("COMSPEC"),
		Windir:    os.Getenv("WINDIR"),
	}
}

// toolchainDir returns the preferred Git toolchain installation, or ""
// when the ambient tools should be used as-is.
func (h *HostEnv) toolchainDir() string {
	if h.AgentHome == "" {
		return ""
	}
	return filepath.Join(h.AgentHome, "externals", "git")
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// GitPath returns the git executable to spawn.
func (h *HostEnv) GitPath() string {
	dir := h.toolchainDir()
	if dir == "" {
		return "git"
	}
	return filepath.Join(dir, "cmd", "git"+exeSuffix())
}

// BashPath returns the POSIX shell used to run packaging scripts.
func (h *HostEnv) BashPath() string {
	dir := h.toolchainDir()
	if dir == "" {
		return "bash"
	}
	return filepath.Join(dir, "usr", "bin", "bash"+exeSuffix())
}

// TarPath returns the tar executable used for archive extraction.
func (h *HostEnv) TarPath() string {
	dir := h.toolchainDir()
	if dir == "" {
		return "tar"
	}
	return filepath.Join(dir, "usr", "bin", "tar"+exeSuffix())
}

// GitEnv returns the environment overrides applied to every git
// subprocess. checkout.workers is pinned to a worker count chosen
// empirically for throughput without starving the host.
func (h *HostEnv) GitEnv() map[string]string {
	return map[string]string{
		"GIT_CONFIG_PARAMETERS": "'checkout.workers=56'",
	}
}

// ScriptEnv returns the environment overrides for packaging-script
// invocations: a PATH ordering that puts the toolchain's bin directories
// first, and a fixed locale.
func (h *HostEnv) ScriptEnv() map[string]string {
	env := map[string]string{
		"LC_CTYPE": "C.UTF-8",
	}

	dir := h.toolchainDir()
	if dir == "" {
		return env
	}

	paths := []string{
		filepath.Join(dir, "bin"),
		filepath.Join(dir, "usr", "bin"),
		filepath.Join(dir, "mingw64", "bin"),
	}
	if h.Windir != "" {
		paths = append(paths, filepath.Join(h.Windir, "system32"))
	}
	if h.Path != "" {
		paths = append(paths, h.Path)
	}
	env["PATH"] = strings.Join(paths, string(os.PathListSeparator))
	if h.Comspec != "" {
		env["COMSPEC"] = h.Comspec
	}
	return env
}
