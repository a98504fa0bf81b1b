package pktbuild

import (
	"io"
	"os"
	"path/filepath"
)

// Environment variables consumed by the orchestrator.
const (
	// VerboseEnv widens generated invocations with diagnostic flags when
	// set to exactly "1". Any other value (including unset) is off.
	VerboseEnv = "PKTBUILD_VERBOSE"

	// IfaceEnv names the network interface raw-socket tests should use.
	// When the caller sets it, interface discovery is skipped and the
	// value is exported into the test-runner environment unchanged.
	IfaceEnv = "PKTBUILD_TEST_IFACE"
)

// testThreadsEnv pins test-task parallelism in the spawned runner.
// Raw-socket tests interfere with each other when run concurrently.
const testThreadsEnv = "RUST_TEST_THREADS"

// Config is the process-wide configuration for one orchestrator run.
//
// It is populated once by Load before dispatch and is read-only
// afterwards. Handlers receive it by pointer but never mutate it, so a
// hand-built Config with an injected Exec function is enough to test any
// operation without touching the host.
type Config struct {
	// ProjectDir is the root of the library being built. External
	// commands run with this as their working directory.
	ProjectDir string

	// OutDir is the build output tree, relative to ProjectDir.
	// Default "target" (cargo's layout; the fallback paths mimic it).
	OutDir string

	// EntrySource is the library entry source file, relative to
	// ProjectDir, used by the direct-compiler fallback paths.
	EntrySource string

	// CrateName is the library name, used for doc generation, fallback
	// artifact naming and benchmark linking.
	CrateName string

	Toolchain Toolchain
	Platform  Platform

	// Interface is the discovered (or caller-overridden) network
	// interface hint. Empty means no hint is available; that is a valid
	// state, not an error.
	Interface string

	// Verbose widens invocations and echoes each command before running.
	Verbose bool

	// Stdout and Stderr receive child-process and operator output.
	Stdout io.Writer
	Stderr io.Writer

	// Exec, when non-nil, replaces real command execution. Tests inject
	// a recording function here.
	Exec CommandFunc
}

// NewConfig returns a Config with defaults filled in. Toolchain,
// Platform and Interface are left zero; Load populates them from the
// live host.
func NewConfig(projectDir string) *Config {
	return &Config{
		ProjectDir:  projectDir,
		OutDir:      "target",
		EntrySource: filepath.Join("src", "lib.rs"),
		CrateName:   filepath.Base(absOrSelf(projectDir)),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Load builds the full process configuration from the live environment:
// manifest, toolchain, platform class, interface hint and verbosity.
// Everything here is computed exactly once per run.
func Load(projectDir string) (*Config, error) {
	cfg := NewConfig(projectDir)

	name, entry, err := readManifest(projectDir)
	if err != nil {
		return nil, err
	}
	if name != "" {
		cfg.CrateName = name
	}
	if entry != "" {
		cfg.EntrySource = entry
	}

	cfg.Toolchain = ResolveToolchain()
	cfg.Platform = DetectPlatform()
	cfg.Verbose = os.Getenv(VerboseEnv) == "1"

	if iface := os.Getenv(IfaceEnv); iface != "" {
		cfg.Interface = iface
	} else {
		cfg.Interface = DetectInterface()
	}

	return cfg, nil
}

// outPath joins OutDir sub-elements into a path relative to ProjectDir,
// suitable as an argument to a command running in ProjectDir.
func (c *Config) outPath(elem ...string) string {
	return filepath.Join(append([]string{c.OutDir}, elem...)...)
}

// absOut returns the absolute path of an output subtree, for filesystem
// operations that do not go through a child process.
func (c *Config) absOut(elem ...string) string {
	return filepath.Join(c.ProjectDir, c.outPath(elem...))
}

func absOrSelf(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
