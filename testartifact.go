package pktbuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// TestArtifactOp compiles the test and benchmark artifacts without
// running them. TestsOp gates on it: the artifact must exist before any
// privilege step is attempted.
type TestArtifactOp struct{}

// Name returns the operation name
func (TestArtifactOp) Name() string {
	return "build-test-artifact"
}

func (o TestArtifactOp) Run(ctx context.Context, cfg *Config) error {
	return toolSteps{cargo: o.cargoNoRun, fallback: o.rustcTestHarness}.run(ctx, cfg)
}

func (o TestArtifactOp) cargoNoRun(ctx context.Context, cfg *Config) error {
	for _, sub := range []string{"test", "bench"} {
		args := []string{sub, "--no-run"}
		if cfg.Verbose {
			args = append(args, "--verbose")
		}
		if err := cfg.run(ctx, nil, cfg.Toolchain.Cargo, args...); err != nil {
			return err
		}
	}
	return nil
}

// rustcTestHarness compiles the entry source in test-harness mode. The
// _test suffix keeps the artifact from colliding with the release build
// output.
func (o TestArtifactOp) rustcTestHarness(ctx context.Context, cfg *Config) error {
	if err := os.MkdirAll(cfg.absOut("debug"), 0o755); err != nil {
		return err
	}
	return cfg.run(ctx, nil, cfg.Toolchain.Rustc,
		"--test", cfg.EntrySource, "-o", cfg.outPath("debug", cfg.CrateName+"_test"))
}

// testBinaries globs the compiled test executables under <out>/debug.
// Cargo writes them as <crate>-<hash> (plus .d dependency files, which
// are skipped); the fallback path writes <crate>_test.
func testBinaries(cfg *Config) []string {
	patterns := []string{
		filepath.Join(cfg.absOut("debug"), cfg.CrateName+"-*"),
		filepath.Join(cfg.absOut("debug", "deps"), cfg.CrateName+"-*"),
		filepath.Join(cfg.absOut("debug"), cfg.CrateName+"_test"),
	}
	var bins []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if strings.HasSuffix(m, ".d") || strings.HasSuffix(m, ".rlib") {
				continue
			}
			bins = append(bins, m)
		}
	}
	return bins
}
