package pktbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// BenchOp compiles benchmark binaries into <out>/benches: the library's
// own benchmarks via cargo, and native C comparison benchmarks from
// benches/*.c linked against the release build.
type BenchOp struct{}

// Name returns the operation name
func (BenchOp) Name() string {
	return "benchmarks"
}

func (o BenchOp) Run(ctx context.Context, cfg *Config) error {
	if cfg.Toolchain.HasCargo {
		args := []string{"bench", "--no-run"}
		if cfg.Verbose {
			args = append(args, "--verbose")
		}
		if err := cfg.run(ctx, nil, cfg.Toolchain.Cargo, args...); err != nil {
			return err
		}
	}
	return o.buildNativeBenches(ctx, cfg)
}

// buildNativeBenches compiles each C benchmark source found under
// benches/. The C sources use raw BSD sockets and are known not to build
// under the Windows compatibility layer; that is advisory, not fatal.
func (o BenchOp) buildNativeBenches(ctx context.Context, cfg *Config) error {
	if cfg.Platform == PlatformWindowsCompat {
		fmt.Fprintln(cfg.Stderr, color.YellowString(
			"pktbuild: skipping native C benchmarks: known not to build on %s", cfg.Platform))
		return nil
	}

	sources, err := filepath.Glob(filepath.Join(cfg.ProjectDir, "benches", "*.c"))
	if err != nil || len(sources) == 0 {
		return nil
	}

	for _, src := range sources {
		name := strings.TrimSuffix(filepath.Base(src), ".c")
		args := []string{"-O3"}
		if cfg.Verbose {
			args = append(args, "-v")
		}
		args = append(args,
			filepath.Join("benches", filepath.Base(src)),
			"-o", cfg.outPath("benches", name),
			"-L", cfg.outPath("release"),
			"-l"+cfg.CrateName,
		)
		if err := cfg.run(ctx, nil, cfg.Toolchain.CC, args...); err != nil {
			return err
		}
	}
	return nil
}
