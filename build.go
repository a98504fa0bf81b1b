package pktbuild

import "context"

// BuildOp compiles the library in release mode. It is the default verb.
type BuildOp struct{}

// Name returns the operation name
func (BuildOp) Name() string {
	return "build"
}

// Run compiles via cargo when available, otherwise invokes the compiler
// directly on the library entry source. Success is entirely the external
// tool's exit status; no artifact path is validated.
func (o BuildOp) Run(ctx context.Context, cfg *Config) error {
	return toolSteps{cargo: o.cargoBuild, fallback: o.rustcBuild}.run(ctx, cfg)
}

func (o BuildOp) cargoBuild(ctx context.Context, cfg *Config) error {
	args := []string{"build", "--release"}
	if cfg.Verbose {
		args = append(args, "--verbose")
	}
	return cfg.run(ctx, nil, cfg.Toolchain.Cargo, args...)
}

func (o BuildOp) rustcBuild(ctx context.Context, cfg *Config) error {
	return cfg.run(ctx, nil, cfg.Toolchain.Rustc,
		"-O", "--out-dir", cfg.outPath("release"), cfg.EntrySource)
}
