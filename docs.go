package pktbuild

import "context"

// DocsOp generates API documentation into <out>/doc, which the
// dispatcher creates before any handler runs.
type DocsOp struct{}

// Name returns the operation name
func (DocsOp) Name() string {
	return "doc"
}

func (o DocsOp) Run(ctx context.Context, cfg *Config) error {
	return toolSteps{cargo: o.cargoDoc, fallback: o.rustdoc}.run(ctx, cfg)
}

func (o DocsOp) cargoDoc(ctx context.Context, cfg *Config) error {
	args := []string{"doc"}
	if cfg.Verbose {
		args = append(args, "--verbose")
	}
	return cfg.run(ctx, nil, cfg.Toolchain.Cargo, args...)
}

// rustdoc is the direct-generator fallback: explicit output directory
// and crate name, since there is no manifest-driven front-end to supply
// them.
func (o DocsOp) rustdoc(ctx context.Context, cfg *Config) error {
	return cfg.run(ctx, nil, cfg.Toolchain.Rustdoc,
		cfg.EntrySource, "-o", cfg.outPath("doc"), "--crate-name", cfg.CrateName)
}
