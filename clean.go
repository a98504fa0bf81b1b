package pktbuild

import (
	"context"
	"fmt"
	"os"
)

// CleanOp removes build output. An already-clean tree is a success, not
// an error.
type CleanOp struct{}

// Name returns the operation name
func (CleanOp) Name() string {
	return "clean"
}

func (o CleanOp) Run(ctx context.Context, cfg *Config) error {
	return toolSteps{cargo: o.cargoClean, fallback: o.removeOutDir}.run(ctx, cfg)
}

func (o CleanOp) cargoClean(ctx context.Context, cfg *Config) error {
	return cfg.run(ctx, nil, cfg.Toolchain.Cargo, "clean")
}

// removeOutDir deletes the output tree directly. os.RemoveAll treats a
// missing directory as success, which is exactly the contract.
func (o CleanOp) removeOutDir(ctx context.Context, cfg *Config) error {
	if err := os.RemoveAll(cfg.absOut()); err != nil {
		return fmt.Errorf("remove %s: %w", cfg.absOut(), err)
	}
	return nil
}
