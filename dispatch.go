package pktbuild

import (
	"context"
	"fmt"
	"os"
)

// Operation is one orchestrator verb handler.
//
// Implementations are stateless; all run state lives in the Config they
// receive. An operation's error is the run's outcome - external command
// failures propagate verbatim with no retry.
type Operation interface {
	// Name returns the handler name used in diagnostics.
	Name() string

	// Run executes the operation against the given configuration.
	Run(ctx context.Context, cfg *Config) error
}

// OperationFor maps a CLI verb to its handler. Unrecognized or empty
// verbs mean "build" - that is the defined default, not an error.
func OperationFor(verb string) Operation {
	switch verb {
	case "test":
		return TestsOp{}
	case "doc":
		return DocsOp{}
	case "clean":
		return CleanOp{}
	case "benchmarks":
		return BenchOp{}
	default:
		return BuildOp{}
	}
}

// Dispatch scaffolds the output tree and runs the handler for verb.
// The doc and benchmark directories are created idempotently before
// dispatch regardless of which verb was given; they are plumbing, not
// application state.
func Dispatch(ctx context.Context, cfg *Config, verb string) error {
	if err := scaffold(cfg); err != nil {
		return err
	}
	if cfg.Verbose {
		fmt.Fprint(cfg.Stderr, cfg.Toolchain.Describe())
	}
	return OperationFor(verb).Run(ctx, cfg)
}

func scaffold(cfg *Config) error {
	for _, dir := range []string{cfg.absOut("doc"), cfg.absOut("benches")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return nil
}
