package pktbuild

import (
	"context"
	"fmt"

	"github.com/fatih/color"
)

// TestsOp builds the test artifact, then runs the test suite under the
// privilege strategy for the host platform.
//
// The steps are ordered gates:
//  1. the test artifact must build - a failure here aborts before any
//     privilege step is attempted
//  2. the operator is warned that elevation may be required (advisory)
//  3. the platform's privilege strategy runs the test runner; its exit
//     status is the operation's status
type TestsOp struct{}

// Name returns the operation name
func (TestsOp) Name() string {
	return "test"
}

func (o TestsOp) Run(ctx context.Context, cfg *Config) error {
	if err := (TestArtifactOp{}).Run(ctx, cfg); err != nil {
		return fmt.Errorf("building test artifact: %w", err)
	}

	fmt.Fprintln(cfg.Stderr, color.YellowString(
		"pktbuild: raw-socket tests may require elevated privileges"))

	strategy, err := privilegeStrategy(cfg.Platform)
	if err != nil {
		return err
	}
	return strategy(ctx, cfg)
}

// testRunner returns the command that executes the suite: "cargo test"
// when the package tool is present, the rustc-built harness otherwise.
// Verbosity widening carries into the runner invocation.
func testRunner(cfg *Config) (name string, args []string) {
	if cfg.Toolchain.HasCargo {
		args = []string{"test"}
		if cfg.Verbose {
			args = append(args, "--verbose")
		}
		return cfg.Toolchain.Cargo, args
	}
	// Absolute path: exec resolves relative command names against the
	// orchestrator's cwd, not the child's working directory.
	return cfg.absOut("debug", cfg.CrateName+"_test"), nil
}

// runnerEnv is the environment every platform strategy exports into the
// test runner: serial test execution, plus the interface hint when one
// is known. withIface is false on Linux, where the capability grant
// makes the tests interface-agnostic at setup time.
func runnerEnv(cfg *Config, withIface bool) map[string]string {
	env := map[string]string{testThreadsEnv: "1"}
	if withIface && cfg.Interface != "" {
		env[IfaceEnv] = cfg.Interface
	}
	return env
}
