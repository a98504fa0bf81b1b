package pktbuild

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// CommandFunc executes one external command with extra environment
// variables layered over the inherited environment. The default
// implementation blocks until the child exits and returns its error
// verbatim, so exec.ExitError values surface unchanged to the caller.
type CommandFunc func(ctx context.Context, cfg *Config, env map[string]string, name string, args ...string) error

// run dispatches to the injected Exec function or the real executor.
// In verbose mode the constructed command line is echoed first, the
// shell-tracing equivalent for generated invocations.
func (c *Config) run(ctx context.Context, env map[string]string, name string, args ...string) error {
	if c.Verbose {
		fmt.Fprintf(c.Stderr, "+ %s\n", commandLine(env, name, args))
	}
	if c.Exec != nil {
		return c.Exec(ctx, c, env, name, args...)
	}
	return runCommand(ctx, c, env, name, args...)
}

// runCommand is the real executor: child runs in ProjectDir, inherits
// the process environment plus env, and streams output to the
// configured writers. No timeout or cancellation beyond ctx - a hung
// tool hangs the run.
func runCommand(ctx context.Context, cfg *Config, env map[string]string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = cfg.ProjectDir
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	cmd.Env = append(os.Environ(), envPairs(env)...)
	return cmd.Run()
}

// envPairs flattens an env map into KEY=value strings, sorted so
// generated invocations are deterministic.
func envPairs(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

func commandLine(env map[string]string, name string, args []string) string {
	parts := append(envPairs(env), name)
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}
