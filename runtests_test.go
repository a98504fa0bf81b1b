package pktbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func stubEuid(t *testing.T, euid int) {
	t.Helper()
	restore := geteuid
	t.Cleanup(func() { geteuid = restore })
	geteuid = func() int { return euid }
}

// writeTestBinary plants a fake compiled test harness so the capability
// grant has something to glob.
func writeTestBinary(t *testing.T, cfg *Config) string {
	t.Helper()
	dir := cfg.absOut("debug")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(dir, cfg.CrateName+"_test")
	if err := os.WriteFile(bin, []byte("#!ELF"), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin
}

func TestRunTestsUnsupportedPlatform(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	cfg.Platform = PlatformUnsupported

	err := (TestsOp{}).Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	// The artifact still builds (the gate precedes the platform check),
	// but neither the runner nor the elevation utility may be invoked:
	// only the two --no-run artifact compilations are allowed.
	if len(calls) != 2 {
		t.Fatalf("expected only artifact builds, got %+v", calls)
	}
	for _, call := range calls {
		if call.name == "/usr/bin/sudo" {
			t.Errorf("elevation utility invoked on unsupported platform: %+v", call)
		}
		if call.args[len(call.args)-1] != "--no-run" {
			t.Errorf("unexpected invocation on unsupported platform: %+v", call)
		}
	}
}

func TestRunTestsArtifactFailureAbortsBeforePrivilegeSteps(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	buildErr := errors.New("exit status 101")
	cfg.Exec = func(ctx context.Context, c *Config, env map[string]string, name string, args ...string) error {
		calls = append(calls, execCall{name: name, args: args, env: env})
		return buildErr
	}

	err := (TestsOp{}).Run(context.Background(), cfg)
	if err == nil || !errors.Is(err, buildErr) {
		t.Fatalf("expected wrapped artifact build error, got %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected exactly one call (failed artifact build), got %+v", calls)
	}
	if calls[0].name == "/usr/bin/sudo" {
		t.Error("elevation must not run after a failed artifact build")
	}
}

func TestRunTestsLinuxGrantsCapabilityThenRunsAsUser(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	withoutCargo(cfg)
	cfg.Platform = PlatformLinux
	cfg.Interface = "eth0"
	stubEuid(t, 1000)
	bin := writeTestBinary(t, cfg)

	if err := (TestsOp{}).Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// rustc --test, sudo setcap, then the harness itself.
	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %+v", calls)
	}

	grant := calls[1]
	if grant.name != "/usr/bin/sudo" {
		t.Fatalf("expected capability grant via sudo, got %s", grant.name)
	}
	expected := []string{"setcap", capabilityGrant, bin}
	if !reflect.DeepEqual(grant.args, expected) {
		t.Errorf("grant args = %v, expected %v", grant.args, expected)
	}

	runner := calls[2]
	if runner.name != bin {
		t.Errorf("runner = %s, expected the unelevated harness %s", runner.name, bin)
	}
	if runner.env[testThreadsEnv] != "1" {
		t.Errorf("test parallelism not pinned: env=%v", runner.env)
	}
	if _, ok := runner.env[IfaceEnv]; ok {
		t.Error("interface hint should not be exported on Linux")
	}
}

func TestRunTestsLinuxAsRootSkipsGrant(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	withoutCargo(cfg)
	stubEuid(t, 0)
	writeTestBinary(t, cfg)

	if err := (TestsOp{}).Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, call := range calls {
		if call.name == "/usr/bin/sudo" {
			t.Errorf("no grant needed when already privileged: %+v", call)
		}
	}
}

func TestRunTestsBSDElevatesWholeRunner(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	cfg.Platform = PlatformBSDOrDarwin
	cfg.Interface = "en0"

	if err := (TestsOp{}).Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runner := calls[len(calls)-1]
	if runner.name != "/usr/bin/sudo" {
		t.Fatalf("expected elevated runner, got %s", runner.name)
	}
	expected := []string{IfaceEnv + "=en0", testThreadsEnv + "=1", "/usr/bin/cargo", "test"}
	if !reflect.DeepEqual(runner.args, expected) {
		t.Errorf("elevated args = %v, expected %v", runner.args, expected)
	}
}

func TestRunTestsWindowsCompatRunsDirectly(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	cfg.Platform = PlatformWindowsCompat
	cfg.Interface = "Ethernet0"

	if err := (TestsOp{}).Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runner := calls[len(calls)-1]
	if runner.name != "/usr/bin/cargo" {
		t.Fatalf("expected direct cargo runner, got %s", runner.name)
	}
	if runner.env[IfaceEnv] != "Ethernet0" || runner.env[testThreadsEnv] != "1" {
		t.Errorf("runner env = %v", runner.env)
	}
}

func TestRunTestsVerbosityReachesRunner(t *testing.T) {
	var calls []execCall
	cfg := newTestConfig(t, &calls)
	cfg.Platform = PlatformWindowsCompat
	cfg.Verbose = true

	if err := (TestsOp{}).Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runner := calls[len(calls)-1]
	if strings.Join(runner.args, " ") != "test --verbose" {
		t.Errorf("verbose runner args = %v", runner.args)
	}
}
