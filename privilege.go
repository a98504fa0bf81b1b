package pktbuild

import (
	"context"
	"fmt"
	"os"
)

// Privilege strategies for raw-socket test execution, one per platform
// class, dispatched through a single switch so the escalation policy
// stays auditable in one place.
//
// Linux can attach a capability to a binary so the process, not the
// user, is elevated - the narrowest grant available. BSD and Darwin
// offer no equivalent reachable from here, so the whole test runner is
// elevated instead. The Windows compatibility layer is assumed to
// already run with sufficient access.

// capabilityGrant is the capability set a raw-socket test binary needs.
const capabilityGrant = "cap_net_raw,cap_net_admin+eip"

// escalation runs the test suite under one platform's privilege model.
type escalation func(ctx context.Context, cfg *Config) error

// geteuid is swapped out in tests.
var geteuid = os.Geteuid

// privilegeStrategy selects the escalation for a platform. Unsupported
// platforms get an error and no strategy - the test runner must never be
// invoked for them.
func privilegeStrategy(p Platform) (escalation, error) {
	switch p {
	case PlatformLinux:
		return runTestsLinux, nil
	case PlatformBSDOrDarwin:
		return runTestsElevated, nil
	case PlatformWindowsCompat:
		return runTestsDirect, nil
	default:
		return nil, fmt.Errorf("raw-socket tests are not supported on this platform")
	}
}

// runTestsLinux grants each built test binary the raw-socket capability,
// then runs the suite as the invoking user. Granting mutates the
// binary's on-disk file capabilities, so each grant is logged before it
// happens. A process already running as root needs no grant.
func runTestsLinux(ctx context.Context, cfg *Config) error {
	if geteuid() != 0 {
		for _, bin := range testBinaries(cfg) {
			fmt.Fprintf(cfg.Stderr, "pktbuild: granting %s to %s\n", capabilityGrant, bin)
			if err := cfg.run(ctx, nil, cfg.Toolchain.Sudo, "setcap", capabilityGrant, bin); err != nil {
				return fmt.Errorf("capability grant for %s: %w", bin, err)
			}
		}
	}
	name, args := testRunner(cfg)
	return cfg.run(ctx, runnerEnv(cfg, false), name, args...)
}

// runTestsElevated runs the whole test runner under the elevation
// utility, with the serial-execution pin and interface hint passed as
// environment assignments on the elevated command line.
func runTestsElevated(ctx context.Context, cfg *Config) error {
	name, args := testRunner(cfg)
	elevated := append(envPairs(runnerEnv(cfg, true)), name)
	elevated = append(elevated, args...)
	return cfg.run(ctx, nil, cfg.Toolchain.Sudo, elevated...)
}

// runTestsDirect runs the test runner with no elevation.
func runTestsDirect(ctx context.Context, cfg *Config) error {
	name, args := testRunner(cfg)
	return cfg.run(ctx, runnerEnv(cfg, true), name, args...)
}
