// Package pktbuild orchestrates building and testing a packet-capture
// library whose test suite needs raw network-interface access.
//
// Raw-socket tests cannot simply be run with "cargo test": opening a raw
// socket requires elevated OS privileges, and the right way to obtain
// those privileges differs per platform. This package owns that decision
// logic and nothing else - compilation, linking and packet capture are
// delegated to external tools.
//
// # What it decides
//
// The orchestrator makes three decisions at startup:
//   - which toolchain is available: the full package-build tool (cargo)
//     when present, otherwise direct compiler invocation (rustc)
//   - which network interface the raw-socket tests should exercise,
//     found by a best-effort scan of host network status
//   - which privilege model applies: a targeted capability grant on
//     Linux, full elevation of the test runner on BSD/Darwin, direct
//     execution under a Windows compatibility layer
//
// # Basic Usage
//
// Load the host configuration once and dispatch a verb:
//
//	cfg, err := pktbuild.Load(".")
//	if err != nil {
//	    return err
//	}
//	err = pktbuild.Dispatch(ctx, cfg, "test")
//
// Recognized verbs are "test", "doc", "clean" and "benchmarks"; anything
// else (including no verb at all) means "build".
//
// # Architecture
//
// Dispatch routes a verb to one of six operations:
//
//	Dispatch
//	├── BuildOp          (default)
//	├── DocsOp           ("doc")
//	├── TestArtifactOp   (internal step of "test")
//	├── TestsOp          ("test")
//	├── CleanOp          ("clean")
//	└── BenchOp          ("benchmarks")
//
// Every operation picks between a cargo path and a direct-tool fallback
// based on the resolved Toolchain. TestsOp additionally selects a
// privilege strategy keyed on the host Platform.
//
// # Environment
//
// PKTBUILD_VERBOSE=1 widens all generated invocations with diagnostic
// flags and echoes each command before it runs. PKTBUILD_TEST_IFACE, when
// set by the caller, overrides interface discovery and is exported into
// the test-runner environment unchanged.
//
// # Platform Support
//
// Tests run on Linux, FreeBSD, macOS and Windows compatibility layers
// (MinGW/MSYS2). Build, doc, clean and benchmark operations are
// platform-agnostic.
package pktbuild
