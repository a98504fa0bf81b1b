package pktbuild

import (
	"fmt"
	"os/exec"
	"strings"
)

// Toolchain records which external tools were found on the host.
//
// Absence is a normal, expected state - no tool is required at resolve
// time. Every operation branches on HasCargo exactly once to pick
// between the package-tool path and the direct-tool fallback; the two
// paths are mutually exclusive per invocation.
//
// # Resolved tools
//
//   - Cargo: package-build tool (build/test/doc/clean front-end)
//   - Rustc: direct compiler, the fallback when cargo is absent
//   - Rustdoc: documentation generator for the fallback doc path
//   - CC: C compiler for native benchmark binaries (gcc, clang or cc)
//   - Sudo: privilege-elevation utility for raw-socket test setup
type Toolchain struct {
	Cargo   string // absolute path, or "" when absent
	Rustc   string
	Rustdoc string
	CC      string
	Sudo    string

	// HasCargo is derived from Cargo at resolve time; consumers branch
	// on it rather than re-checking the path.
	HasCargo bool
}

// ToolRequirement describes one external tool the orchestrator looks
// for, with optional alternative binary names that satisfy it.
type ToolRequirement struct {
	// Name is the primary binary name (e.g. "cargo", "gcc").
	Name string

	// Alternatives are tried in order when Name is not on the path.
	// Example: []string{"clang", "cc"} for the C compiler.
	Alternatives []string

	// Purpose is a human-readable description used in diagnostics.
	Purpose string
}

// requiredTools lists everything the orchestrator may invoke. The order
// matches the Toolchain fields.
func requiredTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: "cargo", Purpose: "package-build tool"},
		{Name: "rustc", Purpose: "direct compiler fallback"},
		{Name: "rustdoc", Purpose: "documentation generator"},
		{Name: "gcc", Alternatives: []string{"clang", "cc"}, Purpose: "C compiler for native benchmarks"},
		{Name: "sudo", Purpose: "privilege elevation for raw-socket tests"},
	}
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// findTool locates a tool by its primary name or any alternative,
// returning the absolute path or "" when nothing matches.
func findTool(req ToolRequirement) string {
	if path, err := lookPath(req.Name); err == nil {
		return path
	}
	for _, alt := range req.Alternatives {
		if path, err := lookPath(alt); err == nil {
			return path
		}
	}
	return ""
}

// ResolveToolchain locates every external tool once, at startup. A
// missing tool is recorded as an empty path, never an error; the
// operations decide at use time whether they can proceed without it.
func ResolveToolchain() Toolchain {
	reqs := requiredTools()
	tc := Toolchain{
		Cargo:   findTool(reqs[0]),
		Rustc:   findTool(reqs[1]),
		Rustdoc: findTool(reqs[2]),
		CC:      findTool(reqs[3]),
		Sudo:    findTool(reqs[4]),
	}
	tc.HasCargo = tc.Cargo != ""
	return tc
}

// Describe reports the resolution outcome, one line per tool, for
// verbose diagnostics.
func (t Toolchain) Describe() string {
	paths := []string{t.Cargo, t.Rustc, t.Rustdoc, t.CC, t.Sudo}
	var b strings.Builder
	for i, req := range requiredTools() {
		path := paths[i]
		if path == "" {
			path = "(not found)"
		}
		fmt.Fprintf(&b, "%-8s %s  [%s]\n", req.Name, path, req.Purpose)
	}
	return b.String()
}
