package pktbuild

import (
	"errors"
	"strings"
	"testing"
)

// stubLookPath makes only the named tools resolvable for the duration
// of a test.
func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	restore := lookPath
	t.Cleanup(func() { lookPath = restore })

	lookPath = func(name string) (string, error) {
		for _, tool := range available {
			if tool == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New(name + " not found in PATH")
	}
}

func TestResolveToolchainAllPresent(t *testing.T) {
	stubLookPath(t, "cargo", "rustc", "rustdoc", "gcc", "sudo")

	tc := ResolveToolchain()
	if !tc.HasCargo {
		t.Error("expected HasCargo with cargo on the path")
	}
	if tc.Cargo != "/usr/bin/cargo" || tc.Rustc != "/usr/bin/rustc" {
		t.Errorf("unexpected paths: cargo=%q rustc=%q", tc.Cargo, tc.Rustc)
	}
	if tc.CC != "/usr/bin/gcc" {
		t.Errorf("expected primary C compiler gcc, got %q", tc.CC)
	}
}

func TestResolveToolchainAbsenceIsNotAnError(t *testing.T) {
	stubLookPath(t) // nothing available

	tc := ResolveToolchain()
	if tc.HasCargo {
		t.Error("HasCargo should be false with no cargo")
	}
	for name, path := range map[string]string{
		"cargo": tc.Cargo, "rustc": tc.Rustc, "rustdoc": tc.Rustdoc,
		"cc": tc.CC, "sudo": tc.Sudo,
	} {
		if path != "" {
			t.Errorf("%s should resolve to empty when absent, got %q", name, path)
		}
	}
}

func TestResolveToolchainCompilerAlternatives(t *testing.T) {
	testCases := []struct {
		name      string
		available []string
		expected  string
	}{
		{"gcc preferred", []string{"gcc", "clang", "cc"}, "/usr/bin/gcc"},
		{"clang fallback", []string{"clang", "cc"}, "/usr/bin/clang"},
		{"cc last resort", []string{"cc"}, "/usr/bin/cc"},
		{"none", nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stubLookPath(t, tc.available...)
			if got := ResolveToolchain().CC; got != tc.expected {
				t.Errorf("CC = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestToolchainDescribe(t *testing.T) {
	stubLookPath(t, "cargo")

	desc := ResolveToolchain().Describe()
	if !strings.Contains(desc, "/usr/bin/cargo") {
		t.Errorf("Describe() missing resolved cargo path:\n%s", desc)
	}
	if !strings.Contains(desc, "(not found)") {
		t.Errorf("Describe() missing absent-tool marker:\n%s", desc)
	}
}
