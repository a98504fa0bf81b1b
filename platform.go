package pktbuild

import (
	"runtime"
	"strings"

	"github.com/magefile/mage/sh"
)

// Platform is the closed set of OS families the orchestrator treats
// distinctly for privilege purposes.
type Platform int

const (
	// PlatformUnsupported means no privilege strategy is defined for the
	// host. It is fatal only for the test operation; build, doc, clean
	// and benchmark operations ignore the classification.
	PlatformUnsupported Platform = iota

	// PlatformLinux grants the test binary a targeted capability so the
	// process, not the user, is elevated.
	PlatformLinux

	// PlatformBSDOrDarwin elevates the whole test runner; neither
	// platform exposes a per-binary capability grant from this context.
	PlatformBSDOrDarwin

	// PlatformWindowsCompat (MinGW/MSYS2) is assumed to already run with
	// sufficient access for raw sockets.
	PlatformWindowsCompat
)

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "Linux"
	case PlatformBSDOrDarwin:
		return "BSD/Darwin"
	case PlatformWindowsCompat:
		return "Windows compatibility layer"
	default:
		return "unsupported"
	}
}

// ClassifyPlatform maps a reported OS name (uname -s output) to a
// Platform. Matching is exact for Linux, FreeBSD and Darwin and by
// prefix for the MinGW/MSYS compatibility layers, whose names embed
// version noise (e.g. "MINGW64_NT-10.0-19045").
func ClassifyPlatform(osName string) Platform {
	switch osName {
	case "Linux":
		return PlatformLinux
	case "FreeBSD", "Darwin":
		return PlatformBSDOrDarwin
	}
	if strings.HasPrefix(osName, "MINGW") || strings.HasPrefix(osName, "MSYS") {
		return PlatformWindowsCompat
	}
	return PlatformUnsupported
}

// classifyGOOS is the fallback used when uname is unavailable (native
// Windows, minimal containers).
func classifyGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "freebsd", "darwin":
		return PlatformBSDOrDarwin
	case "windows":
		return PlatformWindowsCompat
	default:
		return PlatformUnsupported
	}
}

// unameOutput is swapped out in tests.
var unameOutput = func() (string, error) {
	return sh.Output("uname", "-s")
}

// DetectPlatform classifies the host once, at startup. It prefers the
// kernel's own name so compatibility layers (which report MINGW*/MSYS*
// while GOOS says windows-or-linux depending on the toolchain) are
// recognized, and falls back to the Go runtime's view.
func DetectPlatform() Platform {
	if out, err := unameOutput(); err == nil {
		if name := strings.TrimSpace(out); name != "" {
			return ClassifyPlatform(name)
		}
	}
	return classifyGOOS(runtime.GOOS)
}
