package pktbuild

import (
	"regexp"
	"strings"

	"github.com/magefile/mage/sh"
)

// Interface discovery is explicitly best-effort: the result is only a
// hint for raw-socket test setup, an empty name is a valid outcome and
// nothing here may abort the run. The parsing is a heuristic over
// ifconfig/ip output; the contract (first active non-loopback interface,
// empty on failure, never fatal) matters more than the exact scan.

// ifaceHeading matches an interface block heading: "en0: flags=..." from
// ifconfig, or "2: eth0: <...>" from ip address.
var ifaceHeading = regexp.MustCompile(`^(?:\d+:\s+)?([A-Za-z][A-Za-z0-9._-]*)[:@]`)

// netstatOutput is swapped out in tests.
var netstatOutput = func() (string, error) {
	if out, err := sh.Output("ifconfig"); err == nil {
		return out, nil
	}
	return sh.Output("ip", "address")
}

// DetectInterface queries host network status and returns the first
// active non-loopback interface name, or "" when none can be found.
func DetectInterface() string {
	out, err := netstatOutput()
	if err != nil {
		return ""
	}
	return ParseInterface(out)
}

// ParseInterface scans network-status output for the first interface
// block reporting an up/active state. Loopback interfaces are skipped.
// Multiple active interfaces: first match wins.
func ParseInterface(output string) string {
	current := ""
	for _, line := range strings.Split(output, "\n") {
		if m := ifaceHeading.FindStringSubmatch(line); m != nil {
			current = m[1]
			if strings.HasPrefix(current, "lo") {
				current = ""
			}
		}
		if current != "" && indicatesUp(line) {
			return current
		}
	}
	return ""
}

// indicatesUp reports whether a status line marks its interface block as
// up or active. It understands the three formats in the wild: BSD/Darwin
// "status: active" lines, ifconfig flag groups like
// "flags=4163<UP,BROADCAST,RUNNING,MULTICAST>", and ip's "state UP".
func indicatesUp(line string) bool {
	if strings.Contains(line, "status: active") {
		return true
	}
	if strings.Contains(line, "state UP") {
		return true
	}
	open := strings.IndexByte(line, '<')
	end := strings.IndexByte(line, '>')
	if open >= 0 && end > open {
		for _, flag := range strings.Split(line[open+1:end], ",") {
			if flag == "UP" || flag == "RUNNING" {
				return true
			}
		}
	}
	return false
}
