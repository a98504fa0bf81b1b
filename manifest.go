package pktbuild

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// manifest is the subset of Cargo.toml the orchestrator cares about:
// the crate name (doc generation, artifact naming, benchmark linking)
// and an optional non-default library entry path for the
// direct-compiler fallback.
type manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		Path string `toml:"path"`
	} `toml:"lib"`
}

// readManifest reads <projectDir>/Cargo.toml and returns the crate name
// and entry source path it declares. A missing manifest is fine - both
// values come back empty and the caller keeps its defaults. A manifest
// that exists but does not parse is a user error and is reported.
func readManifest(projectDir string) (name, entry string, err error) {
	data, err := os.ReadFile(filepath.Join(projectDir, "Cargo.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("read Cargo.toml: %w", err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", "", fmt.Errorf("parse Cargo.toml: %w", err)
	}
	return m.Package.Name, filepath.FromSlash(m.Lib.Path), nil
}
