package pktbuild

import "context"

// toolSteps is the two-variant strategy every operation shares: a cargo
// invocation when the package-build tool is present, a direct-tool
// fallback when it is not. The choice is made once per invocation and
// the two paths are mutually exclusive.
type toolSteps struct {
	// cargo runs the package-tool form of the operation.
	cargo func(ctx context.Context, cfg *Config) error

	// fallback runs the direct-tool form. A nil fallback makes the
	// operation a no-op without cargo.
	fallback func(ctx context.Context, cfg *Config) error
}

func (s toolSteps) run(ctx context.Context, cfg *Config) error {
	if cfg.Toolchain.HasCargo {
		return s.cargo(ctx, cfg)
	}
	if s.fallback == nil {
		return nil
	}
	return s.fallback(ctx, cfg)
}
