package main

import (
	"github.com/spf13/cobra"

	"github.com/contriboss/pktbuild"
)

// loadConfig is overridden in tests.
var loadConfig = pktbuild.Load

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pktbuild [verb]",
		Short: "Build/test orchestrator for raw-socket packet libraries",
		Long: `pktbuild builds, documents, benchmarks and tests a packet-capture
library whose test suite needs raw network-interface access.

It discovers the available toolchain (cargo, or rustc as a fallback),
a usable network interface, and the host platform's privilege model,
then runs the requested operation with external tools. Any verb other
than the ones listed below means "build".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verb := ""
			if len(args) > 0 {
				verb = args[0]
			}
			return dispatchVerb(cmd, verb)
		},
	}

	verbs := []struct {
		use, short string
	}{
		{"build", "Compile the library in release mode (the default)"},
		{"test", "Build the test artifact and run the suite with raw-socket privileges"},
		{"doc", "Generate API documentation"},
		{"clean", "Remove build output"},
		{"benchmarks", "Compile benchmark binaries"},
	}
	for _, v := range verbs {
		verb := v.use
		root.AddCommand(&cobra.Command{
			Use:   verb,
			Short: v.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatchVerb(cmd, verb)
			},
		})
	}
	return root
}

func dispatchVerb(cmd *cobra.Command, verb string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()
	return pktbuild.Dispatch(cmd.Context(), cfg, verb)
}
