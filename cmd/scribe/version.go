package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show scribe version information",
		Args:  cobra.NoArgs,
		// The configuration is not needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, commit, date := Version, Commit, BuildDate
			if info, ok := debug.ReadBuildInfo(); ok {
				if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
					version = info.Main.Version
				}
				for _, s := range info.Settings {
					switch s.Key {
					case "vcs.revision":
						if commit == "none" {
							commit = s.Value
						}
					case "vcs.time":
						if date == "unknown" {
							date = s.Value
						}
					}
				}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "scribe %s (commit %s, built %s)\n", version, commit, date)
			return err
		},
	}
}
