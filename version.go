package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.buildVersion=... -X main.buildCommit=...".
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func versionString() string {
	version, commit := buildVersion, buildCommit
	if info, ok := debug.ReadBuildInfo(); ok {
		version, commit = fillFromBuildInfo(version, commit, info)
	}
	return formatVersion(version, commit)
}

// fillFromBuildInfo uses the module version and VCS revision recorded by the
// go tool when the ldflags values were not set.
func fillFromBuildInfo(version, commit string, info *debug.BuildInfo) (string, string) {
	if (version == "" || version == "dev") && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	if commit == "" || commit == "unknown" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				commit = s.Value
			}
		}
	}
	return version, commit
}

func formatVersion(version, commit string) string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	if v != "dev" {
		return v
	}

	if c := shortCommit(commit); c != "" {
		return "dev-" + c
	}
	return "dev"
}

func shortCommit(commit string) string {
	c := strings.TrimSpace(commit)
	if c == "" || c == "unknown" {
		return ""
	}
	return c[:min(len(c), 7)]
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sqltojpa version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sqltojpa %s\n", versionString())
		},
	}
}
