package main

import (
	"runtime/debug"
	"testing"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{
			name:    "release tag returned as-is",
			version: "v1.2.3",
			commit:  "0123456789abcdef",
			want:    "v1.2.3",
		},
		{
			name:    "dev with commit uses short sha",
			version: "dev",
			commit:  "0123456789abcdef",
			want:    "dev-0123456",
		},
		{
			name:    "dev with unknown commit",
			version: "dev",
			commit:  "unknown",
			want:    "dev",
		},
		{
			name:    "empty version falls back to dev",
			version: "",
			commit:  "abcdef1",
			want:    "dev-abcdef1",
		},
		{
			name:    "short commit kept whole",
			version: " dev ",
			commit:  "abc",
			want:    "dev-abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatVersion(tt.version, tt.commit)
			if got != tt.want {
				t.Fatalf("formatVersion(%q, %q) = %q, want %q", tt.version, tt.commit, got, tt.want)
			}
		})
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "fedcba9876543210"}},
	}

	tests := []struct {
		name        string
		version     string
		commit      string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name:        "ldflags values win",
			version:     "v1.0.0",
			commit:      "1111111",
			info:        info,
			wantVersion: "v1.0.0",
			wantCommit:  "1111111",
		},
		{
			name:        "module version and revision fill defaults",
			version:     "dev",
			commit:      "unknown",
			info:        info,
			wantVersion: "v0.4.0",
			wantCommit:  "fedcba9876543210",
		},
		{
			name:        "devel build keeps dev",
			version:     "dev",
			commit:      "unknown",
			info:        &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev",
			wantCommit:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := fillFromBuildInfo(tt.version, tt.commit, tt.info)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Fatalf("fillFromBuildInfo() = (%q, %q), want (%q, %q)", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}
