package cli

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
}

func TestResolvedVersion(t *testing.T) {
	tests := []struct {
		name     string
		injected string
		info     *debug.BuildInfo
		want     string
	}{
		{
			name:     "ldflags value wins",
			injected: " v1.2.3 ",
			info:     &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}},
			want:     "v1.2.3",
		},
		{
			name:     "module version from go install",
			injected: devVersion,
			info:     &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}},
			want:     "v0.4.0",
		},
		{
			name: "dirty vcs revision",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "0123456789ab-dirty",
		},
		{
			name: "clean short revision",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			want: "abc123",
		},
		{
			name: "devel build without vcs",
			info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: devVersion,
		},
		{
			name: "no build info",
			want: devVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.info)
			if got := resolvedVersion(tt.injected); got != tt.want {
				t.Fatalf("resolvedVersion(%q) = %q, want %q", tt.injected, got, tt.want)
			}
		})
	}
}

func TestVersionLineNamesProgram(t *testing.T) {
	stubBuildInfo(t, nil)

	if got := versionLine("v1.0.0"); got != "citydiscovery v1.0.0" {
		t.Fatalf("expected program name prefix, got %q", got)
	}
}
