package buildinfo

import (
	"runtime/debug"
	"testing"
)

func restore(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name                 string
		version              string
		main                 string
		wantVersion, wantRev string
	}{
		{"module version fills dev", "dev", "v0.3.1", "v0.3.1", "abc123"},
		{"devel keeps dev", "dev", "(devel)", "dev", "abc123"},
		{"ldflags win", "v1.0.0", "v0.3.1", "v1.0.0", "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)
			Version, Commit, Date = tt.version, "none", "unknown"

			fromBuildInfo(&debug.BuildInfo{
				Main: debug.Module{Version: tt.main},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
				},
			})

			if Version != tt.wantVersion || Commit != tt.wantRev || Date != "2026-01-02T03:04:05Z" {
				t.Errorf("got %s %s %s", Version, Commit, Date)
			}
		})
	}
}

func TestStampedCommitKept(t *testing.T) {
	restore(t)
	Commit = "deadbeef"
	fromBuildInfo(&debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}})
	if Commit != "deadbeef" {
		t.Errorf("Commit = %s, want the stamped value", Commit)
	}
}
