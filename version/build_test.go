package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBranch, origBuildTime := Version, GitCommit, GitBranch, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		GitBranch = origBranch
		BuildTime = origBuildTime
	}
}

func TestBuildDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""

	info := Build()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
}

func TestBuildWithLinkerValues(t *testing.T) {
	defer saveAndRestore()()
	Version = "v1.0.0"
	BuildTime = "2024-01-15T10:30:00Z"
	GitCommit = "abc1234def5678"
	GitBranch = "main"

	info := Build()
	if info.GitCommit != "abc1234" {
		t.Errorf("expected commit truncated to 'abc1234', got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("expected build year 2024, got %d", info.BuildDate.Year())
	}
	if !info.IsRelease && !info.IsDirty {
		t.Error("v1.0.0 should be a release")
	}
}

func TestBuildDevelopmentVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.1.0.dev1"

	if Build().IsRelease {
		t.Error("development version should not be a release")
	}
}

func TestBuildInvalidBuildTime(t *testing.T) {
	defer saveAndRestore()()
	BuildTime = "yesterday"
	GitCommit = ""

	info := Build()
	if info.BuildDate.Year() == 2024 {
		t.Errorf("unexpected build date %v", info.BuildDate)
	}
}

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		name     string
		info     BuildInfo
		contains []string
		excludes []string
	}{
		{
			name:     "bare",
			info:     BuildInfo{Version: "dev"},
			contains: []string{"pontos dev"},
			excludes: []string{"("},
		},
		{
			name:     "main branch hidden",
			info:     BuildInfo{Version: "1.0.0", GitCommit: "abc1234", GitBranch: "main", GoVersion: "go1.25.0"},
			contains: []string{"pontos 1.0.0 (abc1234, go1.25.0)"},
			excludes: []string{"main"},
		},
		{
			name:     "feature branch shown",
			info:     BuildInfo{Version: "1.0.0", GitCommit: "abc1234", GitBranch: "feature/new-thing"},
			contains: []string{"feature/new-thing"},
		},
		{
			name:     "dirty",
			info:     BuildInfo{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true},
			contains: []string{"abc1234-dirty"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.info.String()
			for _, want := range tt.contains {
				if !strings.Contains(s, want) {
					t.Errorf("expected %q to contain %q", s, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(s, unwanted) {
					t.Errorf("expected %q not to contain %q", s, unwanted)
				}
			}
		})
	}
}
