package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GitBranch string    `json:"git_branch"`
	BuildDate time.Time `json:"build_date"`
	GoVersion string    `json:"go_version"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Build returns the build information, filling gaps from the module's
// embedded VCS settings.
func Build() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
						info.BuildDate = t
					}
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}

	info.IsRelease = !info.IsDirty && PEP440Compliant(Strip(info.Version)) && !CheckDevelop(Strip(info.Version))
	return info
}

// String returns "pontos <version> (<commit>[-dirty], built <date>, <go>)".
func (b BuildInfo) String() string {
	var details []string
	if b.GitCommit != "" {
		commit := b.GitCommit
		if b.IsDirty {
			commit += "-dirty"
		}
		details = append(details, commit)
	}
	if b.GitBranch != "" && b.GitBranch != "main" && b.GitBranch != "master" {
		details = append(details, b.GitBranch)
	}
	if !b.BuildDate.IsZero() {
		details = append(details, "built "+b.BuildDate.UTC().Format(time.RFC3339))
	}
	if b.GoVersion != "" {
		details = append(details, b.GoVersion)
	}
	if len(details) == 0 {
		return "pontos " + b.Version
	}
	return fmt.Sprintf("pontos %s (%s)", b.Version, strings.Join(details, ", "))
}
