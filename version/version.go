package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// Name is the product name used in user agents and banners.
const Name = "promptkit"

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the resolved build identity.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
	Release   bool   `json:"release"`
}

var buildInfo = sync.OnceValues(debug.ReadBuildInfo)

// GetVersionInfo resolves Info from the ldflags variables, falling back to
// the embedded VCS settings.
func GetVersionInfo() Info {
	info := Info{
		Name:      Name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := buildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	info.Release = info.Version != "dev" && !info.Dirty
	return info
}

// String renders "1.2.0 (abc1234, dirty)".
func (i Info) String() string {
	var extra []string
	if i.GitCommit != "" {
		extra = append(extra, i.GitCommit)
	}
	if i.Dirty {
		extra = append(extra, "dirty")
	}
	if len(extra) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(extra, ", "))
}

// UserAgent is sent on every outbound provider request.
func UserAgent() string {
	return Name + "/" + Version
}
