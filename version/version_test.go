package version

import "testing"

func withVars(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, GitCommit, BuildTime = version, commit, buildTime
}

func TestGetVersionInfoDefaults(t *testing.T) {
	withVars(t, "dev", "", "")

	info := GetVersionInfo()
	if info.Name != Name || info.Version != "dev" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Release {
		t.Error("dev should not be a release")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should be set")
	}
}

func TestGetVersionInfoFromLdflags(t *testing.T) {
	withVars(t, "1.2.0", "abc1234def", "2025-01-15T10:30:00Z")

	info := GetVersionInfo()
	if info.GitCommit != "abc1234" {
		t.Errorf("commit should be shortened, got %q", info.GitCommit)
	}
	if info.BuildTime != "2025-01-15T10:30:00Z" {
		t.Errorf("build time = %q", info.BuildTime)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.2.0", GitCommit: "abc1234"}, "1.2.0 (abc1234)"},
		{Info{Version: "1.2.0", GitCommit: "abc1234", Dirty: true}, "1.2.0 (abc1234, dirty)"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	withVars(t, "1.2.0", "", "")
	if got := UserAgent(); got != "promptkit/1.2.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
