package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	oldTime, oldCommit := BuildTime, GitCommit
	defer func() { BuildTime, GitCommit = oldTime, oldCommit }()

	t.Run("未注入构建信息", func(t *testing.T) {
		BuildTime, GitCommit = "unknown", "unknown"
		out := GetFullVersion()
		assert.Contains(t, out, "ecc "+Version)
		assert.NotContains(t, out, "构建时间")
		assert.Contains(t, out, GoOS+"/"+GoArch)
	})

	t.Run("注入构建信息", func(t *testing.T) {
		BuildTime, GitCommit = "2026-01-02T03:04:05Z", "abc1234"
		out := GetFullVersion()
		assert.Contains(t, out, "(abc1234)")
		assert.Contains(t, out, "2026-01-02 03:04:05 UTC")
	})

	t.Run("非RFC3339时间原样输出", func(t *testing.T) {
		BuildTime = "yesterday"
		assert.Contains(t, GetFullVersion(), "构建时间: yesterday")
	})
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.Equal(t, GetVersion(), info.Version)
	assert.Equal(t, GoVersion, info.GoVersion)
}
