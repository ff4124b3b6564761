package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	assert.Contains(t, GetVersionInfo(), "voicejournal dev")

	old := Version
	Version, Commit, Date = "1.2.0", "abc123", "2026-05-01"
	t.Cleanup(func() { Version, Commit, Date = old, "none", "unknown" })

	assert.Equal(t, "1.2.0", GetVersion())
	assert.Equal(t, "voicejournal 1.2.0 (commit: abc123, built: 2026-05-01, "+runtimeTarget()+")", GetVersionInfo())
	assert.Equal(t, "voicejournal/1.2.0", UserAgent())
}

func runtimeTarget() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
