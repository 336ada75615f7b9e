package versions

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfoWithValues(t *testing.T) {
	t.Parallel()

	t.Run("release values pass through", func(t *testing.T) {
		t.Parallel()

		info := getVersionInfoWithValues("1.2.3", "abcdef1234567890", "2026-01-15T10:00:00Z")
		assert.Equal(t, "1.2.3", info.Version)
		assert.Equal(t, "abcdef1234567890", info.Commit)
		assert.Equal(t, "2026-01-15 10:00:00 UTC", info.BuildDate)
		assert.Equal(t, runtime.Version(), info.GoVersion)
		assert.Contains(t, info.Platform, runtime.GOOS)
	})

	t.Run("non-timestamp build date is kept as-is", func(t *testing.T) {
		t.Parallel()

		info := getVersionInfoWithValues("1.0.0", "abc", "yesterday")
		assert.Equal(t, "yesterday", info.BuildDate)
	})

	t.Run("dev version is derived from the commit", func(t *testing.T) {
		t.Parallel()

		info := getVersionInfoWithValues("dev", "abcdef1234567890", "2026-01-15T10:00:00Z")
		assert.Equal(t, "build-abcdef12", info.Version)
	})
}
