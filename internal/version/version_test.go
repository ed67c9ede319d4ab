package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stamp(t *testing.T, version, commit, buildDate string) {
	t.Helper()
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})
	Version, Commit, BuildDate = version, commit, buildDate
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		want   string
	}{
		{"short commit kept whole", "abc", "2.0.0 (abc)"},
		{"seven chars", "1234567", "2.0.0 (1234567)"},
		{"full hash abbreviated", "abc1234567890", "2.0.0 (abc1234)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, "2.0.0", tt.commit, "")
			assert.Equal(t, tt.want, Info())
		})
	}
}

func TestRevision_PrefersStampedCommit(t *testing.T) {
	stamp(t, "1.0.0", "deadbeefcafe", "")
	assert.Equal(t, "deadbeefcafe", Revision())
}

func TestFull(t *testing.T) {
	stamp(t, "1.2.3", "abcdef123456", "2024-01-15T10:00:00Z")

	got := Full()
	assert.Contains(t, got, "countries-api version 1.2.3")
	assert.Contains(t, got, "commit: abcdef123456")
	assert.Contains(t, got, "built: 2024-01-15T10:00:00Z")
	assert.Contains(t, got, "go: "+runtime.Version())
}

func TestFull_UnstampedBuildDate(t *testing.T) {
	stamp(t, "1.2.3", "abcdef123456", "")
	assert.Contains(t, Full(), "built: unknown")
}
