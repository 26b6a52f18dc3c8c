package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "newer major", a: "2.0.0", b: "1.0.0", expected: 1},
		{name: "older minor", a: "1.1.0", b: "1.2.0", expected: -1},
		{name: "equal", a: "1.0.0", b: "1.0.0", expected: 0},
		{name: "v prefix", a: "v1.0.1", b: "1.0.0", expected: 1},
		{name: "release above prerelease", a: "1.0.0", b: "1.0.0-beta", expected: 1},
		{name: "short form", a: "2.1", b: "2.0.3", expected: 1},
		{name: "semver above invalid", a: "0.0.1", b: "latest", expected: 1},
		{name: "invalid below semver", a: "latest", b: "0.0.1", expected: -1},
		{name: "both invalid", a: "foo", b: "bar", expected: 0},
		{name: "empty", a: "", b: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Compare(tt.a, tt.b))
		})
	}
}

func TestIsNewerVersion(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNewerVersion("1.2.0", "1.1.9"))
	assert.False(t, IsNewerVersion("1.1.9", "1.2.0"))
	assert.False(t, IsNewerVersion("1.0.0", "1.0.0"))
	assert.True(t, IsNewerVersion("1.0.0", "snapshot"))
}
