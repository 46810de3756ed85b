package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionIsPopulated(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should never be empty after init")
	assert.NotEmpty(t, Commit, "Commit should never be empty after init")
}

func TestFull(t *testing.T) {
	full := Full()
	assert.True(t, strings.HasPrefix(full, Version+" "), "Full() = %q", full)
	assert.Contains(t, full, "(commit: "+Commit+")")
}
