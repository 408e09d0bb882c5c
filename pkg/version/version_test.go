package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_ShortensCommit(t *testing.T) {
	origCommit := Commit
	defer func() { Commit = origCommit }()

	Commit = "abcdef1234567890"
	info := Info()
	assert.Contains(t, info, "abcdef1")
	assert.NotContains(t, info, "abcdef12")
}

func TestShort(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestIsDevBuild(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "dev"
	assert.True(t, IsDevBuild())

	Version = "v1.2.3"
	assert.False(t, IsDevBuild())
}
