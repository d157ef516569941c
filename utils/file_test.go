package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimestampedFilename(t *testing.T) {
	name := TimestampedFilename("dept handbook (2026).pdf")

	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")
	assert.True(t, strings.HasPrefix(name, "dept_handbook"))
}

func TestTimestampedFilenameStripsPath(t *testing.T) {
	name := TimestampedFilename("../../etc/passwd.txt")

	assert.False(t, strings.Contains(name, "/"))
	assert.True(t, strings.HasPrefix(name, "passwd"))
}

func TestFileNameWithoutExt(t *testing.T) {
	assert.Equal(t, "notes", FileNameWithoutExt("/tmp/uploads/notes.txt"))
	assert.Equal(t, "archive.tar", FileNameWithoutExt("archive.tar.gz"))
	assert.Equal(t, "plain", FileNameWithoutExt("plain"))
}
