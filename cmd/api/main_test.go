package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRIVIA_TEST_PAGE_SIZE=7\n"), 0o600))
	t.Setenv("TRIVIA_TEST_PAGE_SIZE", "")
	require.NoError(t, os.Unsetenv("TRIVIA_TEST_PAGE_SIZE"))

	var buf bytes.Buffer
	ok := loadEnvFile(zerolog.New(&buf), path)

	assert.True(t, ok)
	assert.Equal(t, "7", os.Getenv("TRIVIA_TEST_PAGE_SIZE"))
	assert.Contains(t, buf.String(), "env file loaded")
}

func TestLoadEnvFileMissingIsWarned(t *testing.T) {
	var buf bytes.Buffer

	ok := loadEnvFile(zerolog.New(&buf), filepath.Join(t.TempDir(), "missing.env"))

	assert.False(t, ok)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "using process environment")
}
