package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorageWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir, "share://")
	require.NoError(t, err)

	uri, err := s.Write(context.Background(), "abc.pdf", []byte("%PDF-1.7"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "share://abc.pdf", uri)

	data, err := os.ReadFile(filepath.Join(dir, "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestDiskStorageCreatesPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "share")
	_, err := NewDiskStorage(dir, "share://")
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiskStorageMissingPath(t *testing.T) {
	_, err := NewDiskStorage("", "share://")
	assert.Error(t, err)
}
