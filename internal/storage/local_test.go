package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "damage-claims", "jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
	assert.Contains(t, ref, "damage-claims/")

	data, err := os.ReadFile(filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestLocalStoreSaveUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref1, err := store.Save(context.Background(), "voice-notes", ".mp3", strings.NewReader("a"))
	require.NoError(t, err)
	ref2, err := store.Save(context.Background(), "voice-notes", ".mp3", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "http://api.example.com/uploads/damage-claims/a.jpg",
		PublicURL("http", "api.example.com", "/uploads/damage-claims/a.jpg"))

	// Absolute S3 references pass through.
	s3 := "https://bucket.s3.ap-south-1.amazonaws.com/damage-claims/a.jpg"
	assert.Equal(t, s3, PublicURL("http", "api.example.com", s3))
}
