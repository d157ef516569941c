package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcse/deptbot-be/types"
)

func TestCreateChunksShortText(t *testing.T) {
	svc := NewDocumentService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 20})

	chunks := svc.CreateChunks("A short paragraph.", types.Metadata{Source: "notes.txt"})

	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph.", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "notes.txt", chunks[0].Metadata.Source)
}

func TestCreateChunksEmptyText(t *testing.T) {
	svc := NewDocumentService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 20})

	assert.Empty(t, svc.CreateChunks("   \n\t ", types.Metadata{}))
}

func TestCreateChunksSplitsLongText(t *testing.T) {
	svc := NewDocumentService(types.DocumentServiceConfig{MaxChunkSize: 80, OverlapSize: 10})

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("This sentence fills out the paragraph with useful department facts. ")
	}
	text := sb.String()

	chunks := svc.CreateChunks(text, types.Metadata{Source: "handbook.txt"})

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, i, c.Metadata.ChunkIndex)
		assert.LessOrEqual(t, len(c.Content), 80)
		assert.NotEmpty(t, c.Content)
	}
}

func TestCreateChunksPrefersSentenceBoundaries(t *testing.T) {
	svc := NewDocumentService(types.DocumentServiceConfig{MaxChunkSize: 60, OverlapSize: 5})

	chunks := svc.CreateChunks(
		"The first sentence ends here. The second sentence follows it closely. A third one too.",
		types.Metadata{},
	)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0].Content, "."),
		"first chunk should end on a sentence boundary: %q", chunks[0].Content)
}

func TestNewDocumentServiceRejectsBadConfig(t *testing.T) {
	// Overlap larger than the chunk size would loop forever; fall back to defaults.
	svc := NewDocumentService(types.DocumentServiceConfig{MaxChunkSize: 50, OverlapSize: 100})

	assert.Equal(t, DefaultDocumentServiceConfig.OverlapSize, svc.overlapSize)
}

func TestProcessFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "about.txt")
	require.NoError(t, os.WriteFile(path, []byte("The department was founded in 1984."), 0o644))

	svc := NewDocumentService(DefaultDocumentServiceConfig)
	chunks, err := svc.ProcessFile(path, types.UploadRequest{Category: "about", Type: "info"})

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "The department was founded in 1984.", chunks[0].Content)
	assert.Equal(t, "about.txt", chunks[0].Metadata.Source)
	assert.Equal(t, "about", chunks[0].Metadata.Category)
}

func TestProcessFileUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c"), 0o644))

	svc := NewDocumentService(DefaultDocumentServiceConfig)
	_, err := svc.ProcessFile(path, types.UploadRequest{})

	assert.ErrorContains(t, err, "unsupported file type")
}

func TestProcessFileEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	svc := NewDocumentService(DefaultDocumentServiceConfig)
	_, err := svc.ProcessFile(path, types.UploadRequest{})

	assert.Error(t, err)
}
