package service

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/askcse/deptbot-be/types"
)

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1024,
	OverlapSize:  128,
}

// DocumentService splits source files into overlapping chunks suitable for
// embedding. Plain text and markdown are read directly; PDFs go through
// pdftotext.
type DocumentService struct {
	maxChunkSize int
	overlapSize  int
}

func NewDocumentService(config types.DocumentServiceConfig) *DocumentService {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = DefaultDocumentServiceConfig.MaxChunkSize
	}
	if config.OverlapSize < 0 || config.OverlapSize >= config.MaxChunkSize {
		config.OverlapSize = DefaultDocumentServiceConfig.OverlapSize
	}
	return &DocumentService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
	}
}

// ProcessFile extracts text from the file and returns its chunks with
// metadata filled in from the upload request.
func (s *DocumentService) ProcessFile(filePath string, req types.UploadRequest) ([]types.DocumentChunk, error) {
	text, err := extractText(filePath)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("no text content in %s", filePath)
	}

	source := req.Source
	if source == "" {
		source = filepath.Base(filePath)
	}
	metadata := types.Metadata{
		Source:     source,
		Category:   req.Category,
		Type:       req.Type,
		UploadedAt: time.Now().Unix(),
	}
	return s.CreateChunks(text, metadata), nil
}

func extractText(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".txt", ".md":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	case ".pdf":
		return extractPDFText(filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
	}
}

// extractPDFText shells out to pdftotext, writing to stdout.
func extractPDFText(filePath string) (string, error) {
	var out bytes.Buffer
	cmd := exec.Command("pdftotext", "-layout", filePath, "-")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return out.String(), nil
}

// CreateChunks splits text into overlapping chunks, preferring sentence
// boundaries and falling back to word boundaries.
func (s *DocumentService) CreateChunks(text string, metadata types.Metadata) []types.DocumentChunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []types.DocumentChunk
	appendChunk := func(content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		m := metadata
		m.ChunkIndex = len(chunks)
		chunks = append(chunks, types.DocumentChunk{
			Content:  content,
			Index:    m.ChunkIndex,
			Metadata: m,
		})
	}

	if len(text) <= s.maxChunkSize {
		appendChunk(text)
		return chunks
	}

	currentPos := 0
	for currentPos < len(text) {
		chunkEnd := currentPos + s.maxChunkSize
		if chunkEnd >= len(text) {
			appendChunk(text[currentPos:])
			break
		}

		// Prefer the nearest sentence end inside the window.
		splitAt := chunkEnd
		for i := chunkEnd; i > currentPos; i-- {
			if text[i] == '.' || text[i] == '?' || text[i] == '!' {
				splitAt = i + 1
				break
			}
		}
		// Fall back to a word boundary.
		if splitAt == chunkEnd {
			for i := chunkEnd; i > currentPos; i-- {
				if text[i] == ' ' {
					splitAt = i
					break
				}
			}
		}

		appendChunk(text[currentPos:splitAt])

		next := splitAt - s.overlapSize
		if next <= currentPos {
			next = splitAt
		}
		currentPos = next
	}
	return chunks
}
