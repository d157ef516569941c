package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/types"
	"github.com/askcse/deptbot-be/utils"
)

// FileService handles document uploads: store the file, chunk it, embed the
// chunks and batch-insert them into the vector index.
type FileService struct {
	uploadDir  string
	index      database.VectorIndex
	embedder   Embedder
	docService *DocumentService
}

func NewFileService(
	uploadDir string,
	index database.VectorIndex,
	embedder Embedder,
	docService *DocumentService,
) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir:  uploadDir,
		index:      index,
		embedder:   embedder,
		docService: docService,
	}
}

// UploadFile ingests one uploaded file, reporting progress on c. The caller
// owns the channel and should drain it.
func (s *FileService) UploadFile(ctx context.Context, req types.UploadRequest, file *multipart.FileHeader, c chan<- types.ProcessingDocumentStatus) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".txt" && ext != ".md" {
		return fmt.Errorf("unsupported file type: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	destPath := filepath.Join(s.uploadDir, utils.TimestampedFilename(file.Filename))
	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err = io.Copy(dst, src); err != nil {
		return err
	}

	return s.IngestFile(ctx, destPath, req, c)
}

// IngestFile chunks, embeds and indexes a file already on disk. Status
// updates are optional (c may be nil).
func (s *FileService) IngestFile(ctx context.Context, filePath string, req types.UploadRequest, c chan<- types.ProcessingDocumentStatus) error {
	chunks, err := s.docService.ProcessFile(filePath, req)
	if err != nil {
		return err
	}

	total := len(chunks)
	sendStatus(c, types.ProcessingDocumentStatus{
		Status:      "processing",
		Message:     fmt.Sprintf("Chunked %s into %d passages", filepath.Base(filePath), total),
		TotalChunks: total,
	})

	texts := make([]string, total)
	docs := make([]types.Document, total)
	now := time.Now().Unix()
	for i, chunk := range chunks {
		texts[i] = chunk.Content
		docs[i] = types.Document{
			Content:   chunk.Content,
			Metadata:  chunk.Metadata,
			CreatedAt: now,
		}
	}

	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	sendStatus(c, types.ProcessingDocumentStatus{
		Status:          "processing",
		Message:         "Embedded passages",
		Progress:        0.5,
		TotalChunks:     total,
		ProcessedChunks: total,
	})

	if err := s.index.BatchUpsert(ctx, docs, embeddings); err != nil {
		return fmt.Errorf("indexing chunks: %w", err)
	}
	sendStatus(c, types.ProcessingDocumentStatus{
		Status:          "completed",
		Message:         "Done processing document",
		Progress:        1,
		TotalChunks:     total,
		ProcessedChunks: total,
	})
	return nil
}

func sendStatus(c chan<- types.ProcessingDocumentStatus, status types.ProcessingDocumentStatus) {
	if c == nil {
		return
	}
	c <- status
}
