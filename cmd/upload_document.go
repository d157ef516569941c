package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/service"
	"github.com/askcse/deptbot-be/types"
)

// uploadDocumentCmd ingests a single file into the knowledge base.
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Ingest a single document into the knowledge base",
	Long: `Chunks the given file, embeds the chunks and inserts them into
the vector index. Supports .txt, .md and .pdf files.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		category, _ := cmd.Flags().GetString("category")
		docType, _ := cmd.Flags().GetString("type")
		if filePath == "" {
			log.Fatal("--file is required")
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStore)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		embedder := service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		docService := service.NewDocumentService(types.DocumentServiceConfig{
			MaxChunkSize: cfg.Chunking.MaxChunkSize,
			OverlapSize:  cfg.Chunking.OverlapSize,
		})
		uploadDir := cfg.UploadDir
		if uploadDir == "" {
			uploadDir = "uploads"
		}
		fileService := service.NewFileService(uploadDir, weaviateDb, embedder, docService)

		req := types.UploadRequest{
			Category: category,
			Type:     docType,
		}
		statusChan := make(chan types.ProcessingDocumentStatus)
		go func() {
			for status := range statusChan {
				log.Printf("[%s] %s", status.Status, status.Message)
			}
		}()
		if err := fileService.IngestFile(context.Background(), filePath, req, statusChan); err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}
		close(statusChan)
		log.Println("Document ingested")
	},
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)
	uploadDocumentCmd.Flags().StringP("file", "f", "", "path to the document")
	uploadDocumentCmd.Flags().String("category", "", "document category (e.g. faculty, courses)")
	uploadDocumentCmd.Flags().String("type", "", "document type")
	uploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
