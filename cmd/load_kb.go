package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/service"
	"github.com/askcse/deptbot-be/types"
)

// kbEntry is one passage in a knowledge-base JSON file.
type kbEntry struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

// loadKBCmd bulk-loads a JSON knowledge base into the vector index.
var loadKBCmd = &cobra.Command{
	Use:   "load-kb",
	Short: "Bulk-load a JSON knowledge base",
	Long: `Reads a JSON array of passages ({"text", "source", "category",
"type"}), embeds them in batch and inserts them into the vector index.
Pass --reinit to clear the index first.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		reinit, _ := cmd.Flags().GetBool("reinit")
		if filePath == "" {
			log.Fatal("--file is required")
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read knowledge base file: %v", err)
		}
		var entries []kbEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			log.Fatalf("Failed to parse knowledge base file: %v", err)
		}
		if len(entries) == 0 {
			log.Fatal("Knowledge base file contains no entries")
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStore)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		ctx := context.Background()
		if reinit {
			if err := weaviateDb.Clear(ctx); err != nil {
				log.Fatalf("Failed to clear index: %v", err)
			}
		}

		embedder := service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)

		now := time.Now().Unix()
		texts := make([]string, len(entries))
		docs := make([]types.Document, len(entries))
		for i, entry := range entries {
			texts[i] = entry.Text
			docs[i] = types.Document{
				Content: entry.Text,
				Metadata: types.Metadata{
					Source:     entry.Source,
					Category:   entry.Category,
					Type:       entry.Type,
					ChunkIndex: i,
					UploadedAt: now,
				},
				CreatedAt: now,
			}
		}

		embeddings, err := embedder.Embed(ctx, texts)
		if err != nil {
			log.Fatalf("Failed to embed knowledge base: %v", err)
		}
		if err := weaviateDb.BatchUpsert(ctx, docs, embeddings); err != nil {
			log.Fatalf("Failed to insert knowledge base: %v", err)
		}
		log.Printf("Loaded %d passages into the knowledge base", len(entries))
	},
}

func init() {
	rootCmd.AddCommand(loadKBCmd)
	loadKBCmd.Flags().StringP("file", "f", "", "path to the knowledge base JSON file")
	loadKBCmd.Flags().Bool("reinit", false, "clear the index before loading")
	loadKBCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
