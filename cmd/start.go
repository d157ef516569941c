package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/handler"
	"github.com/askcse/deptbot-be/repository"
	"github.com/askcse/deptbot-be/service"
	"github.com/askcse/deptbot-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chatbot server",
	Long:  `Starts the HTTP server that answers knowledge-base queries`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Department == "" {
			cfg.Department = "Computer Science Department"
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStore)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		embedder := service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		generator := buildGenerator(cfg)

		// Optional query history behind Mongo.
		var queryLogRepo repository.QueryLogRepo
		if cfg.MongoDBURI != "" {
			mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoDBURI)
			if err != nil {
				log.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			queryLogRepo = repository.NewQueryLogRepo(
				mongoClient.Database("deptbot").Collection("query_logs"))
		}

		analyzer := service.NewQueryAnalyzer()
		retriever := service.NewRetriever(embedder, weaviateDb, cfg.Timeouts)
		reranker := service.NewHybridReranker(cfg.Rerank)
		ragService := service.NewRAGService(
			analyzer, retriever, reranker, generator, weaviateDb, cfg.Timeouts, queryLogRepo)

		docService := service.NewDocumentService(types.DocumentServiceConfig{
			MaxChunkSize: cfg.Chunking.MaxChunkSize,
			OverlapSize:  cfg.Chunking.OverlapSize,
		})
		uploadDir := cfg.UploadDir
		if uploadDir == "" {
			uploadDir = "uploads"
		}
		fileService := service.NewFileService(uploadDir, weaviateDb, embedder, docService)
		wsService := service.NewWebSocketService(ragService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		queryHandler := handler.NewQueryHandler(ragService)
		statsHandler := handler.NewStatsHandler(ragService, generator.Model(), cfg.EmbeddingModel)
		uploadHandler := handler.NewUploadHandler(fileService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/query", queryHandler.HandleQuery)
			apiV1.GET("/documents/search", queryHandler.HandleSearch)
			apiV1.GET("/stats", statsHandler.HandleStats)
			apiV1.GET("/health", statsHandler.HandleHealth)
			apiV1.GET("/ws", gin.WrapF(wsService.HandleQuery))
		}

		adminV1 := router.Group("/admin/api/v1")
		{
			adminV1.POST("/upload", uploadHandler.UploadDocumentHandler)
			if queryLogRepo != nil {
				historyHandler := handler.NewHistoryHandler(queryLogRepo)
				adminV1.GET("/history", historyHandler.HandlePaginateHistory)
			}
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func buildGenerator(cfg *config.Config) service.Generator {
	if cfg.Generator == "gemini" {
		generator, err := service.NewGeminiGenerator(cfg.GeminiAPIKeys, cfg.GeminiModel, cfg.Department)
		if err != nil {
			log.Fatalf("Failed to create Gemini generator: %v", err)
		}
		return generator
	}
	return service.NewOpenAIGenerator(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.Department)
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
