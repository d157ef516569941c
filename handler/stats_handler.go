package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askcse/deptbot-be/service"
	"github.com/askcse/deptbot-be/types"
)

type StatsHandler struct {
	ragService     *service.RAGService
	generatorModel string
	embeddingModel string
}

func NewStatsHandler(ragService *service.RAGService, generatorModel, embeddingModel string) *StatsHandler {
	return &StatsHandler{
		ragService:     ragService,
		generatorModel: generatorModel,
		embeddingModel: embeddingModel,
	}
}

func (h *StatsHandler) HandleStats(c *gin.Context) {
	stats, err := h.ragService.GetStats(c.Request.Context())
	if err != nil {
		log.Printf("stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to get stats",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   stats,
	})
}

func (h *StatsHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:         "healthy",
		GeneratorModel: h.generatorModel,
		EmbeddingModel: h.embeddingModel,
		Service:        "Department RAG Chatbot Backend",
	})
}
