package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/askcse/deptbot-be/service"
	"github.com/askcse/deptbot-be/types"
)

type QueryHandler struct {
	ragService *service.RAGService
}

func NewQueryHandler(ragService *service.RAGService) *QueryHandler {
	return &QueryHandler{
		ragService: ragService,
	}
}

// HandleQuery runs the full retrieval and generation pipeline for a query.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "No query provided",
		})
		return
	}

	response, err := h.ragService.HandleQuery(c.Request.Context(), req.Query)
	if err != nil {
		// Collaborator detail is logged, not echoed to end users.
		log.Printf("query pipeline failed: %v", err)
		status := http.StatusInternalServerError
		if service.IsTimeout(err) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, types.DataResponse{
			Status:  "error",
			Message: "Failed to process query",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   response,
	})
}

// HandleSearch exposes raw retrieval output without generation. Debug and
// comparison use only.
func (h *QueryHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "No query provided",
		})
		return
	}

	candidates, err := h.ragService.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		log.Printf("search failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Search failed",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   candidates,
	})
}
