package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askcse/deptbot-be/repository"
	"github.com/askcse/deptbot-be/types"
)

type HistoryHandler struct {
	queryLogRepo repository.QueryLogRepo
}

func NewHistoryHandler(queryLogRepo repository.QueryLogRepo) *HistoryHandler {
	return &HistoryHandler{
		queryLogRepo: queryLogRepo,
	}
}

// HandlePaginateHistory lists answered queries, newest first.
func (h *HistoryHandler) HandlePaginateHistory(c *gin.Context) {
	var req types.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid pagination parameters",
		})
		return
	}

	logs, err := h.queryLogRepo.Paginate(c.Request.Context(), req.Page, req.Limit)
	if err != nil {
		log.Printf("history paginate failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to list query history",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   logs,
	})
}
