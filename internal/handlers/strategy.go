package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/requestdata"
	"github.com/yungbote/studytrack-backend/internal/services"
)

type StrategyHandler struct {
	generationService services.GenerationService
}

func NewStrategyHandler(generationService services.GenerationService) *StrategyHandler {
	return &StrategyHandler{generationService: generationService}
}

func (h *StrategyHandler) GenerateTestStrategies(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		TestType string   `json:"test_type"`
		Problems []string `json:"problems"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	strategies, err := h.generationService.GenerateTestStrategies(c.Request.Context(), req.TestType, req.Problems)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"strategies": strategies})
}
