package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/requestdata"
	"github.com/yungbote/studytrack-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) RecordConfidence(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		QuestionID      uuid.UUID `json:"question_id"`
		ConfidenceLevel int       `json:"confidence_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	record, err := h.progressService.RecordConfidence(c.Request.Context(), rd.UserID, req.QuestionID, req.ConfidenceLevel)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"confidence": record})
}

func (h *ProgressHandler) StartSession(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		CourseID    *uuid.UUID             `json:"course_id"`
		SessionType string                 `json:"session_type"`
		Metadata    map[string]interface{} `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	session, err := h.progressService.StartSession(c.Request.Context(), rd.UserID, req.CourseID, req.SessionType, req.Metadata)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"session": session})
}

func (h *ProgressHandler) EndSession(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	session, err := h.progressService.EndSession(c.Request.Context(), rd.UserID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": session})
}

// GetWeeklyProgress flattens the report into the chart-friendly shape the
// frontend consumes: parallel label/value arrays for the 7-day series.
func (h *ProgressHandler) GetWeeklyProgress(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	report, err := h.progressService.GetWeeklyReport(c.Request.Context(), rd.UserID, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	labels := make([]string, 0, len(report.Days))
	values := make([]float64, 0, len(report.Days))
	for _, day := range report.Days {
		labels = append(labels, day.Date)
		values = append(values, day.Hours)
	}
	RespondOK(c, gin.H{
		"weekly_data": gin.H{
			"labels": labels,
			"values": values,
		},
		"confidence_distribution": report.ConfidenceDistribution,
		"course_performance":      report.CoursePerformance,
		"total_hours":             report.TotalHours,
		"streak":                  report.Streak,
	})
}
