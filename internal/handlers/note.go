package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/requestdata"
	"github.com/yungbote/studytrack-backend/internal/services"
)

type NoteHandler struct {
	noteService       services.NoteService
	generationService services.GenerationService
}

func NewNoteHandler(noteService services.NoteService, generationService services.GenerationService) *NoteHandler {
	return &NoteHandler{
		noteService:       noteService,
		generationService: generationService,
	}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	notes, err := h.noteService.ListNotes(c.Request.Context(), rd.UserID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := h.noteService.CreateNote(c.Request.Context(), rd.UserID, courseID, req.Title, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"note": note})
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_note_id", err)
		return
	}
	note, err := h.noteService.GetNote(c.Request.Context(), rd.UserID, noteID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_note_id", err)
		return
	}
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := h.noteService.UpdateNote(c.Request.Context(), rd.UserID, noteID, req.Title, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_note_id", err)
		return
	}
	if err := h.noteService.DeleteNote(c.Request.Context(), rd.UserID, noteID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (h *NoteHandler) GenerateNotes(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var req struct {
		Topic       string `json:"topic"`
		DetailLevel string `json:"detail_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := h.generationService.GenerateNotes(c.Request.Context(), rd.UserID, courseID, req.Topic, req.DetailLevel)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"note": note})
}
