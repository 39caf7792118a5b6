package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/requestdata"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TodoHandler struct {
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// todoResponse keeps due_date as a plain calendar date in the payload
// instead of the timestamp the model would serialize to.
func todoResponse(t *types.Todo) gin.H {
	var dueDate *string
	if t.DueDate != nil {
		formatted := t.DueDate.Format("2006-01-02")
		dueDate = &formatted
	}
	return gin.H{
		"id":         t.ID,
		"user_id":    t.UserID,
		"course_id":  t.CourseID,
		"text":       t.Text,
		"completed":  t.Completed,
		"due_date":   dueDate,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func (h *TodoHandler) ListTodos(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	todos, err := h.todoService.ListTodos(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoResponse(t))
	}
	RespondOK(c, gin.H{"todos": out})
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Text     string     `json:"text"`
		CourseID *uuid.UUID `json:"course_id"`
		DueDate  *string    `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	todo, err := h.todoService.CreateTodo(c.Request.Context(), rd.UserID, req.CourseID, req.Text, req.DueDate)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"todo": todoResponse(todo)})
}

// UpdateTodo decodes into raw messages first so an explicit "due_date":
// null (clear the date) can be told apart from the field being absent.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	todoID, err := uuid.Parse(c.Param("todo_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_todo_id", err)
		return
	}
	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	var update services.TodoUpdate
	if raw, ok := fields["text"]; ok {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_text", err)
			return
		}
		update.Text = &text
	}
	if raw, ok := fields["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_completed", err)
			return
		}
		update.Completed = &completed
	}
	if raw, ok := fields["due_date"]; ok {
		update.DueDateSet = true
		var dueDate *string
		if err := json.Unmarshal(raw, &dueDate); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_due_date", err)
			return
		}
		update.DueDate = dueDate
	}
	todo, err := h.todoService.UpdateTodo(c.Request.Context(), rd.UserID, todoID, update)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"todo": todoResponse(todo)})
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	todoID, err := uuid.Parse(c.Param("todo_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_todo_id", err)
		return
	}
	if err := h.todoService.DeleteTodo(c.Request.Context(), rd.UserID, todoID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
