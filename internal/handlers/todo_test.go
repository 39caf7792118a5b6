package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/requestdata"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type fakeTodoService struct {
	lastUpdate services.TodoUpdate
}

func (f *fakeTodoService) ListTodos(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error) {
	return nil, nil
}

func (f *fakeTodoService) CreateTodo(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, text string, dueDate *string) (*types.Todo, error) {
	return &types.Todo{ID: uuid.New(), UserID: userID, Text: text}, nil
}

func (f *fakeTodoService) UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, update services.TodoUpdate) (*types.Todo, error) {
	f.lastUpdate = update
	return &types.Todo{ID: todoID, UserID: userID, Text: "x"}, nil
}

func (f *fakeTodoService) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	return nil
}

func runUpdateTodo(t *testing.T, svc services.TodoService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewTodoHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/api/todos/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := requestdata.WithRequestData(req.Context(), &requestdata.RequestData{UserID: uuid.New()})
	c.Request = req.WithContext(ctx)
	c.Params = gin.Params{{Key: "todo_id", Value: uuid.New().String()}}

	h.UpdateTodo(c)
	return w
}

func TestUpdateTodo_AbsentDueDateLeavesItAlone(t *testing.T) {
	svc := &fakeTodoService{}
	w := runUpdateTodo(t, svc, `{"completed": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.lastUpdate.DueDateSet {
		t.Fatalf("absent due_date reported as set")
	}
	if svc.lastUpdate.Completed == nil || !*svc.lastUpdate.Completed {
		t.Fatalf("completed not carried: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Text != nil {
		t.Fatalf("absent text carried: %+v", svc.lastUpdate)
	}
}

func TestUpdateTodo_NullDueDateClearsIt(t *testing.T) {
	svc := &fakeTodoService{}
	w := runUpdateTodo(t, svc, `{"due_date": null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !svc.lastUpdate.DueDateSet {
		t.Fatalf("explicit null due_date not reported as set")
	}
	if svc.lastUpdate.DueDate != nil {
		t.Fatalf("null due_date produced a value: %v", *svc.lastUpdate.DueDate)
	}
}

func TestUpdateTodo_DueDateValueCarriedThrough(t *testing.T) {
	svc := &fakeTodoService{}
	w := runUpdateTodo(t, svc, `{"due_date": "2026-04-01", "text": "review chapter 3"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !svc.lastUpdate.DueDateSet || svc.lastUpdate.DueDate == nil || *svc.lastUpdate.DueDate != "2026-04-01" {
		t.Fatalf("due_date not carried: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Text == nil || *svc.lastUpdate.Text != "review chapter 3" {
		t.Fatalf("text not carried: %+v", svc.lastUpdate)
	}
}

func TestTodoResponse_FormatsDueDateAsCalendarDay(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	payload := todoResponse(&types.Todo{ID: uuid.New(), Text: "x", DueDate: &due})
	got, ok := payload["due_date"].(*string)
	if !ok || got == nil {
		t.Fatalf("due_date missing from payload: %+v", payload)
	}
	if *got != "2026-04-01" {
		t.Fatalf("due_date = %q, want 2026-04-01", *got)
	}
}
