package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/normalization"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

// TodoUpdate carries a partial update. Nil fields are left untouched.
// DueDateSet distinguishes "due_date absent" from "due_date: null": when
// set with a nil DueDate the due date is cleared.
type TodoUpdate struct {
	Text       *string
	Completed  *bool
	DueDate    *string
	DueDateSet bool
}

type TodoService interface {
	ListTodos(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error)
	CreateTodo(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, text string, dueDate *string) (*types.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, update TodoUpdate) (*types.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error
}

type todoService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	todoRepo   repos.TodoRepo
}

func NewTodoService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo, todoRepo repos.TodoRepo) TodoService {
	serviceLog := baseLog.With("service", "TodoService")
	return &todoService{db: db, log: serviceLog, courseRepo: courseRepo, todoRepo: todoRepo}
}

func (ts *todoService) ListTodos(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error) {
	todos, err := ts.todoRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	return todos, nil
}

func (ts *todoService) CreateTodo(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, text string, dueDate *string) (*types.Todo, error) {
	text = normalization.TrimInputString(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperrors.ErrInvalidArgument)
	}
	if courseID != nil {
		course, err := ts.courseRepo.GetOwned(ctx, nil, userID, *courseID)
		if err != nil {
			return nil, fmt.Errorf("resolve course: %w", err)
		}
		if course == nil {
			return nil, fmt.Errorf("%w: course", apperrors.ErrNotFound)
		}
	}

	var due *time.Time
	if dueDate != nil {
		parsed, err := parseDueDate(*dueDate)
		if err != nil {
			return nil, err
		}
		due = parsed
	}

	now := time.Now()
	todo := &types.Todo{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		Text:      text,
		Completed: false,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ts.todoRepo.Create(ctx, nil, []*types.Todo{todo}); err != nil {
		ts.log.Error("CreateTodo failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (ts *todoService) UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, update TodoUpdate) (*types.Todo, error) {
	todo, err := ts.todoRepo.GetOwned(ctx, nil, userID, todoID)
	if err != nil {
		return nil, fmt.Errorf("load todo: %w", err)
	}
	if todo == nil {
		return nil, fmt.Errorf("%w: todo", apperrors.ErrNotFound)
	}

	if update.Text != nil {
		trimmed := normalization.TrimInputString(*update.Text)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: text cannot be empty", apperrors.ErrInvalidArgument)
		}
		todo.Text = trimmed
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}
	if update.DueDateSet {
		if update.DueDate == nil {
			todo.DueDate = nil
		} else {
			parsed, err := parseDueDate(*update.DueDate)
			if err != nil {
				return nil, err
			}
			todo.DueDate = parsed
		}
	}

	todo.UpdatedAt = time.Now()
	if err := ts.todoRepo.Update(ctx, nil, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (ts *todoService) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	todo, err := ts.todoRepo.GetOwned(ctx, nil, userID, todoID)
	if err != nil {
		return fmt.Errorf("load todo: %w", err)
	}
	if todo == nil {
		return fmt.Errorf("%w: todo", apperrors.ErrNotFound)
	}
	if err := ts.todoRepo.Delete(ctx, nil, todo.ID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// parseDueDate accepts only strict YYYY-MM-DD calendar dates.
func parseDueDate(value string) (*time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", apperrors.ErrInvalidArgument)
	}
	return &parsed, nil
}
