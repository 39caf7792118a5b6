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

type CourseService interface {
	ListCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error)
	CreateCourse(ctx context.Context, userID uuid.UUID, title, description string) (*types.Course, error)
	GetCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.Course, error)
	UpdateCourse(ctx context.Context, userID, courseID uuid.UUID, title, description *string) (*types.Course, error)
	// DeleteCourse removes the course and everything hanging off it in one
	// transaction: notes, questions and confidence records are deleted,
	// sessions and todos keep their history but lose the course reference.
	DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	noteRepo       repos.NoteRepo
	questionRepo   repos.QuestionRepo
	confidenceRepo repos.ConfidenceRepo
	sessionRepo    repos.StudySessionRepo
	todoRepo       repos.TodoRepo
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	noteRepo repos.NoteRepo,
	questionRepo repos.QuestionRepo,
	confidenceRepo repos.ConfidenceRepo,
	sessionRepo repos.StudySessionRepo,
	todoRepo repos.TodoRepo,
) CourseService {
	serviceLog := baseLog.With("service", "CourseService")
	return &courseService{
		db:             db,
		log:            serviceLog,
		courseRepo:     courseRepo,
		noteRepo:       noteRepo,
		questionRepo:   questionRepo,
		confidenceRepo: confidenceRepo,
		sessionRepo:    sessionRepo,
		todoRepo:       todoRepo,
	}
}

func (cs *courseService) ListCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error) {
	courses, err := cs.courseRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	return courses, nil
}

func (cs *courseService) CreateCourse(ctx context.Context, userID uuid.UUID, title, description string) (*types.Course, error) {
	title = normalization.TrimInputString(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	course := &types.Course{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := cs.courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
		cs.log.Error("CreateCourse failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (cs *courseService) GetCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.Course, error) {
	course, err := cs.courseRepo.GetOwned(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course", apperrors.ErrNotFound)
	}
	return course, nil
}

func (cs *courseService) UpdateCourse(ctx context.Context, userID, courseID uuid.UUID, title, description *string) (*types.Course, error) {
	course, err := cs.GetCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		trimmed := normalization.TrimInputString(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrInvalidArgument)
		}
		course.Title = trimmed
	}
	if description != nil {
		course.Description = *description
	}
	course.UpdatedAt = time.Now()
	if err := cs.courseRepo.Update(ctx, nil, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

func (cs *courseService) DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := cs.GetCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{course.ID}
		if err := cs.confidenceRepo.DeleteByCourseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete course confidence records: %w", err)
		}
		if err := cs.noteRepo.DeleteByCourseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete course notes: %w", err)
		}
		if err := cs.questionRepo.DeleteByCourseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete course questions: %w", err)
		}
		if err := cs.sessionRepo.DetachCourse(ctx, tx, ids); err != nil {
			return fmt.Errorf("detach course sessions: %w", err)
		}
		if err := cs.todoRepo.DetachCourse(ctx, tx, ids); err != nil {
			return fmt.Errorf("detach course todos: %w", err)
		}
		if err := cs.courseRepo.Delete(ctx, tx, course.ID); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	})
}
