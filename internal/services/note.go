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

type NoteService interface {
	ListNotes(ctx context.Context, userID, courseID uuid.UUID) ([]*types.Note, error)
	CreateNote(ctx context.Context, userID, courseID uuid.UUID, title, content string) (*types.Note, error)
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error)
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, title, content *string) (*types.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

type noteService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	noteRepo   repos.NoteRepo
}

func NewNoteService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo, noteRepo repos.NoteRepo) NoteService {
	serviceLog := baseLog.With("service", "NoteService")
	return &noteService{db: db, log: serviceLog, courseRepo: courseRepo, noteRepo: noteRepo}
}

func (ns *noteService) ListNotes(ctx context.Context, userID, courseID uuid.UUID) ([]*types.Note, error) {
	if err := ns.requireCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}
	notes, err := ns.noteRepo.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	return notes, nil
}

func (ns *noteService) CreateNote(ctx context.Context, userID, courseID uuid.UUID, title, content string) (*types.Note, error) {
	if err := ns.requireCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}
	title = normalization.TrimInputString(title)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	note := &types.Note{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ns.noteRepo.Create(ctx, nil, []*types.Note{note}); err != nil {
		ns.log.Error("CreateNote failed", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (ns *noteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	note, err := ns.noteRepo.GetOwned(ctx, nil, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("%w: note", apperrors.ErrNotFound)
	}
	return note, nil
}

func (ns *noteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, title, content *string) (*types.Note, error) {
	note, err := ns.GetNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		trimmed := normalization.TrimInputString(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrInvalidArgument)
		}
		note.Title = trimmed
	}
	if content != nil {
		if *content == "" {
			return nil, fmt.Errorf("%w: content cannot be empty", apperrors.ErrInvalidArgument)
		}
		note.Content = *content
	}
	note.UpdatedAt = time.Now()
	if err := ns.noteRepo.Update(ctx, nil, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (ns *noteService) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := ns.GetNote(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if err := ns.noteRepo.Delete(ctx, nil, note.ID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (ns *noteService) requireCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := ns.courseRepo.GetOwned(ctx, nil, userID, courseID)
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return fmt.Errorf("%w: course", apperrors.ErrNotFound)
	}
	return nil
}
