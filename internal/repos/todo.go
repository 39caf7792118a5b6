package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TodoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, todos []*types.Todo) ([]*types.Todo, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error)
	// GetOwned returns nil (no error) when the todo does not exist or
	// belongs to another user.
	GetOwned(ctx context.Context, tx *gorm.DB, userID, todoID uuid.UUID) (*types.Todo, error)
	Update(ctx context.Context, tx *gorm.DB, todo *types.Todo) error
	Delete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error
	DetachCourse(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type todoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTodoRepo(db *gorm.DB, baseLog *logger.Logger) TodoRepo {
	repoLog := baseLog.With("repo", "TodoRepo")
	return &todoRepo{db: db, log: repoLog}
}

func (tr *todoRepo) Create(ctx context.Context, tx *gorm.DB, todos []*types.Todo) ([]*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(todos) == 0 {
		return []*types.Todo{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (tr *todoRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Todo
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *todoRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, todoID uuid.UUID) (*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Todo
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *todoRepo) Update(ctx context.Context, tx *gorm.DB, todo *types.Todo) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).Save(todo).Error
}

func (tr *todoRepo) Delete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", todoID).
		Delete(&types.Todo{}).Error
}

func (tr *todoRepo) DetachCourse(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Todo{}).
		Where("course_id IN ?", courseIDs).
		Update("course_id", nil).Error
}
