package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*types.PracticeQuestion) ([]*types.PracticeQuestion, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.PracticeQuestion, error)
	// GetOwned resolves a question through its course's owner; nil when
	// missing or owned by another user.
	GetOwned(ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID) (*types.PracticeQuestion, error)
	Update(ctx context.Context, tx *gorm.DB, question *types.PracticeQuestion) error
	Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
	DeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.PracticeQuestion) ([]*types.PracticeQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(questions) == 0 {
		return []*types.PracticeQuestion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (qr *questionRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.PracticeQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.PracticeQuestion
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID) (*types.PracticeQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var result types.PracticeQuestion
	err := transaction.WithContext(ctx).
		Joins("JOIN course ON course.id = practice_question.course_id").
		Where("practice_question.id = ? AND course.user_id = ?", questionID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *questionRepo) Update(ctx context.Context, tx *gorm.DB, question *types.PracticeQuestion) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	return transaction.WithContext(ctx).Save(question).Error
}

func (qr *questionRepo) Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", questionID).
		Delete(&types.PracticeQuestion{}).Error
}

func (qr *questionRepo) DeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&types.PracticeQuestion{}).Error
}
