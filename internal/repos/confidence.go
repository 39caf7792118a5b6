package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type ConfidenceRepo interface {
	// Upsert inserts the record or, when a row for (user_id, question_id)
	// already exists, overwrites its confidence level in place.
	Upsert(ctx context.Context, tx *gorm.DB, record *types.ConfidenceRecord) error
	GetByUserAndQuestion(ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID) (*types.ConfidenceRecord, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ConfidenceRecord, error)
	DeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type confidenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConfidenceRepo(db *gorm.DB, baseLog *logger.Logger) ConfidenceRepo {
	repoLog := baseLog.With("repo", "ConfidenceRepo")
	return &confidenceRepo{db: db, log: repoLog}
}

func (cr *confidenceRepo) Upsert(ctx context.Context, tx *gorm.DB, record *types.ConfidenceRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"confidence_level": record.ConfidenceLevel,
				"updated_at":       gorm.Expr("now()"),
			}),
		}).
		Create(record).Error
}

func (cr *confidenceRepo) GetByUserAndQuestion(ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID) (*types.ConfidenceRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.ConfidenceRecord
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *confidenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ConfidenceRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.ConfidenceRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *confidenceRepo) DeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&types.ConfidenceRecord{}).Error
}
