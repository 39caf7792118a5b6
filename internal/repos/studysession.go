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

type StudySessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error)
	// GetOwned returns nil (no error) when the session does not exist or
	// belongs to another user.
	GetOwned(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*types.StudySession, error)
	// GetOwnedForUpdate is GetOwned with a row-level lock; it must run
	// inside a transaction.
	GetOwnedForUpdate(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*types.StudySession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.StudySession) error
	DetachCourse(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type studySessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudySessionRepo(db *gorm.DB, baseLog *logger.Logger) StudySessionRepo {
	repoLog := baseLog.With("repo", "StudySessionRepo")
	return &studySessionRepo{db: db, log: repoLog}
}

func (sr *studySessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sessions) == 0 {
		return []*types.StudySession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (sr *studySessionRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*types.StudySession, error) {
	return sr.getOwned(ctx, tx, userID, sessionID, false)
}

func (sr *studySessionRepo) GetOwnedForUpdate(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*types.StudySession, error) {
	return sr.getOwned(ctx, tx, userID, sessionID, true)
}

func (sr *studySessionRepo) getOwned(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID, lock bool) (*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	query := transaction.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var result types.StudySession
	err := query.
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *studySessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.StudySession) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).Save(session).Error
}

func (sr *studySessionRepo) DetachCourse(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.StudySession{}).
		Where("course_id IN ?", courseIDs).
		Update("course_id", nil).Error
}
