package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type DailyStudyRepo interface {
	// AddMinutes atomically accumulates minutes into the (user, day) row,
	// creating it when absent. Concurrent calls for the same day sum
	// correctly: the conflict clause adds to the stored value instead of
	// racing on a read-modify-write.
	AddMinutes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, studyDate time.Time, minutes int) error
	// GetByUserAndDateRange returns rows with from <= study_date <= to.
	GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyStudy, error)
}

type dailyStudyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyStudyRepo(db *gorm.DB, baseLog *logger.Logger) DailyStudyRepo {
	repoLog := baseLog.With("repo", "DailyStudyRepo")
	return &dailyStudyRepo{db: db, log: repoLog}
}

func (dr *dailyStudyRepo) AddMinutes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, studyDate time.Time, minutes int) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	row := &types.DailyStudy{
		ID:           uuid.New(),
		UserID:       userID,
		StudyDate:    studyDate,
		TotalMinutes: minutes,
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "study_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_minutes": gorm.Expr("daily_study.total_minutes + EXCLUDED.total_minutes"),
				"updated_at":    gorm.Expr("now()"),
			}),
		}).
		Create(row).Error
}

func (dr *dailyStudyRepo) GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.DailyStudy
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND study_date >= ? AND study_date <= ?", userID, from, to).
		Order("study_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
