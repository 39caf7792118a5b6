package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

// passTxRunner runs the body directly with no real transaction.
type passTxRunner struct {
	calls int
}

var _ repos.TxRunner = (*passTxRunner)(nil)

func (r *passTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.calls++
	return fn(nil)
}

type fakeSessionRepo struct {
	session     *types.StudySession
	updateCalls int
}

var _ repos.StudySessionRepo = (*fakeSessionRepo)(nil)

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error) {
	return sessions, nil
}

func (f *fakeSessionRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*types.StudySession, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) GetOwnedForUpdate(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*types.StudySession, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.StudySession) error {
	f.updateCalls++
	f.session = session
	return nil
}

func (f *fakeSessionRepo) DetachCourse(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	return nil
}

type fakeDailyRepo struct {
	addCalls    int
	lastMinutes int
	lastDate    time.Time
	failAdd     error
}

var _ repos.DailyStudyRepo = (*fakeDailyRepo)(nil)

func (f *fakeDailyRepo) AddMinutes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, studyDate time.Time, minutes int) error {
	if f.failAdd != nil {
		return f.failAdd
	}
	f.addCalls++
	f.lastMinutes = minutes
	f.lastDate = studyDate
	return nil
}

func (f *fakeDailyRepo) GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyStudy, error) {
	return nil, nil
}

func newSessionTestService(t *testing.T, runner repos.TxRunner, sessions *fakeSessionRepo, daily *fakeDailyRepo) ProgressService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}
	return NewProgressService(runner, log, nil, nil, nil, sessions, daily)
}

func TestEndSession_ClosesSessionAndAddsTruncatedMinutes(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	start := time.Now().UTC().Add(-(25*time.Minute + 54*time.Second))
	sessions := &fakeSessionRepo{session: &types.StudySession{
		ID:        sessionID,
		UserID:    userID,
		StartTime: start,
	}}
	daily := &fakeDailyRepo{}
	runner := &passTxRunner{}
	svc := newSessionTestService(t, runner, sessions, daily)

	got, err := svc.EndSession(context.Background(), userID, sessionID)
	if err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if got.EndTime == nil || got.DurationMinutes == nil {
		t.Fatalf("session not closed: %+v", got)
	}
	if *got.DurationMinutes != 25 {
		t.Fatalf("duration = %d, want 25", *got.DurationMinutes)
	}
	if runner.calls != 1 {
		t.Fatalf("transaction runs = %d, want 1", runner.calls)
	}
	if sessions.updateCalls != 1 {
		t.Fatalf("session updates = %d, want 1", sessions.updateCalls)
	}
	if daily.addCalls != 1 {
		t.Fatalf("daily-total writes = %d, want 1", daily.addCalls)
	}
	if daily.lastMinutes != 25 {
		t.Fatalf("daily-total minutes = %d, want 25", daily.lastMinutes)
	}
	wantDate := dateOnly(time.Now())
	if !daily.lastDate.Equal(wantDate) {
		t.Fatalf("daily-total date = %v, want %v", daily.lastDate, wantDate)
	}
}

func TestEndSession_SecondEndReturnsStoredDurationWithoutAccumulating(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	endedAt := time.Now().UTC().Add(-time.Hour)
	duration := 42
	sessions := &fakeSessionRepo{session: &types.StudySession{
		ID:              sessionID,
		UserID:          userID,
		StartTime:       endedAt.Add(-42 * time.Minute),
		EndTime:         &endedAt,
		DurationMinutes: &duration,
	}}
	daily := &fakeDailyRepo{}
	svc := newSessionTestService(t, &passTxRunner{}, sessions, daily)

	got, err := svc.EndSession(context.Background(), userID, sessionID)
	if err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if got.DurationMinutes == nil || *got.DurationMinutes != 42 {
		t.Fatalf("duration = %v, want stored 42", got.DurationMinutes)
	}
	if got.EndTime == nil || !got.EndTime.Equal(endedAt) {
		t.Fatalf("end time changed: %v, want %v", got.EndTime, endedAt)
	}
	if sessions.updateCalls != 0 {
		t.Fatalf("closed session was updated %d times", sessions.updateCalls)
	}
	if daily.addCalls != 0 {
		t.Fatalf("daily total accumulated %d times on a closed session", daily.addCalls)
	}
}

func TestEndSession_UnknownSessionIsNotFound(t *testing.T) {
	daily := &fakeDailyRepo{}
	svc := newSessionTestService(t, &passTxRunner{}, &fakeSessionRepo{}, daily)

	_, err := svc.EndSession(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if daily.addCalls != 0 {
		t.Fatalf("daily total touched for a missing session")
	}
}

func TestEndSession_DailyTotalFailureSurfaces(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	sessions := &fakeSessionRepo{session: &types.StudySession{
		ID:        sessionID,
		UserID:    userID,
		StartTime: time.Now().UTC().Add(-10 * time.Minute),
	}}
	daily := &fakeDailyRepo{failAdd: fmt.Errorf("daily_study write refused")}
	svc := newSessionTestService(t, &passTxRunner{}, sessions, daily)

	if _, err := svc.EndSession(context.Background(), userID, sessionID); err == nil {
		t.Fatalf("expected the daily-total failure to abort the close")
	}
}
