package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

const (
	// weeklyWindowDays is the reporting window: as-of day plus the six
	// days before it.
	weeklyWindowDays = 7
	// streakLookbackDays bounds the backward streak walk. The original
	// walk was unbounded; a streak longer than this reports as the cap.
	streakLookbackDays = 365

	dateLayout = "2006-01-02"
)

// DailyPoint is one slot of the weekly time series: a calendar-day label
// and the hours studied that day.
type DailyPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type ConfidenceDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type CoursePerformance struct {
	CourseID    uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Performance float64   `json:"performance"`
}

// WeeklyReport is the derived analytics view over the trailing 7-day
// window. Days always has exactly weeklyWindowDays entries in
// chronological order ending at the as-of date.
type WeeklyReport struct {
	Days                   []DailyPoint           `json:"days"`
	ConfidenceDistribution ConfidenceDistribution `json:"confidence_distribution"`
	CoursePerformance      []CoursePerformance    `json:"course_performance"`
	TotalHours             float64                `json:"total_hours"`
	Streak                 int                    `json:"streak"`
}

type ProgressService interface {
	// RecordConfidence upserts the user's 1-3 rating for a question. One
	// record exists per (user, question); a repeat rating overwrites the
	// level rather than adding a row.
	RecordConfidence(ctx context.Context, userID, questionID uuid.UUID, level int) (*types.ConfidenceRecord, error)
	StartSession(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, sessionType string, metadata map[string]interface{}) (*types.StudySession, error)
	// EndSession closes an open session and folds its duration into the
	// daily total in one atomic unit. Ending an already-closed session
	// returns it unchanged without touching the total.
	EndSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.StudySession, error)
	// GetWeeklyReport is a pure read; it never errors on empty data.
	GetWeeklyReport(ctx context.Context, userID uuid.UUID, asOf time.Time) (*WeeklyReport, error)
}

type progressService struct {
	txRunner       repos.TxRunner
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	questionRepo   repos.QuestionRepo
	confidenceRepo repos.ConfidenceRepo
	sessionRepo    repos.StudySessionRepo
	dailyRepo      repos.DailyStudyRepo
}

func NewProgressService(
	txRunner repos.TxRunner,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	questionRepo repos.QuestionRepo,
	confidenceRepo repos.ConfidenceRepo,
	sessionRepo repos.StudySessionRepo,
	dailyRepo repos.DailyStudyRepo,
) ProgressService {
	serviceLog := baseLog.With("service", "ProgressService")
	return &progressService{
		txRunner:       txRunner,
		log:            serviceLog,
		courseRepo:     courseRepo,
		questionRepo:   questionRepo,
		confidenceRepo: confidenceRepo,
		sessionRepo:    sessionRepo,
		dailyRepo:      dailyRepo,
	}
}

func (ps *progressService) RecordConfidence(ctx context.Context, userID, questionID uuid.UUID, level int) (*types.ConfidenceRecord, error) {
	if level < types.ConfidenceLow || level > types.ConfidenceHigh {
		return nil, fmt.Errorf("%w: confidence level must be 1, 2 or 3", apperrors.ErrInvalidArgument)
	}

	question, err := ps.questionRepo.GetOwned(ctx, nil, userID, questionID)
	if err != nil {
		return nil, fmt.Errorf("resolve question: %w", err)
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question", apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	record := &types.ConfidenceRecord{
		ID:              uuid.New(),
		UserID:          userID,
		CourseID:        question.CourseID,
		QuestionID:      questionID,
		ConfidenceLevel: level,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := ps.confidenceRepo.Upsert(ctx, nil, record); err != nil {
		ps.log.Error("RecordConfidence upsert failed", "error", err, "user_id", userID, "question_id", questionID)
		return nil, fmt.Errorf("upsert confidence record: %w", err)
	}

	stored, err := ps.confidenceRepo.GetByUserAndQuestion(ctx, nil, userID, questionID)
	if err != nil {
		return nil, fmt.Errorf("reload confidence record: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("confidence record missing after upsert")
	}
	return stored, nil
}

func (ps *progressService) StartSession(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, sessionType string, metadata map[string]interface{}) (*types.StudySession, error) {
	if courseID != nil {
		course, err := ps.courseRepo.GetOwned(ctx, nil, userID, *courseID)
		if err != nil {
			return nil, fmt.Errorf("resolve course: %w", err)
		}
		if course == nil {
			return nil, fmt.Errorf("%w: course", apperrors.ErrNotFound)
		}
	}
	if sessionType == "" {
		sessionType = "general"
	}

	var metadataJSON datatypes.JSON
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata is not serializable", apperrors.ErrInvalidArgument)
		}
		metadataJSON = datatypes.JSON(raw)
	}

	now := time.Now().UTC()
	session := &types.StudySession{
		ID:          uuid.New(),
		UserID:      userID,
		CourseID:    courseID,
		SessionType: sessionType,
		StartTime:   now,
		Metadata:    metadataJSON,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := ps.sessionRepo.Create(ctx, nil, []*types.StudySession{session}); err != nil {
		ps.log.Error("StartSession failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("create study session: %w", err)
	}
	return session, nil
}

func (ps *progressService) EndSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.StudySession, error) {
	var result *types.StudySession
	err := ps.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		// Row lock serializes concurrent ends of the same session; the
		// closed re-check under the lock makes the second call a no-op.
		session, err := ps.sessionRepo.GetOwnedForUpdate(ctx, tx, userID, sessionID)
		if err != nil {
			return fmt.Errorf("load study session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("%w: study session", apperrors.ErrNotFound)
		}
		if session.Closed() {
			result = session
			return nil
		}

		now := time.Now().UTC()
		minutes := sessionDurationMinutes(session.StartTime, now)
		session.EndTime = &now
		session.DurationMinutes = &minutes
		session.UpdatedAt = now
		if err := ps.sessionRepo.Update(ctx, tx, session); err != nil {
			return fmt.Errorf("close study session: %w", err)
		}
		if err := ps.dailyRepo.AddMinutes(ctx, tx, userID, dateOnly(time.Now()), minutes); err != nil {
			return fmt.Errorf("update daily study total: %w", err)
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (ps *progressService) GetWeeklyReport(ctx context.Context, userID uuid.UUID, asOf time.Time) (*WeeklyReport, error) {
	asOfDay := dateOnly(asOf)
	from := asOfDay.AddDate(0, 0, -(streakLookbackDays - 1))

	// One range query covers both the 7-day series and the streak walk.
	totals, err := ps.dailyRepo.GetByUserAndDateRange(ctx, nil, userID, from, asOfDay)
	if err != nil {
		return nil, fmt.Errorf("load daily totals: %w", err)
	}
	records, err := ps.confidenceRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load confidence records: %w", err)
	}
	courses, err := ps.courseRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}

	return buildWeeklyReport(asOfDay, totals, records, courses), nil
}

// buildWeeklyReport derives the analytics view from already-fetched rows.
// It is deterministic for a given input and mutates nothing.
func buildWeeklyReport(asOfDay time.Time, totals []*types.DailyStudy, records []*types.ConfidenceRecord, courses []*types.Course) *WeeklyReport {
	minutesByDate := make(map[string]int, len(totals))
	for _, row := range totals {
		minutesByDate[row.StudyDate.Format(dateLayout)] = row.TotalMinutes
	}

	// Fixed-size series indexed by day offset, pre-seeded with zeros, then
	// overwritten from fetched rows.
	days := make([]DailyPoint, weeklyWindowDays)
	for i := 0; i < weeklyWindowDays; i++ {
		day := asOfDay.AddDate(0, 0, i-(weeklyWindowDays-1))
		key := day.Format(dateLayout)
		days[i] = DailyPoint{
			Date:  key,
			Hours: float64(minutesByDate[key]) / 60.0,
		}
	}

	var distribution ConfidenceDistribution
	recordsByCourse := make(map[uuid.UUID][]*types.ConfidenceRecord)
	for _, record := range records {
		switch record.ConfidenceLevel {
		case types.ConfidenceLow:
			distribution.Low++
		case types.ConfidenceMedium:
			distribution.Medium++
		case types.ConfidenceHigh:
			distribution.High++
		}
		recordsByCourse[record.CourseID] = append(recordsByCourse[record.CourseID], record)
	}

	performance := make([]CoursePerformance, 0, len(courses))
	for _, course := range courses {
		performance = append(performance, CoursePerformance{
			CourseID:    course.ID,
			Title:       course.Title,
			Performance: coursePerformanceScore(recordsByCourse[course.ID]),
		})
	}

	var totalHours float64
	for _, point := range days {
		totalHours += point.Hours
	}

	return &WeeklyReport{
		Days:                   days,
		ConfidenceDistribution: distribution,
		CoursePerformance:      performance,
		TotalHours:             roundToTenth(totalHours),
		Streak:                 computeStreak(asOfDay, minutesByDate, streakLookbackDays),
	}
}

// coursePerformanceScore maps a course's confidence records onto a 0-100
// score: mean level over the 1-3 scale, as a percentage, one decimal. No
// records means 0, not an error.
func coursePerformanceScore(records []*types.ConfidenceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, record := range records {
		sum += record.ConfidenceLevel
	}
	avg := float64(sum) / float64(len(records))
	return roundToTenth(avg / float64(types.ConfidenceHigh) * 100)
}

// computeStreak counts consecutive days with nonzero minutes walking
// backward from asOfDay inclusive. The first missing or zero day breaks
// the streak; a gap is never skipped.
func computeStreak(asOfDay time.Time, minutesByDate map[string]int, maxDays int) int {
	streak := 0
	for i := 0; i < maxDays; i++ {
		day := asOfDay.AddDate(0, 0, -i)
		if minutesByDate[day.Format(dateLayout)] <= 0 {
			break
		}
		streak++
	}
	return streak
}

// sessionDurationMinutes truncates the elapsed time to whole minutes.
func sessionDurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Minutes())
}

// dateOnly drops the time-of-day component, keeping t's location. Daily
// totals bucket by the server-local calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
