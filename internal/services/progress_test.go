package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/types"
)

func day(value string) time.Time {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSessionDurationMinutes_TruncatesPartialMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{name: "zero elapsed", elapsed: 0, want: 0},
		{name: "under a minute", elapsed: 59 * time.Second, want: 0},
		{name: "exactly a minute", elapsed: time.Minute, want: 1},
		{name: "95 seconds truncates to 1", elapsed: 95 * time.Second, want: 1},
		{name: "25.9 minutes truncates to 25", elapsed: 25*time.Minute + 54*time.Second, want: 25},
		{name: "two hours", elapsed: 2 * time.Hour, want: 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sessionDurationMinutes(start, start.Add(tc.elapsed)); got != tc.want {
				t.Fatalf("sessionDurationMinutes(%v) = %d, want %d", tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestBuildWeeklyReport_SevenZeroSeededDaysInOrder(t *testing.T) {
	asOf := day("2026-03-10")
	report := buildWeeklyReport(asOf, nil, nil, nil)

	if len(report.Days) != weeklyWindowDays {
		t.Fatalf("expected %d days, got %d", weeklyWindowDays, len(report.Days))
	}
	if report.Days[0].Date != "2026-03-04" {
		t.Fatalf("first day = %s, want 2026-03-04", report.Days[0].Date)
	}
	if report.Days[6].Date != "2026-03-10" {
		t.Fatalf("last day = %s, want 2026-03-10", report.Days[6].Date)
	}
	for i := 1; i < len(report.Days); i++ {
		if report.Days[i].Date <= report.Days[i-1].Date {
			t.Fatalf("days out of order at %d: %s <= %s", i, report.Days[i].Date, report.Days[i-1].Date)
		}
	}
	for _, point := range report.Days {
		if point.Hours != 0 {
			t.Fatalf("expected zero hours on %s, got %v", point.Date, point.Hours)
		}
	}
	if report.TotalHours != 0 {
		t.Fatalf("total hours = %v, want 0", report.TotalHours)
	}
	if report.Streak != 0 {
		t.Fatalf("streak = %d, want 0", report.Streak)
	}
}

func TestBuildWeeklyReport_MinutesLandOnTheirDay(t *testing.T) {
	asOf := day("2026-03-10")
	totals := []*types.DailyStudy{
		{UserID: uuid.New(), StudyDate: day("2026-03-09"), TotalMinutes: 90},
		{UserID: uuid.New(), StudyDate: day("2026-03-10"), TotalMinutes: 30},
		// Outside the 7-day window: feeds streak lookback only.
		{UserID: uuid.New(), StudyDate: day("2026-03-01"), TotalMinutes: 60},
	}

	report := buildWeeklyReport(asOf, totals, nil, nil)

	if got := report.Days[5].Hours; got != 1.5 {
		t.Fatalf("2026-03-09 hours = %v, want 1.5", got)
	}
	if got := report.Days[6].Hours; got != 0.5 {
		t.Fatalf("2026-03-10 hours = %v, want 0.5", got)
	}
	if report.TotalHours != 2.0 {
		t.Fatalf("total hours = %v, want 2.0", report.TotalHours)
	}
	if report.Streak != 2 {
		t.Fatalf("streak = %d, want 2", report.Streak)
	}
}

func TestBuildWeeklyReport_ConfidenceDistributionAndCoursePerformance(t *testing.T) {
	asOf := day("2026-03-10")
	courseA := &types.Course{ID: uuid.New(), Title: "algebra"}
	courseB := &types.Course{ID: uuid.New(), Title: "biology"}
	records := []*types.ConfidenceRecord{
		{CourseID: courseA.ID, ConfidenceLevel: types.ConfidenceLow},
		{CourseID: courseA.ID, ConfidenceLevel: types.ConfidenceMedium},
		{CourseID: courseA.ID, ConfidenceLevel: types.ConfidenceHigh},
		{CourseID: courseB.ID, ConfidenceLevel: types.ConfidenceHigh},
	}

	report := buildWeeklyReport(asOf, nil, records, []*types.Course{courseA, courseB})

	if report.ConfidenceDistribution.Low != 1 || report.ConfidenceDistribution.Medium != 1 || report.ConfidenceDistribution.High != 2 {
		t.Fatalf("distribution = %+v, want {1 1 2}", report.ConfidenceDistribution)
	}
	if len(report.CoursePerformance) != 2 {
		t.Fatalf("expected 2 course entries, got %d", len(report.CoursePerformance))
	}
	// Mean of 1,2,3 over the 3-point scale is 66.7%.
	if got := report.CoursePerformance[0].Performance; got != 66.7 {
		t.Fatalf("course A performance = %v, want 66.7", got)
	}
	if got := report.CoursePerformance[1].Performance; got != 100.0 {
		t.Fatalf("course B performance = %v, want 100.0", got)
	}
}

func TestCoursePerformanceScore_EmptyCourseScoresZero(t *testing.T) {
	if got := coursePerformanceScore(nil); got != 0 {
		t.Fatalf("coursePerformanceScore(nil) = %v, want 0", got)
	}
}

func TestComputeStreak(t *testing.T) {
	asOf := day("2026-03-10")
	cases := []struct {
		name    string
		minutes map[string]int
		want    int
	}{
		{name: "no activity", minutes: map[string]int{}, want: 0},
		{
			name:    "zero today breaks immediately",
			minutes: map[string]int{"2026-03-10": 0, "2026-03-09": 45},
			want:    0,
		},
		{
			name:    "gap is never skipped",
			minutes: map[string]int{"2026-03-10": 30, "2026-03-08": 45},
			want:    1,
		},
		{
			name: "three consecutive days",
			minutes: map[string]int{
				"2026-03-10": 30,
				"2026-03-09": 15,
				"2026-03-08": 45,
			},
			want: 3,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := computeStreak(asOf, tc.minutes, streakLookbackDays); got != tc.want {
				t.Fatalf("computeStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeStreak_CappedByLookback(t *testing.T) {
	asOf := day("2026-03-10")
	minutes := make(map[string]int)
	for i := 0; i < 20; i++ {
		minutes[asOf.AddDate(0, 0, -i).Format(dateLayout)] = 30
	}
	if got := computeStreak(asOf, minutes, 10); got != 10 {
		t.Fatalf("computeStreak capped = %d, want 10", got)
	}
}

func TestRoundToTenth(t *testing.T) {
	if got := roundToTenth(66.66666); got != 66.7 {
		t.Fatalf("roundToTenth(66.66666) = %v, want 66.7", got)
	}
	if got := roundToTenth(2.04); got != 2.0 {
		t.Fatalf("roundToTenth(2.04) = %v, want 2.0", got)
	}
}

func TestDateOnly_KeepsLocationDropsClock(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	in := time.Date(2026, 3, 10, 23, 59, 58, 123, loc)
	got := dateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("dateOnly left a clock component: %v", got)
	}
	if got.Location() != loc {
		t.Fatalf("dateOnly changed location: %v", got.Location())
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 10 {
		t.Fatalf("dateOnly changed the date: %v", got)
	}
}
