package services

import (
	"errors"
	"testing"
	"time"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
)

func TestParseDueDate(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid date", value: "2026-04-01", want: day("2026-04-01")},
		{name: "wrong separator", value: "2026/04/01", wantErr: true},
		{name: "time component rejected", value: "2026-04-01T10:00:00Z", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "prose", value: "tomorrow", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDueDate(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.value)
				}
				if !errors.Is(err, apperrors.ErrInvalidArgument) {
					t.Fatalf("error %v is not ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDueDate(%q) failed: %v", tc.value, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("parseDueDate(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
