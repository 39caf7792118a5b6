package logger

import "testing"

func TestSplitMode(t *testing.T) {
	cases := []struct {
		name      string
		mode      string
		wantBase  string
		wantLevel string
	}{
		{name: "bare production", mode: "production", wantBase: "production"},
		{name: "mixed case trimmed", mode: " Prod ", wantBase: "prod"},
		{name: "level suffix", mode: "production:warn", wantBase: "production", wantLevel: "warn"},
		{name: "dev with level", mode: "dev:error", wantBase: "dev", wantLevel: "error"},
		{name: "empty", mode: "", wantBase: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base, level := splitMode(tc.mode)
			if base != tc.wantBase || level != tc.wantLevel {
				t.Fatalf("splitMode(%q) = (%q, %q), want (%q, %q)", tc.mode, base, level, tc.wantBase, tc.wantLevel)
			}
		})
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New("production:loud"); err == nil {
		t.Fatalf("expected error for unknown level suffix")
	}
}

func TestNew_BuildsEveryMode(t *testing.T) {
	for _, mode := range []string{"production", "prod:warn", "development", "test", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", mode, err)
		}
		if log.SugaredLogger == nil {
			t.Fatalf("New(%q) returned nil sugared logger", mode)
		}
	}
}
