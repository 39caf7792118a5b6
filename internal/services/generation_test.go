package services

import "testing"

func TestParseGeneratedQuestions_BareArray(t *testing.T) {
	raw := `[{"question":"What is 2+2?","answer":"4","difficulty":"easy"}]`
	got, err := parseGeneratedQuestions(raw)
	if err != nil {
		t.Fatalf("parseGeneratedQuestions failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	if got[0].Question != "What is 2+2?" || got[0].Answer != "4" || got[0].Difficulty != "easy" {
		t.Fatalf("unexpected question: %+v", got[0])
	}
}

func TestParseGeneratedQuestions_StripsCodeFence(t *testing.T) {
	raw := "```json\n[{\"question\":\"q\",\"answer\":\"a\",\"difficulty\":\"medium\"}]\n```"
	got, err := parseGeneratedQuestions(raw)
	if err != nil {
		t.Fatalf("parseGeneratedQuestions failed: %v", err)
	}
	if len(got) != 1 || got[0].Difficulty != "medium" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParseGeneratedQuestions_ExtractsArrayFromProse(t *testing.T) {
	raw := `Here are your questions: [{"question":"q1","answer":"a1","difficulty":"hard"},{"question":"q2","answer":"a2","difficulty":"hard"}] Good luck!`
	got, err := parseGeneratedQuestions(raw)
	if err != nil {
		t.Fatalf("parseGeneratedQuestions failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
}

func TestParseGeneratedQuestions_NoArray(t *testing.T) {
	if _, err := parseGeneratedQuestions("I cannot generate questions right now."); err == nil {
		t.Fatalf("expected error for output without a JSON array")
	}
}

func TestParseGeneratedQuestions_MalformedJSON(t *testing.T) {
	if _, err := parseGeneratedQuestions(`[{"question": "unterminated`); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}
