package ai

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractRecord(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "bare object",
			raw:  `{"confidence_score": 70}`,
			want: `{"confidence_score": 70}`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"confidence_score\": 70}\n```",
			want: `{"confidence_score": 70}`,
		},
		{
			name: "plain code fence",
			raw:  "```\n{\"topic\": \"sql\"}\n```",
			want: `{"topic": "sql"}`,
		},
		{
			name: "object wrapped in prose",
			raw:  "Вот мой анализ: {\"confidence_score\": 70} Надеюсь, помог!",
			want: `{"confidence_score": 70}`,
		},
		{
			name:    "no object at all",
			raw:     "I refuse to answer in JSON",
			wantErr: ErrNoRecord,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: ErrNoRecord,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractRecord(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeJudgmentCoercesWeakTypes(t *testing.T) {
	raw := `{
		"confidence_score": "85",
		"has_errors": "false",
		"is_off_topic": false,
		"knowledge_gaps": ["transactions"],
		"analysis": "ok"
	}`

	judgment, err := DecodeJudgment(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if judgment.ConfidenceScore != 85 {
		t.Fatalf("expected string score coerced to 85, got %d", judgment.ConfidenceScore)
	}
	if judgment.HasErrors {
		t.Fatal("expected has_errors coerced to false")
	}
	if len(judgment.KnowledgeGaps) != 1 || judgment.KnowledgeGaps[0] != "transactions" {
		t.Fatalf("unexpected knowledge gaps: %v", judgment.KnowledgeGaps)
	}
}

func TestDecodeJudgmentDefaultsMissingConfidence(t *testing.T) {
	judgment, err := DecodeJudgment(`{"analysis": "sparse payload"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if judgment.ConfidenceScore != 50 {
		t.Fatalf("expected default confidence 50, got %d", judgment.ConfidenceScore)
	}
	if judgment.Fallback {
		t.Fatal("a decoded judgment is not a fallback")
	}
}

func TestDecodeJudgmentRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeJudgment(`{"confidence_score": 70,}`); err == nil {
		t.Fatal("expected an error for malformed json")
	}
	if _, err := DecodeJudgment("no json here"); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestDefaultJudgment(t *testing.T) {
	judgment := DefaultJudgment("сервис недоступен")

	if !judgment.Fallback {
		t.Fatal("expected fallback flag")
	}
	if judgment.ConfidenceScore != 50 {
		t.Fatalf("expected confidence 50, got %d", judgment.ConfidenceScore)
	}
	if judgment.IsOffTopic || judgment.HasErrors || judgment.HasHallucinations {
		t.Fatal("fallback judgment must not flag the answer")
	}
	if !strings.Contains(judgment.Analysis, "сервис недоступен") {
		t.Fatalf("expected reason in analysis, got %q", judgment.Analysis)
	}
}

func TestDecodeQuestionRequiresVisibleMessage(t *testing.T) {
	question, err := DecodeQuestion(`{"visible_message": "Расскажи про индексы", "internal_thought": "база", "topic": "sql"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.VisibleMessage != "Расскажи про индексы" || question.Topic != "sql" {
		t.Fatalf("unexpected question: %+v", question)
	}

	if _, err := DecodeQuestion(`{"internal_thought": "no message"}`); err == nil {
		t.Fatal("expected an error for a question without a visible message")
	}
	if _, err := DecodeQuestion(`{"visible_message": "   "}`); err == nil {
		t.Fatal("expected an error for a blank visible message")
	}
}
