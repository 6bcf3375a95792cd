package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrNoRecord is returned when a model response contains no JSON object at all.
var ErrNoRecord = errors.New("no json object found in model response")

// ExtractRecord returns the structured record embedded in raw model output.
// Code fences are stripped first, then the substring from the first '{' to
// the last '}' is taken. Models routinely wrap JSON in prose or markdown.
func ExtractRecord(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", ErrNoRecord
	}

	return cleaned[start : end+1], nil
}

// DecodeRecord extracts the embedded record from raw output and decodes it
// into out. Decoding is weakly typed: numbers arriving as strings or floats
// are coerced, since the capability gives no schema guarantees. Optional
// hooks allow consumers to repair shape mismatches (e.g. a gap arriving as a
// bare string instead of an object).
func DecodeRecord(raw string, out any, hooks ...mapstructure.DecodeHookFunc) error {
	payload, err := ExtractRecord(raw)
	if err != nil {
		return err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	}
	if len(hooks) > 0 {
		cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(hooks...)
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}

	return nil
}

// DecodeJudgment parses the observer's response. A missing confidence score
// defaults to 50 so a sparse payload still moves the interview forward.
func DecodeJudgment(raw string) (*Judgment, error) {
	judgment := &Judgment{ConfidenceScore: 50}
	if err := DecodeRecord(raw, judgment); err != nil {
		return nil, err
	}
	return judgment, nil
}

// DefaultJudgment returns the safe judgment used when the observer is
// unreachable or returned an unparseable payload.
func DefaultJudgment(reason string) *Judgment {
	analysis := "Анализ ответа недоступен"
	if reason != "" {
		analysis = fmt.Sprintf("%s (%s)", analysis, reason)
	}
	return &Judgment{
		ConfidenceScore: 50,
		KnowledgeGaps:   []string{},
		ConfirmedSkills: []string{},
		Analysis:        analysis,
		Fallback:        true,
	}
}

// DecodeQuestion parses the interviewer's response. The visible message is
// mandatory: a record without one is as useless as no record.
func DecodeQuestion(raw string) (*Question, error) {
	question := &Question{}
	if err := DecodeRecord(raw, question); err != nil {
		return nil, err
	}
	if strings.TrimSpace(question.VisibleMessage) == "" {
		return nil, errors.New("model response has no visible message")
	}
	return question, nil
}
