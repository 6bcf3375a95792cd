package interview

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotActive is returned when a candidate message arrives and there
// is no running interview to receive it.
var ErrSessionNotActive = errors.New("interview session is not active")

// Turn is one completed question/answer exchange. InternalNote holds the
// concatenated agent reasoning and is never shown to the candidate.
type Turn struct {
	Question     string
	Answer       string
	InternalNote string
}

// Session is the complete mutable record of one interview. It is owned by a
// single Coach for its lifetime and is not safe for concurrent use.
type Session struct {
	// Identity fields, immutable after creation.
	CandidateName string
	Position      string
	Grade         string
	Experience    string

	// History is append-only; its order defines recency windows.
	History []Turn

	// TopicsCovered preserves insertion order for reporting, membership is
	// deduplicated.
	TopicsCovered []string

	// CandidateAnswers is reserved for raw answer capture beyond history.
	CandidateAnswers []string

	CurrentTopic  string
	Difficulty    Difficulty
	QuestionCount int

	ConfidenceScores []int
	KnowledgeGaps    []string
	ConfirmedSkills  []string
}

// Summary is a read-only projection of the session used by the director and
// the report compiler.
type Summary struct {
	QuestionCount   int        `json:"question_count"`
	TopicsCovered   []string   `json:"topics_covered"`
	Difficulty      Difficulty `json:"difficulty_level"`
	AvgConfidence   float64    `json:"avg_confidence"`
	KnowledgeGaps   []string   `json:"knowledge_gaps"`
	ConfirmedSkills []string   `json:"confirmed_skills"`
}

// NewSession validates the identity fields and constructs a fresh session at
// medium difficulty. Validation happens here rather than in the caller so a
// session can never exist half-initialized.
func NewSession(name, position, grade, experience string) (*Session, error) {
	fields := map[string]string{
		"candidate name": name,
		"position":       position,
		"grade":          grade,
		"experience":     experience,
	}
	for label, value := range fields {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s is required to start an interview", label)
		}
	}

	return &Session{
		CandidateName: name,
		Position:      position,
		Grade:         grade,
		Experience:    experience,
		Difficulty:    DifficultyMedium,
	}, nil
}

// RecordTurn appends a completed turn and bumps the question counter. The
// opening greeting is not recorded, so QuestionCount always equals
// len(History).
func (s *Session) RecordTurn(question, answer, internalNote string) {
	s.History = append(s.History, Turn{
		Question:     question,
		Answer:       answer,
		InternalNote: internalNote,
	})
	s.CandidateAnswers = append(s.CandidateAnswers, answer)
	s.QuestionCount++
}

// RecordConfidence clamps the score into [0,100], appends it and re-derives
// the difficulty tier. Clamping (rather than rejecting) keeps a sloppy model
// payload from stalling the turn loop.
func (s *Session) RecordConfidence(score int) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	s.ConfidenceScores = append(s.ConfidenceScores, score)
	s.Difficulty = DifficultyFor(s.ConfidenceScores)
}

// AddTopic registers a topic label, ignoring duplicates and empty labels.
func (s *Session) AddTopic(label string) {
	s.TopicsCovered = appendUnique(s.TopicsCovered, label)
}

// AddKnowledgeGap registers a knowledge gap label, deduplicated on insert.
func (s *Session) AddKnowledgeGap(label string) {
	s.KnowledgeGaps = appendUnique(s.KnowledgeGaps, label)
}

// AddConfirmedSkill registers a confirmed skill label, deduplicated on insert.
func (s *Session) AddConfirmedSkill(label string) {
	s.ConfirmedSkills = appendUnique(s.ConfirmedSkills, label)
}

// RecentTurns returns up to n most recent turns, oldest first.
func (s *Session) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// Summary builds the read-only projection. Mean confidence is 0 when no
// scores have been recorded yet.
func (s *Session) Summary() Summary {
	avg := 0.0
	if len(s.ConfidenceScores) > 0 {
		sum := 0
		for _, score := range s.ConfidenceScores {
			sum += score
		}
		avg = float64(sum) / float64(len(s.ConfidenceScores))
	}

	return Summary{
		QuestionCount:   s.QuestionCount,
		TopicsCovered:   s.TopicsCovered,
		Difficulty:      s.Difficulty,
		AvgConfidence:   avg,
		KnowledgeGaps:   s.KnowledgeGaps,
		ConfirmedSkills: s.ConfirmedSkills,
	}
}

func appendUnique(labels []string, label string) []string {
	label = strings.TrimSpace(label)
	if label == "" {
		return labels
	}
	for _, existing := range labels {
		if existing == label {
			return labels
		}
	}
	return append(labels, label)
}
