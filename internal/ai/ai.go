package ai

import "context"

// Role identifies which interview agent a generation request is made for.
// Each role may be backed by its own model.
type Role string

const (
	// RoleInterviewer asks questions and keeps the conversation on track.
	RoleInterviewer Role = "interviewer"
	// RoleObserver silently judges every candidate answer.
	RoleObserver Role = "observer"
	// RoleEvaluator produces the final structured assessment.
	RoleEvaluator Role = "evaluator"
)

// Request is a single role-tagged generation request: a system instruction
// plus user context. The provider decides how to deliver both.
type Request struct {
	System string
	User   string
}

// Generator produces free text for a given agent role. Implementations may
// block on network calls and must honor the passed context.
type Generator interface {
	Generate(ctx context.Context, role Role, req Request) (string, error)
}

// Judgment is the observer's structured verdict on one candidate answer.
// Every field is optional in the wire payload; decoding fills documented
// defaults instead of failing the turn.
type Judgment struct {
	ConfidenceScore   int      `mapstructure:"confidence_score" json:"confidence_score"`
	HasErrors         bool     `mapstructure:"has_errors" json:"has_errors"`
	HasHallucinations bool     `mapstructure:"has_hallucinations" json:"has_hallucinations"`
	IsOffTopic        bool     `mapstructure:"is_off_topic" json:"is_off_topic"`
	Recommendation    string   `mapstructure:"recommendation" json:"recommendation"`
	NextAction        string   `mapstructure:"next_action" json:"next_action"`
	KnowledgeGaps     []string `mapstructure:"knowledge_gaps" json:"knowledge_gaps"`
	ConfirmedSkills   []string `mapstructure:"confirmed_skills" json:"confirmed_skills"`
	Analysis          string   `mapstructure:"analysis" json:"analysis"`

	// Fallback is set when the capability failed and safe defaults were
	// substituted. Recorded in internal notes for diagnostic replay.
	Fallback bool `mapstructure:"-" json:"-"`
}

// Question is the interviewer's next visible message together with its
// internal rationale and the topic label it belongs to.
type Question struct {
	VisibleMessage  string `mapstructure:"visible_message"`
	InternalThought string `mapstructure:"internal_thought"`
	Topic           string `mapstructure:"topic"`

	Fallback bool `mapstructure:"-"`
}
