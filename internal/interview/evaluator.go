package interview

import (
	"context"

	"github.com/spigell/hh-interviewer/internal/ai"

	"go.uber.org/zap"
)

// observerContextTurns is how many recent turns the observer sees.
const observerContextTurns = 2

// Evaluator obtains a structured judgment for each candidate answer and
// applies its side effects to the session. The state mutation is owned here,
// not by the text-generation capability.
type Evaluator struct {
	gen    ai.Generator
	logger *zap.Logger
}

// NewEvaluator creates an Evaluator backed by the provided generator.
func NewEvaluator(gen ai.Generator, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{gen: gen, logger: logger}
}

// Evaluate judges one answer and records confidence, knowledge gaps and
// confirmed skills on the session. It never fails: an unreachable capability
// or unparseable payload degrades to safe defaults so the turn loop never
// stalls on an observer problem.
func (e *Evaluator) Evaluate(ctx context.Context, sess *Session, answer string) *ai.Judgment {
	judgment := e.requestJudgment(ctx, sess, answer)

	sess.RecordConfidence(judgment.ConfidenceScore)
	for _, gap := range judgment.KnowledgeGaps {
		sess.AddKnowledgeGap(gap)
	}
	for _, skill := range judgment.ConfirmedSkills {
		sess.AddConfirmedSkill(skill)
	}

	return judgment
}

func (e *Evaluator) requestJudgment(ctx context.Context, sess *Session, answer string) *ai.Judgment {
	raw, err := e.gen.Generate(ctx, ai.RoleObserver, ai.Request{
		System: observerSystemPrompt,
		User:   buildObserverContext(sess, answer),
	})
	if err != nil {
		e.logger.Warn("observer call failed, using default judgment", zap.Error(err))
		return ai.DefaultJudgment("observer unavailable")
	}

	judgment, err := ai.DecodeJudgment(raw)
	if err != nil {
		e.logger.Warn("observer returned unparseable payload, using default judgment",
			zap.Error(err),
		)
		return ai.DefaultJudgment("unparseable observer payload")
	}

	return judgment
}
