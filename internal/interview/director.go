package interview

import (
	"context"
	"encoding/json"

	"github.com/spigell/hh-interviewer/internal/ai"

	"go.uber.org/zap"
)

// directorContextTurns is how many recent turns the interviewer sees when
// choosing the next question.
const directorContextTurns = 3

// Fallback copy shown when the interviewer capability fails. The candidate
// never sees a raw error.
const (
	fallbackOpeningMessage  = "Привет! Расскажи о своем опыте."
	fallbackNextMessage     = "Расскажи подробнее о своем опыте."
	fallbackRedirectMessage = "Давайте вернемся к техническим вопросам."
)

// Director chooses the next visible message. It owns topic registration and
// deduplication; off-topic redirects deliberately leave topic state alone.
type Director struct {
	gen    ai.Generator
	logger *zap.Logger
}

// NewDirector creates a Director backed by the provided generator.
func NewDirector(gen ai.Generator, logger *zap.Logger) *Director {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Director{gen: gen, logger: logger}
}

// Opening produces the greeting and warm-up question for a fresh session.
// Nothing has been answered yet, so no judgment is involved.
func (d *Director) Opening(ctx context.Context, sess *Session) *ai.Question {
	return d.request(ctx, openingSystemPrompt, buildOpeningContext(sess), fallbackOpeningMessage)
}

// Next produces the next on-topic question based on the observer's judgment
// and registers the returned topic on the session.
func (d *Director) Next(ctx context.Context, sess *Session, judgment *ai.Judgment) *ai.Question {
	judgmentJSON, err := json.MarshalIndent(judgment, "", "  ")
	if err != nil {
		judgmentJSON = []byte("{}")
	}

	question := d.request(ctx, nextQuestionSystemPrompt,
		buildNextQuestionContext(sess, string(judgmentJSON)), fallbackNextMessage)

	if question.Topic != "" {
		sess.AddTopic(question.Topic)
		sess.CurrentTopic = question.Topic
	}

	return question
}

// Redirect produces a polite message steering a derailed candidate back to
// the interview. CurrentTopic and TopicsCovered are left unchanged.
func (d *Director) Redirect(ctx context.Context, sess *Session, lastMessage string) *ai.Question {
	question := d.request(ctx, redirectSystemPrompt,
		buildRedirectContext(sess, lastMessage), fallbackRedirectMessage)

	// A redirect never opens a topic, whatever the model claims.
	question.Topic = ""

	return question
}

func (d *Director) request(ctx context.Context, system, user, fallbackMessage string) *ai.Question {
	raw, err := d.gen.Generate(ctx, ai.RoleInterviewer, ai.Request{System: system, User: user})
	if err != nil {
		d.logger.Warn("interviewer call failed, using fallback message", zap.Error(err))
		return fallbackQuestion(fallbackMessage, "interviewer unavailable")
	}

	question, err := ai.DecodeQuestion(raw)
	if err != nil {
		d.logger.Warn("interviewer returned unparseable payload, using fallback message",
			zap.Error(err),
		)
		return fallbackQuestion(fallbackMessage, "unparseable interviewer payload")
	}

	return question
}

func fallbackQuestion(message, reason string) *ai.Question {
	return &ai.Question{
		VisibleMessage:  message,
		InternalThought: "Фоллбэк: " + reason,
		Fallback:        true,
	}
}
