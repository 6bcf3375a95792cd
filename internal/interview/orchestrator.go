package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/transcript"

	"go.uber.org/zap"
)

// DefaultMaxQuestions is the interview length ceiling when none is configured.
const DefaultMaxQuestions = 10

// ErrAlreadyStarted is returned when Start is called on a used coach. A coach
// runs exactly one interview; a new one requires a new coach.
var ErrAlreadyStarted = errors.New("interview already started")

// terminationPhrases end the interview on a case-insensitive substring match,
// before any capability call. The candidate can always stop the interview.
var terminationPhrases = []string{
	"стоп интервью",
	"завершить интервью",
	"давай фидбэк",
	"конец интервью",
	"стоп игра",
	"фидбэк",
	"стоп",
	"закончить",
	"завершить",
	"stop interview",
	"end interview",
	"give feedback",
	"stop",
	"finish",
	"end",
}

type state int

const (
	stateNotStarted state = iota
	stateActive
	stateTerminated
)

// Reporter compiles and renders the final feedback document. It must always
// return a usable document, falling back to defaults internally.
type Reporter interface {
	FinalReport(ctx context.Context, sess *Session) string
}

// Reply is the outcome of one submitted candidate message. When Terminated is
// set, Message holds the rendered final report.
type Reply struct {
	Message       string
	InternalNotes string
	Terminated    bool
}

// Coach drives one interview from greeting to final report. It owns the
// session exclusively and processes messages strictly sequentially; it is not
// safe for concurrent use. Independent interviews need independent coaches.
type Coach struct {
	evaluator *Evaluator
	director  *Director
	reporter  Reporter
	logger    *zap.Logger

	maxQuestions int
	logDir       string

	state        state
	sess         *Session
	lastQuestion string
	turnCount    int
	log          *transcript.Log
}

// CoachConfig carries process-wide settings, read once at startup.
type CoachConfig struct {
	MaxQuestions int
	LogDir       string
}

// NewCoach assembles a coach in the NOT_STARTED state.
func NewCoach(evaluator *Evaluator, director *Director, reporter Reporter, cfg CoachConfig, logger *zap.Logger) *Coach {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Coach{
		evaluator:    evaluator,
		director:     director,
		reporter:     reporter,
		logger:       logger,
		maxQuestions: cfg.MaxQuestions,
		logDir:       cfg.LogDir,
	}
}

// Start validates the candidate identity, creates the session and returns the
// opening question. There is nothing to evaluate yet, so only the director is
// involved.
func (c *Coach) Start(ctx context.Context, name, position, grade, experience string) (string, error) {
	if c.state != stateNotStarted {
		return "", ErrAlreadyStarted
	}

	sess, err := NewSession(name, position, grade, experience)
	if err != nil {
		return "", err
	}

	c.sess = sess
	c.log = transcript.New(name)
	c.turnCount = 0

	question := c.director.Opening(ctx, sess)
	c.lastQuestion = question.VisibleMessage
	c.state = stateActive

	c.logger.Info("interview started",
		zap.String("candidate", name),
		zap.String("position", position),
		zap.String("grade", grade),
	)

	return question.VisibleMessage, nil
}

// Submit processes one candidate message. Termination phrases are checked
// before anything else; otherwise the answer is judged, the next question is
// chosen, and the completed turn is recorded. Hitting the question ceiling
// terminates the interview after the turn is recorded.
func (c *Coach) Submit(ctx context.Context, message string) (*Reply, error) {
	if c.state != stateActive {
		return nil, ErrSessionNotActive
	}

	c.turnCount++

	if containsTerminationPhrase(message) {
		c.logger.Info("termination phrase received", zap.Int("turn", c.turnCount))
		return c.finish(ctx), nil
	}

	judgment := c.evaluator.Evaluate(ctx, c.sess, message)

	question := c.nextQuestion(ctx, judgment, message)

	notes := fmt.Sprintf("[Observer]: %s\n[Interviewer]: %s", judgment.Analysis, question.InternalThought)
	c.sess.RecordTurn(c.lastQuestion, message, notes)
	c.log.AddTurn(c.turnCount, question.VisibleMessage, message, notes)
	c.lastQuestion = question.VisibleMessage

	c.logger.Debug("turn completed",
		zap.Int("turn", c.turnCount),
		zap.Int("confidence", judgment.ConfidenceScore),
		zap.String("difficulty", string(c.sess.Difficulty)),
		zap.Bool("off_topic", judgment.IsOffTopic),
	)

	if c.sess.QuestionCount >= c.maxQuestions {
		c.logger.Info("question ceiling reached", zap.Int("max_questions", c.maxQuestions))
		return c.finish(ctx), nil
	}

	return &Reply{Message: question.VisibleMessage, InternalNotes: notes}, nil
}

// Save persists the transcript and returns its path. An empty filename gets a
// generated one.
func (c *Coach) Save(filename string) (string, error) {
	if c.log == nil {
		return "", errors.New("nothing to save: interview was not started")
	}
	return c.log.Save(c.logDir, filename)
}

// Session exposes the underlying session for reporting and inspection.
func (c *Coach) Session() *Session {
	return c.sess
}

func (c *Coach) nextQuestion(ctx context.Context, judgment *ai.Judgment, message string) *ai.Question {
	if judgment.IsOffTopic {
		return c.director.Redirect(ctx, c.sess, message)
	}
	return c.director.Next(ctx, c.sess, judgment)
}

func (c *Coach) finish(ctx context.Context) *Reply {
	c.state = stateTerminated

	feedback := c.reporter.FinalReport(ctx, c.sess)
	c.log.SetFinalFeedback(feedback)

	if path, err := c.log.Save(c.logDir, ""); err != nil {
		c.logger.Warn("saving interview log failed", zap.Error(err))
	} else {
		c.logger.Info("interview log saved", zap.String("path", path))
	}

	return &Reply{Message: feedback, Terminated: true}
}

func containsTerminationPhrase(message string) bool {
	lowered := strings.ToLower(message)
	for _, phrase := range terminationPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
