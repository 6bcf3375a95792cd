// Package report compiles the final structured assessment of an interview
// and renders it into a display-ready document.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	_ "embed"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/interview"

	"go.uber.org/zap"
)

//go:embed prompt.md
var evaluatorSystemPrompt string

// Verdict is the hiring decision section of the assessment.
type Verdict struct {
	Grade                string `mapstructure:"grade"`
	HiringRecommendation string `mapstructure:"hiring_recommendation"`
	ConfidenceScore      int    `mapstructure:"confidence_score"`
	Summary              string `mapstructure:"summary"`
}

// Gap describes one identified knowledge gap.
type Gap struct {
	Topic         string `mapstructure:"topic"`
	Gap           string `mapstructure:"gap"`
	CorrectAnswer string `mapstructure:"correct_answer"`
}

// HardSkills covers the technical review section.
type HardSkills struct {
	TopicsCovered   []string `mapstructure:"topics_covered"`
	ConfirmedSkills []string `mapstructure:"confirmed_skills"`
	KnowledgeGaps   []Gap    `mapstructure:"knowledge_gaps"`
}

// SoftSkills covers communication, each dimension a scored narrative.
type SoftSkills struct {
	Clarity    string `mapstructure:"clarity"`
	Honesty    string `mapstructure:"honesty"`
	Engagement string `mapstructure:"engagement"`
	Summary    string `mapstructure:"summary"`
}

// Roadmap holds personalized follow-up recommendations.
type Roadmap struct {
	NextSteps         []string `mapstructure:"next_steps"`
	RecommendedTopics []string `mapstructure:"recommended_topics"`
	Timeline          string   `mapstructure:"timeline"`
}

// Assessment is the complete multi-section final report.
type Assessment struct {
	Verdict          Verdict    `mapstructure:"verdict"`
	HardSkills       HardSkills `mapstructure:"hard_skills"`
	SoftSkills       SoftSkills `mapstructure:"soft_skills"`
	Roadmap          Roadmap    `mapstructure:"roadmap"`
	DetailedFeedback string     `mapstructure:"detailed_feedback"`
}

// Compiler requests the structured assessment from the evaluator role and
// substitutes a fixed default when the capability fails or the session is too
// sparse to judge.
type Compiler struct {
	gen    ai.Generator
	logger *zap.Logger
}

// NewCompiler creates a Compiler backed by the provided generator.
func NewCompiler(gen ai.Generator, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{gen: gen, logger: logger}
}

// FinalReport compiles and renders the assessment. It never fails and never
// returns an empty document.
func (c *Compiler) FinalReport(ctx context.Context, sess *interview.Session) string {
	return Render(c.Compile(ctx, sess))
}

// Compile obtains the structured assessment. Sessions with zero recorded
// turns skip the capability entirely: there is nothing to assess.
func (c *Compiler) Compile(ctx context.Context, sess *interview.Session) *Assessment {
	if sess == nil || len(sess.History) == 0 {
		c.logger.Info("no recorded turns, using default assessment")
		return DefaultAssessment()
	}

	raw, err := c.gen.Generate(ctx, ai.RoleEvaluator, ai.Request{
		System: evaluatorSystemPrompt,
		User:   buildAssessmentContext(sess),
	})
	if err != nil {
		c.logger.Warn("evaluator call failed, using default assessment", zap.Error(err))
		return DefaultAssessment()
	}

	assessment := &Assessment{}
	if err := ai.DecodeRecord(raw, assessment, gapFromStringHook); err != nil {
		c.logger.Warn("evaluator returned unparseable payload, using default assessment",
			zap.Error(err),
		)
		return DefaultAssessment()
	}

	return assessment
}

// Models sometimes return knowledge gaps as bare strings instead of objects.
func gapFromStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(Gap{}) {
		return Gap{Gap: data.(string)}, nil
	}
	return data, nil
}

func buildAssessmentContext(sess *interview.Session) string {
	var b strings.Builder

	b.WriteString("Информация о кандидате:\n")
	fmt.Fprintf(&b, "Имя: %s\n", sess.CandidateName)
	fmt.Fprintf(&b, "Позиция: %s\n", sess.Position)
	fmt.Fprintf(&b, "Грейд: %s\n", sess.Grade)
	fmt.Fprintf(&b, "Опыт: %s\n\n", sess.Experience)

	summaryJSON, err := json.MarshalIndent(sess.Summary(), "", "  ")
	if err == nil {
		fmt.Fprintf(&b, "Статистика интервью:\n%s\n\n", summaryJSON)
	}

	b.WriteString("Полная история диалога:\n")
	for i, turn := range sess.History {
		fmt.Fprintf(&b, "Ход %d:\n", i+1)
		fmt.Fprintf(&b, "Вопрос: %s\n", turn.Question)
		fmt.Fprintf(&b, "Ответ: %s\n", turn.Answer)
		fmt.Fprintf(&b, "Мысли: %s\n\n", turn.InternalNote)
	}

	b.WriteString("Сформируй финальный отчет.")

	return b.String()
}

// DefaultAssessment is the fixed, fully populated report used when no real
// assessment is available. Every section is present so rendering never
// produces a partial document.
func DefaultAssessment() *Assessment {
	return &Assessment{
		Verdict: Verdict{
			Grade:                "Junior",
			HiringRecommendation: "No Hire",
			ConfidenceScore:      50,
			Summary:              "Недостаточно данных для полноценной оценки. Кандидат рано завершил интервью.",
		},
		HardSkills: HardSkills{
			TopicsCovered:   []string{"Базовые вопросы"},
			ConfirmedSkills: []string{"Базовые знания"},
			KnowledgeGaps: []Gap{
				{
					Topic:         "Завершение интервью",
					Gap:           "Кандидат рано завершил интервью",
					CorrectAnswer: "Рекомендуется пройти полное интервью для оценки навыков",
				},
			},
		},
		SoftSkills: SoftSkills{
			Clarity:    "5/10 - ответы были краткими",
			Honesty:    "6/10 - признал незнание некоторых тем",
			Engagement: "4/10 - низкая вовлеченность в диалог",
			Summary:    "Требуется больше данных для оценки",
		},
		Roadmap: Roadmap{
			NextSteps:         []string{"Пройти полное техническое интервью", "Изучить базовые концепции"},
			RecommendedTopics: []string{"Основы программирования", "Технологии из резюме"},
			Timeline:          "1-2 месяца подготовки",
		},
		DetailedFeedback: "Кандидат рано завершил интервью, что не позволило провести полноценную оценку. Рекомендуется подготовиться и пройти полное интервью.",
	}
}
