package interview

import (
	"fmt"
	"strings"

	_ "embed"
)

// System prompts for the interviewer and observer roles. The report prompt
// lives with the report compiler.

//go:embed observer_system.md
var observerSystemPrompt string

//go:embed interviewer_opening.md
var openingSystemPrompt string

//go:embed interviewer_next.md
var nextQuestionSystemPrompt string

//go:embed interviewer_redirect.md
var redirectSystemPrompt string

func buildObserverContext(sess *Session, answer string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Текущая тема: %s\n", sess.CurrentTopic)
	fmt.Fprintf(&b, "Позиция кандидата: %s\n", sess.Position)
	fmt.Fprintf(&b, "Грейд: %s\n\n", sess.Grade)

	b.WriteString("Контекст диалога:\n")
	for _, turn := range sess.RecentTurns(observerContextTurns) {
		fmt.Fprintf(&b, "Интервьюер: %s\n", turn.Question)
		fmt.Fprintf(&b, "Кандидат: %s\n\n", turn.Answer)
	}

	fmt.Fprintf(&b, "Ответ кандидата: %s\n\n", answer)
	b.WriteString("Проанализируй ответ.")

	return b.String()
}

func buildOpeningContext(sess *Session) string {
	var b strings.Builder

	b.WriteString("Кандидат:\n")
	fmt.Fprintf(&b, "Имя: %s\n", sess.CandidateName)
	fmt.Fprintf(&b, "Позиция: %s\n", sess.Position)
	fmt.Fprintf(&b, "Грейд: %s\n", sess.Grade)
	fmt.Fprintf(&b, "Опыт: %s\n\n", sess.Experience)
	b.WriteString("Сгенерируй приветственное сообщение и первый вопрос.")

	return b.String()
}

func buildNextQuestionContext(sess *Session, judgmentJSON string) string {
	var b strings.Builder

	b.WriteString("Информация о кандидате:\n")
	fmt.Fprintf(&b, "Позиция: %s\n", sess.Position)
	fmt.Fprintf(&b, "Грейд: %s\n", sess.Grade)
	fmt.Fprintf(&b, "Опыт: %s\n\n", sess.Experience)

	fmt.Fprintf(&b, "Текущий уровень сложности: %s\n", sess.Difficulty)
	fmt.Fprintf(&b, "Пройденные темы: %s\n\n", strings.Join(sess.TopicsCovered, ", "))

	fmt.Fprintf(&b, "Анализ наблюдателя:\n%s\n\n", judgmentJSON)

	b.WriteString("Недавний диалог:\n")
	for _, turn := range sess.RecentTurns(directorContextTurns) {
		fmt.Fprintf(&b, "Интервьюер: %s\n", turn.Question)
		fmt.Fprintf(&b, "Кандидат: %s\n", turn.Answer)
		fmt.Fprintf(&b, "Мысли: %s\n\n", turn.InternalNote)
	}

	b.WriteString("Сгенерируй следующий вопрос.")

	return b.String()
}

func buildRedirectContext(sess *Session, lastMessage string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Кандидат сказал: %s\n\n", lastMessage)
	fmt.Fprintf(&b, "Верни кандидата к техническому интервью и задай вопрос по теме %s.", sess.Position)

	return b.String()
}
