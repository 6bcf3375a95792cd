package report

import (
	"fmt"
	"strings"
)

const divider = "============================================================"

// Render flattens the assessment into the final plain-text document. Section
// order is fixed: verdict, hard skills, soft skills, roadmap, detailed
// feedback. Missing optional sub-fields are omitted, never rendered as
// placeholders.
func Render(a *Assessment) string {
	if a == nil {
		return Render(DefaultAssessment())
	}

	lines := []string{"ФИНАЛЬНЫЙ ФИДБЭК"}

	lines = append(lines, "", "ВЕРДИКТ:")
	lines = append(lines, fmt.Sprintf("Уровень: %s", orNA(a.Verdict.Grade)))
	lines = append(lines, fmt.Sprintf("Рекомендация: %s", orNA(a.Verdict.HiringRecommendation)))
	lines = append(lines, fmt.Sprintf("Уверенность: %d%%", a.Verdict.ConfidenceScore))
	lines = append(lines, fmt.Sprintf("Резюме: %s", a.Verdict.Summary))

	lines = append(lines, "", "АНАЛИЗ HARD SKILLS:")
	if len(a.HardSkills.TopicsCovered) > 0 {
		lines = append(lines, fmt.Sprintf("Пройденные темы: %s", strings.Join(a.HardSkills.TopicsCovered, ", ")))
	}
	if len(a.HardSkills.ConfirmedSkills) > 0 {
		lines = append(lines, "", "Подтвержденные навыки:")
		for _, skill := range a.HardSkills.ConfirmedSkills {
			lines = append(lines, fmt.Sprintf("  • %s", skill))
		}
	}
	if len(a.HardSkills.KnowledgeGaps) > 0 {
		lines = append(lines, "", "Пробелы в знаниях:")
		for _, gap := range a.HardSkills.KnowledgeGaps {
			if gap.Topic != "" {
				lines = append(lines, fmt.Sprintf("  • Тема: %s", gap.Topic))
			}
			if gap.Gap != "" {
				lines = append(lines, fmt.Sprintf("    Пробел: %s", gap.Gap))
			}
			if gap.CorrectAnswer != "" {
				lines = append(lines, fmt.Sprintf("    Правильный ответ: %s", gap.CorrectAnswer))
			}
		}
	}

	lines = append(lines, "", "АНАЛИЗ SOFT SKILLS:")
	lines = append(lines, fmt.Sprintf("Ясность изложения: %s", orNA(a.SoftSkills.Clarity)))
	lines = append(lines, fmt.Sprintf("Честность: %s", orNA(a.SoftSkills.Honesty)))
	lines = append(lines, fmt.Sprintf("Вовлеченность: %s", orNA(a.SoftSkills.Engagement)))
	lines = append(lines, fmt.Sprintf("Общая оценка: %s", a.SoftSkills.Summary))

	lines = append(lines, "", "ПЕРСОНАЛЬНЫЙ ROADMAP:")
	if len(a.Roadmap.NextSteps) > 0 {
		lines = append(lines, "Следующие шаги:")
		for _, step := range a.Roadmap.NextSteps {
			lines = append(lines, fmt.Sprintf("  • %s", step))
		}
	}
	if len(a.Roadmap.RecommendedTopics) > 0 {
		lines = append(lines, "", "Рекомендуемые темы для изучения:")
		for _, topic := range a.Roadmap.RecommendedTopics {
			lines = append(lines, fmt.Sprintf("  • %s", topic))
		}
	}
	if a.Roadmap.Timeline != "" {
		lines = append(lines, "", fmt.Sprintf("Рекомендуемые сроки: %s", a.Roadmap.Timeline))
	}

	if a.DetailedFeedback != "" {
		lines = append(lines, "", divider, "ДЕТАЛЬНЫЙ ФИДБЭК:", divider, a.DetailedFeedback)
	}

	return strings.Join(lines, "\n")
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}
