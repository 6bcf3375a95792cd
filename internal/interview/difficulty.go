package interview

// Difficulty is the question difficulty tier consumed by the interviewer.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyFor classifies the cumulative arithmetic mean of all scores
// recorded so far. The policy is deliberately cumulative rather than
// recency-weighted: an extreme early score gets diluted as the interview
// lengthens, not decayed.
func DifficultyFor(scores []int) Difficulty {
	if len(scores) == 0 {
		return DifficultyMedium
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}
	mean := float64(sum) / float64(len(scores))

	switch {
	case mean > 80:
		return DifficultyHard
	case mean < 40:
		return DifficultyEasy
	default:
		return DifficultyMedium
	}
}
