package interview

import "testing"

func TestDifficultyForCumulativeMean(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		want   Difficulty
	}{
		{name: "no scores", scores: nil, want: DifficultyMedium},
		{name: "high scores", scores: []int{90, 90}, want: DifficultyHard},
		{name: "extremes average out", scores: []int{90, 10}, want: DifficultyMedium},
		{name: "low scores", scores: []int{30, 30, 30}, want: DifficultyEasy},
		{name: "boundary 80 stays medium", scores: []int{80}, want: DifficultyMedium},
		{name: "boundary 40 stays medium", scores: []int{40}, want: DifficultyMedium},
		{name: "just above 80", scores: []int{81}, want: DifficultyHard},
		{name: "just below 40", scores: []int{39}, want: DifficultyEasy},
		{name: "early spike diluted", scores: []int{100, 50, 50, 50, 50}, want: DifficultyMedium},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DifficultyFor(tc.scores); got != tc.want {
				t.Fatalf("DifficultyFor(%v) = %s, want %s", tc.scores, got, tc.want)
			}
		})
	}
}

func TestRecordConfidenceRederivesDifficulty(t *testing.T) {
	sess := mustSession(t)

	sess.RecordConfidence(90)
	if sess.Difficulty != DifficultyHard {
		t.Fatalf("expected hard after single 90, got %s", sess.Difficulty)
	}

	sess.RecordConfidence(10)
	if sess.Difficulty != DifficultyMedium {
		t.Fatalf("expected medium after 90+10, got %s", sess.Difficulty)
	}
}
