package interview

import (
	"testing"
)

func TestNewSessionValidatesIdentityFields(t *testing.T) {
	cases := []struct {
		name       string
		candidate  string
		position   string
		grade      string
		experience string
		wantErr    bool
	}{
		{name: "complete", candidate: "A", position: "Backend", grade: "Middle", experience: "3y"},
		{name: "missing name", candidate: " ", position: "Backend", grade: "Middle", experience: "3y", wantErr: true},
		{name: "missing position", candidate: "A", position: "", grade: "Middle", experience: "3y", wantErr: true},
		{name: "missing grade", candidate: "A", position: "Backend", grade: "", experience: "3y", wantErr: true},
		{name: "missing experience", candidate: "A", position: "Backend", grade: "Middle", experience: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := NewSession(tc.candidate, tc.position, tc.grade, tc.experience)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sess.Difficulty != DifficultyMedium {
				t.Fatalf("expected medium difficulty, got %s", sess.Difficulty)
			}
			if sess.QuestionCount != 0 {
				t.Fatalf("expected question count 0, got %d", sess.QuestionCount)
			}
		})
	}
}

func TestRecordTurnKeepsCountInSyncWithHistory(t *testing.T) {
	sess := mustSession(t)

	for i := 0; i < 5; i++ {
		sess.RecordTurn("q", "a", "note")
	}

	if sess.QuestionCount != 5 {
		t.Fatalf("expected question count 5, got %d", sess.QuestionCount)
	}
	if len(sess.History) != sess.QuestionCount {
		t.Fatalf("history length %d diverged from question count %d", len(sess.History), sess.QuestionCount)
	}
}

func TestLabelSetsAreIdempotent(t *testing.T) {
	sess := mustSession(t)

	sess.AddTopic("goroutines")
	sess.AddTopic("goroutines")
	sess.AddTopic("  ")
	sess.AddKnowledgeGap("channels")
	sess.AddKnowledgeGap("channels")
	sess.AddConfirmedSkill("sql")
	sess.AddConfirmedSkill("sql")

	if len(sess.TopicsCovered) != 1 {
		t.Fatalf("expected 1 topic, got %v", sess.TopicsCovered)
	}
	if len(sess.KnowledgeGaps) != 1 {
		t.Fatalf("expected 1 gap, got %v", sess.KnowledgeGaps)
	}
	if len(sess.ConfirmedSkills) != 1 {
		t.Fatalf("expected 1 skill, got %v", sess.ConfirmedSkills)
	}
}

func TestRecordConfidenceClampsOutOfRangeScores(t *testing.T) {
	sess := mustSession(t)

	sess.RecordConfidence(-20)
	sess.RecordConfidence(150)

	if sess.ConfidenceScores[0] != 0 {
		t.Fatalf("expected -20 clamped to 0, got %d", sess.ConfidenceScores[0])
	}
	if sess.ConfidenceScores[1] != 100 {
		t.Fatalf("expected 150 clamped to 100, got %d", sess.ConfidenceScores[1])
	}
}

func TestSummaryMeanConfidenceIsZeroWithoutScores(t *testing.T) {
	sess := mustSession(t)

	summary := sess.Summary()
	if summary.AvgConfidence != 0 {
		t.Fatalf("expected 0 mean confidence, got %f", summary.AvgConfidence)
	}

	sess.RecordConfidence(90)
	sess.RecordConfidence(10)

	summary = sess.Summary()
	if summary.AvgConfidence != 50 {
		t.Fatalf("expected mean confidence 50, got %f", summary.AvgConfidence)
	}
}

func TestRecentTurnsReturnsAtMostN(t *testing.T) {
	sess := mustSession(t)
	sess.RecordTurn("q1", "a1", "")
	sess.RecordTurn("q2", "a2", "")
	sess.RecordTurn("q3", "a3", "")

	recent := sess.RecentTurns(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(recent))
	}
	if recent[0].Question != "q2" || recent[1].Question != "q3" {
		t.Fatalf("expected the two most recent turns oldest first, got %+v", recent)
	}

	if got := sess.RecentTurns(10); len(got) != 3 {
		t.Fatalf("expected full history when n exceeds it, got %d", len(got))
	}
}

func mustSession(t *testing.T) *Session {
	t.Helper()
	sess, err := NewSession("A", "Backend", "Middle", "3y")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return sess
}
