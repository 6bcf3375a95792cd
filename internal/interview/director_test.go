package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/hh-interviewer/internal/ai"

	"go.uber.org/zap"
)

func TestNextRegistersTopicAndDeduplicates(t *testing.T) {
	stub := newStubGenerator()
	stub.enqueue(ai.RoleInterviewer,
		`{"visible_message": "Расскажи про каналы", "internal_thought": "копаем глубже", "topic": "concurrency"}`,
		`{"visible_message": "А теперь про select", "internal_thought": "еще глубже", "topic": "concurrency"}`,
	)

	sess := mustSession(t)
	director := NewDirector(stub, zap.NewNop())
	judgment := &ai.Judgment{ConfidenceScore: 70}

	first := director.Next(context.Background(), sess, judgment)
	second := director.Next(context.Background(), sess, judgment)

	if first.VisibleMessage == "" || second.VisibleMessage == "" {
		t.Fatal("expected visible messages")
	}
	if len(sess.TopicsCovered) != 1 {
		t.Fatalf("expected deduplicated topic list, got %v", sess.TopicsCovered)
	}
	if sess.CurrentTopic != "concurrency" {
		t.Fatalf("expected current topic set, got %q", sess.CurrentTopic)
	}
}

func TestRedirectLeavesTopicStateUntouched(t *testing.T) {
	stub := newStubGenerator()
	stub.enqueue(ai.RoleInterviewer,
		`{"visible_message": "Вернемся к интервью", "internal_thought": "кандидат ушел от темы", "topic": "salary"}`,
	)

	sess := mustSession(t)
	sess.AddTopic("databases")
	sess.CurrentTopic = "databases"

	director := NewDirector(stub, zap.NewNop())
	question := director.Redirect(context.Background(), sess, "а какая у вас зарплата?")

	if question.Topic != "" {
		t.Fatalf("redirect must not carry a topic, got %q", question.Topic)
	}
	if sess.CurrentTopic != "databases" {
		t.Fatalf("current topic changed on redirect: %q", sess.CurrentTopic)
	}
	if len(sess.TopicsCovered) != 1 || sess.TopicsCovered[0] != "databases" {
		t.Fatalf("topics covered changed on redirect: %v", sess.TopicsCovered)
	}
}

func TestDirectorFallsBackWhenGeneratorFails(t *testing.T) {
	stub := newStubGenerator()
	stub.fail(ai.RoleInterviewer, errors.New("network down"))

	sess := mustSession(t)
	director := NewDirector(stub, zap.NewNop())

	opening := director.Opening(context.Background(), sess)
	if !opening.Fallback || opening.VisibleMessage == "" {
		t.Fatalf("expected fallback opening with copy, got %+v", opening)
	}

	redirect := director.Redirect(context.Background(), sess, "msg")
	if !redirect.Fallback || redirect.VisibleMessage == "" {
		t.Fatalf("expected fallback redirect with copy, got %+v", redirect)
	}

	next := director.Next(context.Background(), sess, &ai.Judgment{})
	if !next.Fallback || next.VisibleMessage == "" {
		t.Fatalf("expected fallback question with copy, got %+v", next)
	}
	if len(sess.TopicsCovered) != 0 {
		t.Fatalf("fallback question must not register topics, got %v", sess.TopicsCovered)
	}
}

func TestNextContextCarriesDifficultyAndTopics(t *testing.T) {
	stub := newStubGenerator()
	stub.enqueue(ai.RoleInterviewer,
		`{"visible_message": "Вопрос", "internal_thought": "мысль", "topic": "sql"}`,
	)

	sess := mustSession(t)
	sess.AddTopic("concurrency")
	sess.RecordConfidence(90) // hard

	director := NewDirector(stub, zap.NewNop())
	director.Next(context.Background(), sess, &ai.Judgment{ConfidenceScore: 90})

	if !strings.Contains(stub.lastUser, "hard") {
		t.Fatalf("director context is missing the difficulty tier: %s", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, "concurrency") {
		t.Fatalf("director context is missing covered topics: %s", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, "confidence_score") {
		t.Fatalf("director context is missing the observer judgment: %s", stub.lastUser)
	}
}
