// Package transcript persists the per-session interview record: who was
// interviewed, every turn, and the final feedback text.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultDir = "logs"

// Turn is one recorded exchange as it appears in the saved log.
type Turn struct {
	TurnID              int    `json:"turn_id"`
	AgentVisibleMessage string `json:"agent_visible_message"`
	UserMessage         string `json:"user_message"`
	InternalThoughts    string `json:"internal_thoughts"`
}

// Log is the full persisted record of one interview session.
type Log struct {
	ParticipantName string `json:"participant_name"`
	Timestamp       string `json:"timestamp"`
	Turns           []Turn `json:"turns"`
	FinalFeedback   string `json:"final_feedback"`
}

// New creates an empty log stamped with the current time.
func New(participantName string) *Log {
	return &Log{
		ParticipantName: participantName,
		Timestamp:       time.Now().Format(time.RFC3339),
		Turns:           []Turn{},
	}
}

// AddTurn appends one exchange to the record.
func (l *Log) AddTurn(id int, visibleMessage, userMessage, internalThoughts string) {
	l.Turns = append(l.Turns, Turn{
		TurnID:              id,
		AgentVisibleMessage: visibleMessage,
		UserMessage:         userMessage,
		InternalThoughts:    internalThoughts,
	})
}

// SetFinalFeedback stores the rendered report text.
func (l *Log) SetFinalFeedback(feedback string) {
	l.FinalFeedback = feedback
}

// Save writes the log as indented JSON and returns the full path. An empty
// filename gets a generated one based on the participant and timestamp; an
// empty dir falls back to "logs". The directory is created when missing.
func (l *Log) Save(dir, filename string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	if strings.TrimSpace(filename) == "" {
		name := strings.ReplaceAll(strings.TrimSpace(l.ParticipantName), " ", "_")
		stamp := time.Now().Format("20060102_150405")
		filename = fmt.Sprintf("interview_log_%s_%s.json", name, stamp)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal interview log: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write interview log: %w", err)
	}

	return path, nil
}
