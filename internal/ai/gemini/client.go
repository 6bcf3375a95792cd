package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// DefaultModel is used for any role without an explicit model configured.
	DefaultModel = "gemini-2.5-flash"

	defaultMaxTokens = 2000
	retryBaseDelay   = 2 * time.Second
	previewLogLength = 200
)

// Replaceable in tests to avoid real backoff delays.
var sleep = time.Sleep

// Models maps each interview role to a model identifier.
type Models struct {
	Interviewer string
	Observer    string
	Evaluator   string
}

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (c *genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return c.client.Chats.Create(ctx, model, config, history)
}

// Generator implements ai.Generator on top of the Google GenAI client. Each
// role may use a distinct model; token and temperature limits are shared.
type Generator struct {
	chats       chatCreator
	models      Models
	maxTokens   int32
	temperature float32
	maxRetries  int
	logger      *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, models Models, maxTokens int, temperature float64, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		chats:       &genaiChats{client: client},
		models:      models,
		maxTokens:   int32(maxTokens),
		temperature: float32(temperature),
		maxRetries:  maxRetries,
		logger:      logger,
	}, nil
}

// Generate sends a single system+user exchange to the model configured for
// the role and returns the concatenated textual response.
func (g *Generator) Generate(ctx context.Context, role ai.Role, req ai.Request) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	user := strings.TrimSpace(req.User)
	if user == "" {
		return "", errors.New("user content must not be empty")
	}

	model := g.ModelFor(role)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxTokens,
	}
	if system := strings.TrimSpace(req.System); system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if g.temperature > 0 {
		config.Temperature = genai.Ptr(g.temperature)
	}

	g.logger.Debug("gemini generate content request",
		zap.String("role", string(role)),
		zap.String("model", model),
		zap.String("prompt_preview", logger.TruncateForLog(user, previewLogLength)),
	)

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, model, config, nil)
		if err != nil {
			return "", fmt.Errorf("create chat session: %w", err)
		}

		resp, err := chat.SendMessage(ctx, genai.Part{Text: user})
		if err == nil {
			output := collectText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			g.logger.Debug("gemini generate content response",
				zap.String("role", string(role)),
				zap.String("response_preview", logger.TruncateForLog(output, previewLogLength)),
			)
			return output, nil
		}

		lastErr = err
		if attempt == g.maxRetries || !isRetryable(err) {
			break
		}

		g.logger.Warn("temporary gemini error, retrying",
			zap.String("role", string(role)),
			zap.String("model", model),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		sleep(retryBaseDelay * time.Duration(attempt))
	}

	return "", fmt.Errorf("generate content for role %s: %w", role, lastErr)
}

// ModelFor returns the model identifier configured for the role.
func (g *Generator) ModelFor(role ai.Role) string {
	var model string
	switch role {
	case ai.RoleInterviewer:
		model = g.models.Interviewer
	case ai.RoleObserver:
		model = g.models.Observer
	case ai.RoleEvaluator:
		model = g.models.Evaluator
	}

	if strings.TrimSpace(model) == "" {
		return DefaultModel
	}
	return model
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

// Only server-side failures are worth another attempt. Quota errors carry
// their own retry delays which are usually longer than an interview turn.
func isRetryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code >= 500
}
