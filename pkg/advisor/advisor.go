// Package advisor asks an LLM to explain a batch of logs. It is a
// read-only consumer of the core: it renders statistics, journeys,
// patterns and a relevance-ranked excerpt into a prompt context, then
// makes a single chat-completion call.
package advisor

import (
	"context"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/openrouter"
	"github.com/cloudwego/eino/schema"
	"github.com/go-errors/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"logsift/pkg/config"
	"logsift/pkg/session"
)

const systemPrompt = `You are an expert log analysis assistant. Your role is to:

1. Analyze application logs to identify errors, exceptions, and issues
2. Track user journeys through API calls
3. Identify patterns and correlations in errors
4. Pinpoint where things went wrong in API sequences
5. Provide actionable insights and recommendations

When analyzing logs:
- Look for common identifiers (user_id, username, trace_id, request_id, session_id, IP addresses)
- Track API call sequences for specific users
- Identify the transition point from successful to failed requests
- Analyze error messages and exceptions
- Consider timing and sequence of events
- Provide clear, concise explanations

Always structure your responses with:
- Summary of findings
- Specific details (line numbers, timestamps, API endpoints)
- Root cause analysis
- Recommendations for fixing the issue`

// Config holds configuration for the advisor.
type Config struct {
	APIKey     string
	Model      string
	Depth      string
	HTTPClient *http.Client
}

// Analyze builds the analysis context for the question and sends it to
// the LLM. The actor, when one can be detected inside the question, gets
// a dedicated journey section in the context.
func Analyze(ctx context.Context, cfg Config, sess *session.Session, question string) (string, error) {
	if cfg.APIKey == "" {
		return "", errors.New("advisor: API key is required")
	}
	cfg.Model = config.ResolveModel(cfg.Model)
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	prompt := BuildContext(sess, question, cfg.Depth)

	temperature := float32(0.2)
	chatModel, err := openrouter.NewChatModel(ctx, &openrouter.Config{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &temperature,
		HTTPClient:  cfg.HTTPClient,
	})
	if err != nil {
		return "", errors.Errorf("create chat model: %w", err)
	}

	resp, err := chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	})
	if err != nil {
		return "", errors.Errorf("generate: %w", err)
	}
	return resp.Content, nil
}
