package engine

import (
	"context"
	"time"

	"github.com/nate-ooley/HandyBoss/pkg/types"
)

// FixedTokenCount is reported as tokenCount in every successful response.
// It is a deliberate placeholder, not a measured value: the runtime does not
// expose usage counts through this path, and callers only check presence.
const FixedTokenCount = 10

// Generation defaults applied when the request omits the fields.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.3
)

// stopSequences halt generation at a new user turn or a double line-break.
var stopSequences = []string{"User:", "\n\n"}

// Generate runs the full pipeline for one request: compose the prompt,
// invoke the model, post-process the output. Only the invocation can fail;
// composition and formatting never return errors.
func (e *Engine) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	format := req.ResponseFormat
	if format != types.FormatJSON {
		format = types.FormatText
	}
	maxTokens := DefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	prompt := composePrompt(req.Prompt, req.SystemPrompt, format)

	start := time.Now()
	raw, err := e.invoke(ctx, prompt, maxTokens, temperature)
	generationDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	if err != nil {
		generationsTotal.WithLabelValues(format, "error").Inc()
		return types.GenerateResponse{}, err
	}
	generationsTotal.WithLabelValues(format, "ok").Inc()

	return types.GenerateResponse{
		Text:       formatOutput(raw, format),
		TokenCount: FixedTokenCount,
	}, nil
}

// invoke calls the model under the session lock. Parameters pass through
// unvalidated; the runtime's own error behavior applies. No timeout is
// imposed here.
func (e *Engine) invoke(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return "", ErrEngineUnavailable("model not loaded")
	}
	return e.session.Predict(ctx, prompt, PredictParams{
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stop:        stopSequences,
	})
}
