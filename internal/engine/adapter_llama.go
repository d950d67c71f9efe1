//go:build llama

package engine

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaAdapter holds the options used to initialize a model instance.
type llamaAdapter struct {
	ctxSize int
	threads int
}

// NewLlamaAdapter returns an Adapter backed by go-llama.cpp.
func NewLlamaAdapter(ctxSize, threads int) Adapter {
	return &llamaAdapter{ctxSize: ctxSize, threads: threads}
}

// llamaSession owns the loaded model.
type llamaSession struct {
	model   *llama.LLama
	threads int
}

func (a *llamaAdapter) Load(modelPath string) (Session, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	m, err := llama.New(modelPath, llama.SetContext(a.ctxSize))
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: a.threads}, nil
}

func (s *llamaSession) Predict(ctx context.Context, prompt string, params PredictParams) (string, error) {
	if s.model == nil {
		return "", errors.New("llama model not initialized")
	}
	// Abort generation when the context is canceled.
	s.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	po := []llama.PredictOption{
		llama.SetTokens(maxInt(1, params.MaxTokens)),
		llama.SetThreads(maxInt(1, s.threads)),
		llama.SetTemperature(float32(params.Temperature)),
	}
	if len(params.Stop) > 0 {
		po = append(po, llama.SetStopWords(params.Stop...))
	}
	text, err := s.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}

func (s *llamaSession) Close() error {
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
