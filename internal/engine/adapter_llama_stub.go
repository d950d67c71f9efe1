//go:build !llama

package engine

// This file provides a no-CGO stub for the llama adapter. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real adapter lives in adapter_llama.go (tagged 'llama').

import (
	"context"
)

type llamaAdapter struct {
	ctxSize int
	threads int
}

// NewLlamaAdapter returns a stub that satisfies Adapter but refuses to load
// a model without the 'llama' build tag. Startup fails fast instead of
// serving mocked output.
func NewLlamaAdapter(ctxSize, threads int) Adapter {
	return &llamaAdapter{ctxSize: ctxSize, threads: threads}
}

type llamaSession struct{}

func (a *llamaAdapter) Load(modelPath string) (Session, error) {
	return nil, ErrEngineUnavailable("llama support not built (missing 'llama' build tag)")
}

func (s *llamaSession) Predict(ctx context.Context, prompt string, params PredictParams) (string, error) {
	// Unreachable in practice because Load returns an error, but keep the
	// failure explicit.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return "", ErrEngineUnavailable("llama support not built (missing 'llama' build tag)")
}

func (s *llamaSession) Close() error { return nil }
