package engine

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Engine wraps one loaded model session for the lifetime of the process.
type Engine struct {
	// mu serializes Predict calls: a llama.cpp context keeps internal
	// decode state and is not safe for concurrent use.
	mu        sync.Mutex
	session   Session
	modelPath string
}

// New loads the model at modelPath through the adapter. A load failure is
// returned to the caller and is fatal at startup.
func New(a Adapter, modelPath string) (*Engine, error) {
	sess, err := a.Load(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}
	return &Engine{session: sess, modelPath: modelPath}, nil
}

// ModelName returns the basename of the loaded model file, as reported by
// GET /health.
func (e *Engine) ModelName() string {
	return filepath.Base(e.modelPath)
}

// Ready reports whether the model session is available.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Close releases the model session. The Engine must not be used afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	err := e.session.Close()
	e.session = nil
	return err
}
