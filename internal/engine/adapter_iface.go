package engine

import "context"

// Adapter abstracts the model runtime used by the Engine.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type Adapter interface {
	// Load opens the model file and returns a session ready for prediction.
	// Loading must fail fast on a bad path or corrupt file.
	Load(modelPath string) (Session, error)
}

// Session is a loaded model accepting prediction calls.
type Session interface {
	// Predict runs a blocking completion for prompt and returns the raw
	// generated continuation. Implementations must stop generating when any
	// stop sequence is matched or the context is canceled.
	Predict(ctx context.Context, prompt string, params PredictParams) (string, error)
	// Close releases the model resources.
	Close() error
}

// PredictParams captures generation parameters passed to the adapter.
// Values pass through unvalidated; the runtime's own error behavior applies.
type PredictParams struct {
	MaxTokens   int
	Temperature float64
	Stop        []string
}
