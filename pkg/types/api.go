package types

// Response format values accepted by GenerateRequest.ResponseFormat.
// Any other value is treated as FormatText.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// GenerateRequest is the payload for POST /generate.
type GenerateRequest struct {
	// Required prompt text to generate a completion for.
	// example: What is 2+2?
	Prompt string `json:"prompt" example:"What is 2+2?"`
	// Optional system prompt. When set, the prompt is wrapped as a chat transcript.
	// example: You are terse.
	SystemPrompt string `json:"systemPrompt,omitempty" example:"You are terse."`
	// Maximum number of new tokens to generate. Defaults to 1024 when omitted.
	// example: 128
	MaxTokens *int `json:"max_tokens,omitempty" example:"128"`
	// Sampling temperature (higher = more random). Defaults to 0.3 when omitted.
	// example: 0.3
	Temperature *float64 `json:"temperature,omitempty" example:"0.3"`
	// Desired output format: "text" or "json". Defaults to "text".
	// example: json
	ResponseFormat string `json:"response_format,omitempty" example:"json"`
}

// GenerateResponse is returned by POST /generate on success.
type GenerateResponse struct {
	// Generated text, post-processed according to the requested format.
	// example: {"a":1}
	Text string `json:"text" example:"{\"a\":1}"`
	// Token count placeholder. Always a fixed constant in the current design.
	// example: 10
	TokenCount int `json:"tokenCount" example:"10"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Always "ok" when the server is up.
	// example: ok
	Status string `json:"status" example:"ok"`
	// Basename of the loaded model file.
	// example: tinyllama-1.1b-chat-v1.0.Q4_K_S.gguf
	Model string `json:"model" example:"tinyllama-1.1b-chat-v1.0.Q4_K_S.gguf"`
}

// ErrorResponse is the JSON error payload for failed requests.
type ErrorResponse struct {
	// Human-readable failure reason.
	// example: Generation error: out of memory
	Detail string `json:"detail" example:"Generation error: out of memory"`
}
