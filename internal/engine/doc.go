// Package engine owns the loaded llama.cpp model and the per-request
// generation pipeline: prompt composition, inference, and format-aware
// post-processing of the model output.
//
// Exactly one Engine exists per process. The model is loaded once at
// startup and shared by all requests; inference calls are serialized
// because llama.cpp contexts are not reentrant.
package engine
