package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/nate-ooley/HandyBoss/internal/engine"
	"github.com/nate-ooley/HandyBoss/internal/httpapi"
	"github.com/nate-ooley/HandyBoss/pkg/types"
)

// scriptedSession returns a canned completion and records the prompt it saw.
type scriptedSession struct {
	out        string
	err        error
	lastPrompt string
}

func (s *scriptedSession) Predict(ctx context.Context, prompt string, params engine.PredictParams) (string, error) {
	s.lastPrompt = prompt
	return s.out, s.err
}

func (s *scriptedSession) Close() error { return nil }

type scriptedAdapter struct{ sess *scriptedSession }

func (a *scriptedAdapter) Load(modelPath string) (engine.Session, error) { return a.sess, nil }

func newServer(t *testing.T, sess *scriptedSession) *httptest.Server {
	t.Helper()
	eng, err := engine.New(&scriptedAdapter{sess: sess}, "/models/tinyllama-1.1b-chat-v1.0.Q4_K_S.gguf")
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(eng))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { _ = eng.Close() })
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp, raw
}

func TestPlainTextGeneration(t *testing.T) {
	sess := &scriptedSession{out: " 4 "}
	srv := newServer(t, sess)

	resp, raw := postJSON(t, srv.URL+"/generate", types.GenerateRequest{Prompt: "What is 2+2?"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
	var body types.GenerateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Text != "4" || body.TokenCount != engine.FixedTokenCount {
		t.Fatalf("unexpected body: %+v", body)
	}
	if sess.lastPrompt != "What is 2+2?" {
		t.Fatalf("prompt = %q, want raw prompt unchanged", sess.lastPrompt)
	}
}

func TestJSONFormatFallsBackToRawText(t *testing.T) {
	sess := &scriptedSession{out: "colors are red, green, blue"}
	srv := newServer(t, sess)

	resp, raw := postJSON(t, srv.URL+"/generate", types.GenerateRequest{
		Prompt:         "List three colors",
		SystemPrompt:   "You are terse.",
		ResponseFormat: types.FormatJSON,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
	var body types.GenerateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Text != "colors are red, green, blue" {
		t.Fatalf("text = %q, want raw fallback", body.Text)
	}
	if !strings.Contains(sess.lastPrompt, "System: You are terse.\nUser: List three colors\nAssistant:") {
		t.Fatalf("prompt = %q, want chat transcript", sess.lastPrompt)
	}
	if !strings.Contains(sess.lastPrompt, "Respond with valid JSON only:") {
		t.Fatalf("prompt = %q, want JSON instruction", sess.lastPrompt)
	}
}

func TestJSONFormatExtractsObject(t *testing.T) {
	sess := &scriptedSession{out: `Sure! {"a": 1, "b": 2} thanks`}
	srv := newServer(t, sess)

	resp, raw := postJSON(t, srv.URL+"/generate", types.GenerateRequest{
		Prompt:         "p",
		ResponseFormat: types.FormatJSON,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
	var body types.GenerateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(body.Text), &v); err != nil {
		t.Fatalf("text not valid JSON: %q", body.Text)
	}
	want := map[string]any{"a": float64(1), "b": float64(2)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func TestEngineFailureReturns500(t *testing.T) {
	sess := &scriptedSession{err: errors.New("ggml assert failed")}
	srv := newServer(t, sess)

	resp, raw := postJSON(t, srv.URL+"/generate", types.GenerateRequest{Prompt: "p"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(body.Detail, "Generation error:") {
		t.Fatalf("detail = %q", body.Detail)
	}
}

func TestHealthReportsModelBasename(t *testing.T) {
	srv := newServer(t, &scriptedSession{out: "x"})
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var body types.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Status != "ok" || body.Model != "tinyllama-1.1b-chat-v1.0.Q4_K_S.gguf" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestServiceSurvivesFailedGeneration(t *testing.T) {
	sess := &scriptedSession{err: errors.New("transient")}
	srv := newServer(t, sess)

	if resp, _ := postJSON(t, srv.URL+"/generate", types.GenerateRequest{Prompt: "p"}); resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	sess.err = nil
	sess.out = "recovered"
	resp, raw := postJSON(t, srv.URL+"/generate", types.GenerateRequest{Prompt: "p"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
	var body types.GenerateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Text != "recovered" {
		t.Fatalf("text = %q", body.Text)
	}
}
