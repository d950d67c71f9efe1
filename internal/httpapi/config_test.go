package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSetMaxBodyBytes(t *testing.T) {
	old := maxBodyBytes
	defer SetMaxBodyBytes(old)

	SetMaxBodyBytes(64)
	if maxBodyBytes != 64 {
		t.Fatalf("maxBodyBytes=%d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("zero should restore default, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(-5)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("negative should restore default, got %d", maxBodyBytes)
	}
}

func TestBodyLimitEnforced(t *testing.T) {
	old := maxBodyBytes
	defer SetMaxBodyBytes(old)
	SetMaxBodyBytes(32)

	r := NewMux(&mockService{})
	big := `{"prompt":"` + strings.Repeat("x", 1024) + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewBufferString(big))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400 for oversized body", w.Code)
	}
}

func TestSetCORSOptionsCopiesOrigins(t *testing.T) {
	defer SetCORSOptions(true, nil)
	in := []string{"http://a"}
	SetCORSOptions(true, in)
	in[0] = "http://mutated"
	if corsAllowedOrigins[0] != "http://a" {
		t.Fatalf("origins not copied: %v", corsAllowedOrigins)
	}
}
