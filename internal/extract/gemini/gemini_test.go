package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", "")
	c.BaseURL = srv.URL
	return c
}

func TestExtract(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		inner := `{"description":"coffee","category":"Entertainment","amount":150,"type":"expense"}`
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": inner}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	cand, err := c.Extract(context.Background(), "Bought coffee ₹150")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if cand.Description != "coffee" || cand.Category != "Entertainment" || cand.Amount != 150 || cand.Kind != "expense" {
		t.Fatalf("unexpected candidate: %+v", cand)
	}

	if gotPath != "/"+DefaultModel+":generateContent" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Fatalf("unexpected generation config: %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.Contents) != 1 || !strings.Contains(gotBody.Contents[0].Parts[0].Text, "Bought coffee") {
		t.Fatalf("prompt missing message text: %+v", gotBody.Contents)
	}
	required := gotBody.GenerationConfig.ResponseSchema.Required
	if len(required) != 4 {
		t.Fatalf("expected four required fields, got %v", required)
	}
}

func TestExtractHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	if _, err := c.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestExtractMalformedEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	if _, err := c.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestExtractEmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})
	if _, err := c.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error on empty candidates")
	}
}

func TestExtractMalformedCandidateJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": "{broken"}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	if _, err := c.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error on malformed candidate JSON")
	}
}
