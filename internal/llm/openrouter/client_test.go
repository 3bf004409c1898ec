package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobos-backend/internal/llm"
)

type staticKey string

func (k staticKey) APIKey(ctx context.Context) (string, error) {
	return string(k), nil
}

func testRequest() llm.Request {
	return llm.Request{
		Model:       "openai/gpt-4o-mini",
		Messages:    []llm.Message{{Role: "user", Content: "hello"}},
		Temperature: 0.1,
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want bearer key", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, staticKey("sk-test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hi there" {
		t.Fatalf("Complete = %q, want %q", got, "hi there")
	}
	if gotBody["model"] != "openai/gpt-4o-mini" {
		t.Fatalf("request model = %v", gotBody["model"])
	}
	if _, ok := gotBody["response_format"]; ok {
		t.Fatal("response_format sent without JSONObject")
	}
}

func TestCompleteSendsResponseFormat(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{}})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, staticKey("sk-test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	req := testRequest()
	req.JSONObject = true
	got, err := client.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty content for empty choices, got %q", got)
	}
	format, ok := gotBody["response_format"].(map[string]any)
	if !ok || format["type"] != "json_object" {
		t.Fatalf("response_format = %v, want json_object", gotBody["response_format"])
	}
}

func TestCompleteMissingAPIKey(t *testing.T) {
	client, err := NewClient("http://unused.invalid", staticKey(""))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Complete(context.Background(), testRequest())
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestCompleteSurfacesServerErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "structured error",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Invalid API key"}}`,
			want:   "Invalid API key",
		},
		{
			name:   "top-level message",
			status: http.StatusTooManyRequests,
			body:   `{"message":"rate limited"}`,
			want:   "rate limited",
		},
		{
			name:   "raw body",
			status: http.StatusBadGateway,
			body:   "upstream exploded",
			want:   "upstream exploded",
		},
		{
			name:   "empty body falls back to status text",
			status: http.StatusServiceUnavailable,
			body:   "",
			want:   http.StatusText(http.StatusServiceUnavailable),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client, err := NewClient(srv.URL, staticKey("sk-test"))
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}

			_, err = client.Complete(context.Background(), testRequest())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "AI Request Failed: "+tt.want) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestStreamYieldsFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		lines := []string{
			`data: {"choices":[{"delta":{"content":"Dear "}}]}`,
			``,
			`data: {"choices":[{"delta":{"content":"Hiring Manager,"}}]}`,
			`: comment line`,
			`data: not json at all`,
			`data: {"choices":[{"delta":{"content":""}}]}`,
			`data: {"choices":[]}`,
			`data: [DONE]`,
		}
		for _, line := range lines {
			_, _ = w.Write([]byte(line + "\n"))
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, staticKey("sk-test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	stream, err := client.Stream(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	t.Cleanup(func() { _ = stream.Close() })

	var got []string
	for stream.Next() {
		got = append(got, stream.Text())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	want := []string{"Dear ", "Hiring Manager,"}
	if len(got) != len(want) {
		t.Fatalf("fragments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fragment %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStreamHandlesOversizedEventLines(t *testing.T) {
	// A single data line can exceed the scanner's 64KiB default when the
	// provider flushes a large buffered delta.
	big := strings.Repeat("x", 100*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		payload, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{{"delta": map[string]any{"content": big}}},
		})
		_, _ = w.Write([]byte("data: " + string(payload) + "\n"))
		_, _ = w.Write([]byte("data: [DONE]\n"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, staticKey("sk-test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	stream, err := client.Stream(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	t.Cleanup(func() { _ = stream.Close() })

	if !stream.Next() {
		t.Fatalf("expected a fragment, stream error: %v", stream.Err())
	}
	if got := stream.Text(); got != big {
		t.Fatalf("fragment length = %d, want %d", len(got), len(big))
	}
	if stream.Next() {
		t.Fatal("expected exactly one fragment")
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
}

func TestStreamNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API key"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, staticKey("sk-test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Stream(context.Background(), testRequest())
	if err == nil || !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("expected server error message, got %v", err)
	}
}

func TestStreamCloseStopsIteration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 1000; i++ {
			_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"x"}}]}` + "\n"))
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, staticKey("sk-test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	stream, err := client.Stream(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if !stream.Next() {
		t.Fatal("expected at least one fragment")
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if stream.Next() {
		t.Fatal("Next returned true after Close")
	}
}
