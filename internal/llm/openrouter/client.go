package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"jobos-backend/internal/llm"
)

// DefaultAPIURL is the OpenRouter chat-completions endpoint.
const DefaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"

const (
	refererHeader = "https://jobos.local"
	titleHeader   = "Personal Job OS"
)

// Client implements llm.Client against the OpenRouter chat-completions API.
// The API key is resolved through the KeyProvider on every call because the
// user can change it in settings at any time.
type Client struct {
	apiURL     string
	keys       llm.KeyProvider
	httpClient *http.Client
}

// NewClient constructs an OpenRouter client. An empty apiURL selects the
// production endpoint.
func NewClient(apiURL string, keys llm.KeyProvider) (*Client, error) {
	if keys == nil {
		return nil, fmt.Errorf("openrouter: key provider is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIURL
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENROUTER_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiURL: apiURL,
		keys:   keys,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends a buffered chat-completion request and returns the full
// response text, or an empty string when the first choice carries no content.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	resp, err := c.send(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", requestError(resp, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openrouter response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI Request Failed: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

// Stream sends the same request with stream=true and returns a lazy sequence
// of incremental fragments.
func (c *Client) Stream(ctx context.Context, req llm.Request) (llm.Stream, error) {
	resp, err := c.send(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			body = nil
		}
		return nil, requestError(resp, body)
	}
	return newStream(resp.Body), nil
}

func (c *Client) send(ctx context.Context, req llm.Request, stream bool) (*http.Response, error) {
	apiKey, err := c.keys.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrMissingAPIKey
	}

	reqMessages := make([]chatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	body := chatRequest{
		Model:       req.Model,
		Messages:    reqMessages,
		Temperature: req.Temperature,
		Stream:      stream,
	}
	if req.JSONObject {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("HTTP-Referer", refererHeader)
	httpReq.Header.Set("X-Title", titleHeader)
	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openrouter request timeout: %w", err)
		}
		return nil, err
	}
	return resp, nil
}

// requestError extracts the most specific message available: server error
// body, then raw body text, then HTTP status text.
func requestError(resp *http.Response, body []byte) error {
	msg := http.StatusText(resp.StatusCode)
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		msg = trimmed
		var parsed struct {
			Error   *apiError `json:"error"`
			Message string    `json:"message"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil {
			if parsed.Error != nil && parsed.Error.Message != "" {
				msg = parsed.Error.Message
			} else if parsed.Message != "" {
				msg = parsed.Message
			}
		}
	}
	return fmt.Errorf("AI Request Failed: %s", msg)
}

var _ llm.Client = (*Client)(nil)
