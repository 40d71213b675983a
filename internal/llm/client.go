package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DefaultBaseURL is the public endpoint of the Gemini generative language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// ErrMissingCredential indicates no API key was configured.
// Surfaced as a configuration error at first use, not at construction.
var ErrMissingCredential = errors.New("missing API credential: set GOOGLE_API_KEY or GEMINI_API_KEY")

// GenerateError is returned after every request shape has been rejected.
type GenerateError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation request failed: %v", e.Err)
	}
	return fmt.Sprintf("generation request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *GenerateError) Unwrap() error { return e.Err }

// Client is a client for a Gemini-style generateContent API.
//
// The accepted request body varies slightly across deployments and API
// versions, so the client carries a small fixed list of request shapes and
// tries them in order. The first shape that succeeds is cached for the
// lifetime of the process; this is a compatibility shim, not a reliability
// retry (no backoff, generation has no side effects to de-duplicate).
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client

	mu    sync.Mutex
	shape int // index of the negotiated request shape; -1 until first success
}

// NewClient creates a new generation client. An empty apiKey is allowed here;
// Generate reports ErrMissingCredential when it is first needed.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
		shape:   -1,
	}
}

// generatePart is one text part of a content block.
type generatePart struct {
	Text string `json:"text"`
}

// generateContent is one content block of a generation request.
type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

// generateRequest is the request payload for generateContent.
type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

// generateResponse is the response payload from generateContent.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// requestShapes are the payload variants tried in order. Some deployments
// require an explicit role on each content block, others reject it.
var requestShapes = []func(prompt string) generateRequest{
	func(prompt string) generateRequest {
		return generateRequest{Contents: []generateContent{
			{Role: "user", Parts: []generatePart{{Text: prompt}}},
		}}
	},
	func(prompt string) generateRequest {
		return generateRequest{Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		}}
	},
}

// Generate sends the prompt to the model and returns the response text with
// surrounding whitespace trimmed. Empty text is a valid result.
// After all request shapes have been rejected it returns a *GenerateError;
// without a configured credential it returns ErrMissingCredential.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingCredential
	}

	c.mu.Lock()
	negotiated := c.shape
	c.mu.Unlock()

	order := make([]int, 0, len(requestShapes))
	if negotiated >= 0 {
		order = append(order, negotiated)
	} else {
		for i := range requestShapes {
			order = append(order, i)
		}
	}

	var lastErr *GenerateError
	for _, idx := range order {
		text, genErr := c.generateOnce(ctx, requestShapes[idx](prompt))
		if genErr == nil {
			c.mu.Lock()
			c.shape = idx
			c.mu.Unlock()
			return strings.TrimSpace(text), nil
		}
		lastErr = genErr
		if ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}

// generateOnce performs a single generateContent call with one request shape.
func (c *Client) generateOnce(ctx context.Context, payload generateRequest) (string, *GenerateError) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerateError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", &GenerateError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &GenerateError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &GenerateError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", &GenerateError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(genResp.Candidates) == 0 {
		return "", &GenerateError{Err: fmt.Errorf("no candidates returned")}
	}

	var text strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}
