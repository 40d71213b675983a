package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ModelInfo describes a model exposed by the generative language API.
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// CheckModel verifies that the configured model exists and the credential is
// accepted. Used as a startup fail-fast hint; callers treat a failure as a
// warning, since the API may still accept generation requests.
func (c *Client) CheckModel(ctx context.Context) (*ModelInfo, error) {
	if c.APIKey == "" {
		return nil, ErrMissingCredential
	}

	url := fmt.Sprintf("%s/v1beta/models/%s", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check model: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var info ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode model info: %w", err)
	}
	return &info, nil
}
