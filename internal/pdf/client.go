package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/govmeet/minutes-pdf-service/pkg/logger"
)

// ErrRenderFailed means the rendering service refused or failed the
// conversion. The pipeline must abort before any persistence when this
// is returned.
var ErrRenderFailed = errors.New("pdf render failed")

// Client converts a rendered HTML document to PDF bytes via the external
// rendering service.
type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 2 * time.Minute},
	}
}

// renderError is the structured payload the rendering service may return
// on failure.
type renderError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Convert POSTs the document to <baseURL>/generate and returns the PDF
// bytes.
func (c *Client) Convert(ctx context.Context, html string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		var re renderError
		if err := json.Unmarshal(body, &re); err == nil && re.Message != "" {
			logger.Errorf("rendering service returned %d: %s", resp.StatusCode, re.Message)
		} else {
			logger.Errorf("rendering service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("%w: status %d", ErrRenderFailed, resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRenderFailed, err)
	}
	return pdf, nil
}
