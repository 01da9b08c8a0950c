package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Term is a single RDF term in a SELECT result binding.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Binding maps a result variable name to its bound term.
type Binding map[string]Term

// SelectResult is the application/sparql-results+json response shape.
type SelectResult struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Client is the knowledge-store capability the resolvers and the swapper
// depend on. Statements passed in must already be escaped (see escape.go).
type Client interface {
	Query(ctx context.Context, query string) (*SelectResult, error)
	Update(ctx context.Context, update string) error
}

// HTTPClient talks the SPARQL 1.1 protocol (form-encoded POST) to a
// triple store endpoint.
type HTTPClient struct {
	endpoint       string
	updateEndpoint string
	hc             *http.Client
}

// NewClient creates a client for the given query and update endpoints.
// An empty updateEndpoint falls back to the query endpoint.
func NewClient(endpoint, updateEndpoint string) *HTTPClient {
	if updateEndpoint == "" {
		updateEndpoint = endpoint
	}
	return &HTTPClient{
		endpoint:       endpoint,
		updateEndpoint: updateEndpoint,
		hc:             &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Query(ctx context.Context, query string) (*SelectResult, error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("sparql query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sparql query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("sparql query: endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result SelectResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sparql query: decode results: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Update(ctx context.Context, update string) error {
	form := url.Values{"update": {update}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.updateEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sparql update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("sparql update: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sparql update: endpoint returned %d", resp.StatusCode)
	}
	return nil
}
