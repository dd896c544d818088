package catalog

import (
	"alcyxob/exercise-lookup/internal/config"
	"alcyxob/exercise-lookup/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	headerHost = "X-RapidAPI-Host"
	headerKey  = "X-RapidAPI-Key"
)

// Client talks to the remote exercise catalog.
type Client struct {
	baseURL string
	host    string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a catalog client from config. A nil httpClient uses a fresh
// client whose Timeout matches cfg.RequestTimeout.
func NewClient(cfg config.CatalogConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    cfg.Host,
		apiKey:  cfg.APIKey,
		timeout: cfg.RequestTimeout,
		http:    httpClient,
	}
}

// FetchExercises issues a single GET {baseURL}/exercises?limit=N.
// Failures come back as *TransportError, *TimeoutError or *DecodeError.
func (c *Client) FetchExercises(ctx context.Context, limit int) ([]domain.Exercise, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u, err := url.Parse(c.baseURL + "/exercises")
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("invalid base url: %w", err)}
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.host != "" {
		req.Header.Set(headerHost, c.host)
	}
	req.Header.Set(headerKey, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	// Always read the full body so the connection can be reused.
	body, err := readAndClose(resp.Body)
	if err != nil {
		return nil, classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Err: &HTTPError{
			Method:     req.Method,
			URL:        u.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}}
	}

	var exercises []domain.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, &DecodeError{Err: err, Body: body}
	}
	return exercises, nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}
