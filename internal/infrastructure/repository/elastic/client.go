package elastic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"foccacia/internal/platform/logging"
	"foccacia/internal/platform/resilience"
)

const defaultTimeout = 10 * time.Second

var errDocumentMissing = crerr.New("document not found")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is a thin transport over the document index: whole-document PUT/GET/
// DELETE by id, structured search, and explicit refresh. Store calls are a
// single bounded request each; failures surface immediately, never retried.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:9200"
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// PutDocument upserts the whole document under index/_doc/docID.
func (c *Client) PutDocument(ctx context.Context, index, docID string, doc any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", index, docID, err)
	}
	_, _ = buf.Write(encoded)

	if _, err := c.do(ctx, http.MethodPut, index+"/_doc/"+docID, buf.Bytes()); err != nil {
		return fmt.Errorf("put document %s/%s: %w", index, docID, err)
	}

	return nil
}

// GetDocument fetches a document by id. A 404 from the store is a normal
// negative result, not an error.
func (c *Client) GetDocument(ctx context.Context, index, docID string, out any) (bool, error) {
	raw, err := c.do(ctx, http.MethodGet, index+"/_doc/"+docID, nil)
	if err != nil {
		if crerr.Is(err, errDocumentMissing) {
			return false, nil
		}
		return false, fmt.Errorf("get document %s/%s: %w", index, docID, err)
	}

	var envelope documentEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return false, fmt.Errorf("decode document %s/%s: %w", index, docID, err)
	}
	if !envelope.Found || len(envelope.Source) == 0 {
		return false, nil
	}

	if err := sonic.Unmarshal(envelope.Source, out); err != nil {
		return false, fmt.Errorf("decode document source %s/%s: %w", index, docID, err)
	}

	return true, nil
}

func (c *Client) DeleteDocument(ctx context.Context, index, docID string) (bool, error) {
	if _, err := c.do(ctx, http.MethodDelete, index+"/_doc/"+docID, nil); err != nil {
		if crerr.Is(err, errDocumentMissing) {
			return false, nil
		}
		return false, fmt.Errorf("delete document %s/%s: %w", index, docID, err)
	}

	return true, nil
}

// Search runs a structured query against index/_search and returns the raw
// _source of every hit in store order.
func (c *Client) Search(ctx context.Context, index string, query any) ([][]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode search query for %s: %w", index, err)
	}
	_, _ = buf.Write(encoded)

	raw, err := c.do(ctx, http.MethodPost, index+"/_search", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	var envelope searchEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode search response for %s: %w", index, err)
	}

	sources := make([][]byte, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		sources = append(sources, hit.Source)
	}

	return sources, nil
}

// Refresh forces the index to make pending writes visible to searches, so a
// read issued right after a write observes it.
func (c *Client) Refresh(ctx context.Context, index string) error {
	if _, err := c.do(ctx, http.MethodPost, index+"/_refresh", nil); err != nil {
		return fmt.Errorf("refresh %s: %w", index, err)
	}

	return nil
}

// CreateIndex creates an index with the given mapping. Creating an index that
// already exists is not an error.
func (c *Client) CreateIndex(ctx context.Context, index string, mapping any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("encode mapping for %s: %w", index, err)
	}
	_, _ = buf.Write(encoded)

	_, err = c.do(ctx, http.MethodPut, index, buf.Bytes())
	if err != nil && !strings.Contains(err.Error(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %w", index, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "document store circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("document store is temporarily unavailable: %w", err)
		}
	}

	raw, err := c.execute(ctx, method, path, body)
	if c.circuitEnabled {
		if err != nil && !crerr.Is(err, errDocumentMissing) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return raw, err
}

func (c *Client) execute(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errDocumentMissing
	default:
		c.logger.WarnContext(ctx, "document store request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("store status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
}

type documentEnvelope struct {
	Found  bool       `json:"found"`
	Source rawMessage `json:"_source"`
}

type searchEnvelope struct {
	Hits struct {
		Hits []struct {
			Source rawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// rawMessage defers decoding of a nested JSON value, sonic-compatible.
type rawMessage []byte

func (m *rawMessage) UnmarshalJSON(data []byte) error {
	*m = append((*m)[:0], data...)
	return nil
}

func (m rawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

func abbreviateBody(body []byte) string {
	const maxLen = 512
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}
