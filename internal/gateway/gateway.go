// Package gateway is the single-attempt transport to the remote admin
// API. It issues one request per call, performs no caching, filtering,
// or retries, and returns every failure as a tagged error. Retry policy
// belongs to the caller (operator-triggered refresh).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/logging"
)

// Client talks to the remote admin API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this
// together with httptest servers.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a gateway client. The timeout bounds each individual
// request; callers may bound further via context.
func New(baseURL, token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logging.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorEnvelope is the remote error body shape: { "message": "..." }.
type errorEnvelope struct {
	Message string `json:"message"`
}

// Fetch retrieves all records of a collection. The response is either a
// bare JSON array or an envelope object keyed per collection config;
// both shapes are unwrapped here so callers see only records.
func (c *Client) Fetch(ctx context.Context, spec collection.Spec) ([]collection.Record, error) {
	body, err := c.do(ctx, http.MethodGet, spec.Path, nil)
	if err != nil {
		return nil, err
	}

	raw := body
	if spec.EnvelopeKey != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response envelope: %v", err)}
		}
		inner, ok := envelope[spec.EnvelopeKey]
		if !ok {
			return nil, &Error{Kind: KindServer, Message: fmt.Sprintf("response envelope missing %q", spec.EnvelopeKey)}
		}
		raw = inner
	}

	var records []collection.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if records == nil {
		records = []collection.Record{}
	}

	c.logger.Debug("fetched collection", "collection", spec.ID.String(), "records", len(records))
	return records, nil
}

// Mutate executes one create, update, or delete against a collection
// and returns the affected record. Operations the backend does not
// implement for the collection fail fast with KindNotImplemented.
func (c *Client) Mutate(ctx context.Context, spec collection.Spec, m collection.Mutation) (collection.Record, error) {
	if err := m.Validate(); err != nil {
		return nil, &Error{Kind: KindValidation, Message: err.Error()}
	}
	if !spec.Supports(m.Op) {
		return nil, &Error{
			Kind:    KindNotImplemented,
			Message: fmt.Sprintf("%s is not implemented for %s", m.Op, spec.ID),
		}
	}

	var (
		method string
		path   string
		req    any
	)
	switch m.Op {
	case collection.OpCreate:
		method, path, req = http.MethodPost, spec.Path, m.Fields
	case collection.OpUpdate:
		method, path, req = http.MethodPut, spec.Path+"/"+m.ID, m.Fields
	case collection.OpDelete:
		method, path = http.MethodDelete, spec.Path+"/"+m.ID
	}

	body, err := c.do(ctx, method, path, req)
	if err != nil {
		return nil, err
	}

	// Deletes may return an empty body; synthesize the affected record.
	if len(bytes.TrimSpace(body)) == 0 {
		if m.Op == collection.OpDelete {
			return collection.Record{collection.FieldID: m.ID}, nil
		}
		return nil, &Error{Kind: KindServer, Message: "empty response body"}
	}

	var record collection.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response body: %v", err)}
	}

	c.logger.Info("mutation applied",
		"collection", spec.ID.String(), "op", m.Op.String(), "record_id", record.ID())
	return record, nil
}

// do performs one HTTP round trip and returns the response body, or a
// tagged error classified from the failure mode.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Timeouts and connection failures are indistinguishable to
		// callers: both mean no usable response.
		return nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(body))
		var envelope errorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
			message = envelope.Message
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Kind: classifyStatus(resp.StatusCode), Message: message, Status: resp.StatusCode}
	}

	return body, nil
}
