package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Document is the field map of a remote document.
type Document map[string]any

// Store is the remote document store collaborator: fetch a document,
// set a single field, delete a single field. All calls honor the caller's
// context; no call is ever retried automatically.
type Store interface {
	// GetDocument returns nil with no error when the document is absent.
	GetDocument(ctx context.Context, path string) (Document, error)
	SetField(ctx context.Context, path, field string, value any) error
	DeleteField(ctx context.Context, path, field string) error
}

// httpStore implements Store over a simple JSON document API:
//
//	GET    {endpoint}/{path}              -> document fields
//	PATCH  {endpoint}/{path}              <- {"field": ..., "value": ...}
//	DELETE {endpoint}/{path}?field=name
type httpStore struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	observer Observer
}

// NewHTTPStore creates a Store talking to the given endpoint. A zero
// timeout defaults to 10 seconds per call.
func NewHTTPStore(endpoint string, timeout time.Duration, observer Observer) Store {
	if observer == nil {
		observer = NoopObserver{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpStore{
		endpoint: endpoint,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		timeout:  timeout,
		observer: observer,
	}
}

func (s *httpStore) GetDocument(ctx context.Context, path string) (Document, error) {
	var doc Document
	err := s.call(ctx, "get", path, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.docURL(path), nil)
		if err != nil {
			return err
		}
		resp, err := s.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("document store returned status %d: %s", resp.StatusCode, string(body))
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			return fmt.Errorf("decoding document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *httpStore) SetField(ctx context.Context, path, field string, value any) error {
	return s.call(ctx, "set_field", path, func(ctx context.Context) error {
		payload, err := json.Marshal(map[string]any{"field": field, "value": value})
		if err != nil {
			return fmt.Errorf("encoding field: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.docURL(path), bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		return s.expectOK(req)
	})
}

func (s *httpStore) DeleteField(ctx context.Context, path, field string) error {
	return s.call(ctx, "delete_field", path, func(ctx context.Context) error {
		u := s.docURL(path) + "?field=" + url.QueryEscape(field)
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
		if err != nil {
			return err
		}
		return s.expectOK(req)
	})
}

// call wraps an operation with the per-call timeout, error normalization
// and observer notification.
func (s *httpStore) call(ctx context.Context, op, path string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := fn(ctx)
	if err != nil {
		switch {
		case ctx.Err() == context.DeadlineExceeded:
			err = ErrTimeout
		case isConnectionError(err):
			err = ErrRemoteUnavailable
		}
	}

	s.observer.OnCallComplete(CallEvent{
		Op:        op,
		Path:      path,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (s *httpStore) expectOK(req *http.Request) error {
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("document store returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (s *httpStore) docURL(path string) string {
	return s.endpoint + "/" + path
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrRemoteUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
