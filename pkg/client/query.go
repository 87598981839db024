package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxCount is the max_count sent when a request leaves MaxCount unset.
const DefaultMaxCount = 20

// ErrEmptyCredential is returned when QueryVideos is called without a token.
var ErrEmptyCredential = errors.New("credential is empty")

// Optional holds a value together with whether it was provided at all.
// The zero Optional is absent; Some(0), Some("") and Some(false) are present.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// FromPtr returns an Optional that is present exactly when p is non-nil.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// ptr returns a pointer to the value, or nil when absent.
func (o Optional[T]) ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// QueryRequest contains the parameters for a single video query.
type QueryRequest struct {
	// Fields lists the Video attributes to return. Sent as one comma-joined string.
	Fields []string
	// Conditions is the and/or/not filter tree, sent verbatim as "query".
	// Any JSON-marshalable value is accepted; Query is a typed convenience.
	Conditions any
	// StartDate and EndDate bound video creation time (YYYYMMDD, UTC).
	StartDate string
	EndDate   string
	// MaxCount defaults to DefaultMaxCount when unset. Not clamped locally.
	MaxCount Optional[int]
	// Cursor resumes a previous result set at the given index.
	Cursor Optional[int64]
	// SearchID references a cached search on the remote service.
	SearchID Optional[string]
	// IsRandom requests results in random order.
	IsRandom Optional[bool]
}

// queryPayload is the wire body. Optional keys are pointers so that only an
// unset value is omitted; a set zero value is still encoded.
type queryPayload struct {
	Query     any     `json:"query"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	MaxCount  int     `json:"max_count"`
	Fields    string  `json:"fields"`
	Cursor    *int64  `json:"cursor,omitempty"`
	SearchID  *string `json:"search_id,omitempty"`
	IsRandom  *bool   `json:"is_random,omitempty"`
}

func newQueryPayload(req QueryRequest) queryPayload {
	maxCount := DefaultMaxCount
	if v, ok := req.MaxCount.Get(); ok {
		maxCount = v
	}
	return queryPayload{
		Query:     req.Conditions,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		MaxCount:  maxCount,
		Fields:    strings.Join(req.Fields, ","),
		Cursor:    req.Cursor.ptr(),
		SearchID:  req.SearchID.ptr(),
		IsRandom:  req.IsRandom.ptr(),
	}
}

// BuildPayload returns the JSON body QueryVideos would send for req.
func BuildPayload(req QueryRequest) ([]byte, error) {
	body, err := json.Marshal(newQueryPayload(req))
	if err != nil {
		return nil, fmt.Errorf("encoding query payload: %w", err)
	}
	return body, nil
}

// BuildRequest returns the HTTP request QueryVideos would send, without sending it.
func (c *Client) BuildRequest(ctx context.Context, credential string, req QueryRequest) (*http.Request, error) {
	body, err := BuildPayload(req)
	if err != nil {
		return nil, err
	}
	return c.newRequest(ctx, credential, body)
}

// QueryVideos sends one query to the Research API and returns the decoded
// response body unchanged.
//
// Failures are returned as *TransportError, *HTTPStatusError or *ParseError
// (wrapped; use errors.As). Nothing is retried.
func (c *Client) QueryVideos(ctx context.Context, credential string, req QueryRequest) (QueryResponse, error) {
	if credential == "" {
		return nil, ErrEmptyCredential
	}

	body, err := BuildPayload(req)
	if err != nil {
		return nil, err
	}

	respBody, err := c.postJSON(ctx, credential, body)
	if err != nil {
		return nil, fmt.Errorf("querying videos: %w", err)
	}

	resp, err := decodeResponse(respBody)
	if err != nil {
		return nil, fmt.Errorf("querying videos: %w", err)
	}
	return resp, nil
}
