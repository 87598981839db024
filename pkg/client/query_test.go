package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDoer records requests and replies with a fixed status and body.
type stubDoer struct {
	status int
	body   string
	err    error

	calls  atomic.Int32
	bodies [][]byte
	last   *http.Request
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.calls.Add(1)
	s.last = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		s.bodies = append(s.bodies, b)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     make(http.Header),
	}, nil
}

func baseRequest() QueryRequest {
	return QueryRequest{
		Fields: []string{"id", "username"},
		Conditions: map[string]any{
			"and": []any{
				map[string]any{"operation": "IN", "field_name": "region_code", "field_values": []any{"US"}},
			},
		},
		StartDate: "20240101",
		EndDate:   "20240131",
	}
}

func payloadKeys(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func TestBuildPayload_MandatoryKeysOnly(t *testing.T) {
	body, err := BuildPayload(baseRequest())
	require.NoError(t, err)

	m := payloadKeys(t, body)
	assert.Len(t, m, 5)
	for _, key := range []string{"query", "start_date", "end_date", "max_count", "fields"} {
		assert.Contains(t, m, key)
	}
	for _, key := range []string{"cursor", "search_id", "is_random"} {
		assert.NotContains(t, m, key)
	}
	assert.Equal(t, "20240101", m["start_date"])
	assert.Equal(t, "20240131", m["end_date"])
}

func TestBuildPayload_FalsyOptionalsArePresent(t *testing.T) {
	req := baseRequest()
	req.Cursor = Some(int64(0))
	req.SearchID = Some("")
	req.IsRandom = Some(false)

	body, err := BuildPayload(req)
	require.NoError(t, err)

	m := payloadKeys(t, body)
	assert.Len(t, m, 8)
	assert.Equal(t, float64(0), m["cursor"])
	assert.Equal(t, "", m["search_id"])
	assert.Equal(t, false, m["is_random"])
}

func TestBuildPayload_OptionalSubsets(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QueryRequest)
		present []string
	}{
		{"cursor only", func(r *QueryRequest) { r.Cursor = Some(int64(100)) }, []string{"cursor"}},
		{"search_id only", func(r *QueryRequest) { r.SearchID = Some("abc") }, []string{"search_id"}},
		{"is_random only", func(r *QueryRequest) { r.IsRandom = Some(true) }, []string{"is_random"}},
		{"cursor and search_id", func(r *QueryRequest) {
			r.Cursor = Some(int64(20))
			r.SearchID = Some("abc")
		}, []string{"cursor", "search_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			body, err := BuildPayload(req)
			require.NoError(t, err)
			m := payloadKeys(t, body)

			assert.Len(t, m, 5+len(tt.present))
			for _, key := range tt.present {
				assert.Contains(t, m, key)
			}
		})
	}
}

func TestBuildPayload_FieldsJoined(t *testing.T) {
	req := baseRequest()
	req.Fields = []string{"a", "b", "c"}

	body, err := BuildPayload(req)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", payloadKeys(t, body)["fields"])
}

func TestBuildPayload_MaxCount(t *testing.T) {
	body, err := BuildPayload(baseRequest())
	require.NoError(t, err)
	assert.Equal(t, float64(20), payloadKeys(t, body)["max_count"])

	req := baseRequest()
	req.MaxCount = Some(150)
	body, err = BuildPayload(req)
	require.NoError(t, err)
	assert.Equal(t, float64(150), payloadKeys(t, body)["max_count"])
}

func TestBuildPayload_ConditionsVerbatim(t *testing.T) {
	req := baseRequest()
	req.Conditions = json.RawMessage(`{"not":[{"operation":"EQ","field_name":"video_length","field_values":["SHORT"]}],"custom":{"x":1}}`)

	body, err := BuildPayload(req)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	assert.JSONEq(t, `{"not":[{"operation":"EQ","field_name":"video_length","field_values":["SHORT"]}],"custom":{"x":1}}`, string(m["query"]))
}

func TestBuildPayload_TypedQuery(t *testing.T) {
	req := baseRequest()
	req.Conditions = Query{
		And: []Condition{In(FieldRegionCode, "US", "CA")},
		Not: []Condition{Eq(FieldUsername, "someone")},
	}

	body, err := BuildPayload(req)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	assert.JSONEq(t, `{
		"and":[{"operation":"IN","field_name":"region_code","field_values":["US","CA"]}],
		"not":[{"operation":"EQ","field_name":"username","field_values":["someone"]}]
	}`, string(m["query"]))
}

func TestBuildRequest_Envelope(t *testing.T) {
	c := New()
	req, err := c.BuildRequest(context.Background(), "tok123", baseRequest())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://open.tiktokapis.com/v2/research/video/query/", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok123", req.Header.Get("Authorization"))
}

func TestQueryVideos_Success(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{"data": {"videos": []}, "cursor": 0, "has_more": false}`}
	c := New(WithHTTPClient(doer))

	resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())
	require.NoError(t, err)

	assert.Equal(t, QueryResponse{
		"data":     map[string]any{"videos": []any{}},
		"cursor":   json.Number("0"),
		"has_more": false,
	}, resp)
	assert.Equal(t, int32(1), doer.calls.Load())
	assert.Equal(t, "Bearer tok", doer.last.Header.Get("Authorization"))
}

func TestQueryVideos_LargeIDsPreserved(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{"data":{"videos":[{"id":7300000000000000123}]}}`}
	c := New(WithHTTPClient(doer))

	resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())
	require.NoError(t, err)

	videos := resp["data"].(map[string]any)["videos"].([]any)
	assert.Equal(t, json.Number("7300000000000000123"), videos[0].(map[string]any)["id"])
}

func TestQueryVideos_HTTPStatusError(t *testing.T) {
	doer := &stubDoer{status: http.StatusForbidden, body: `{"error":"invalid token"}`}
	c := New(WithHTTPClient(doer))

	resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())
	require.Error(t, err)
	assert.Nil(t, resp)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 403, statusErr.StatusCode)
	assert.JSONEq(t, `{"error":"invalid token"}`, string(statusErr.Body))
	assert.Equal(t, "invalid token", statusErr.Message())
	assert.Equal(t, int32(1), doer.calls.Load())
}

func TestQueryVideos_HTTPStatusErrorNested(t *testing.T) {
	doer := &stubDoer{
		status: http.StatusBadRequest,
		body:   `{"error":{"code":"invalid_params","message":"Invalid start_date","log_id":"abc"}}`,
	}
	c := New(WithHTTPClient(doer))

	_, err := c.QueryVideos(context.Background(), "tok", baseRequest())

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Invalid start_date", statusErr.Message())
	assert.Equal(t, "invalid_params", statusErr.Code())
	assert.Contains(t, err.Error(), "research API error 400")
}

func TestQueryVideos_NoStatusBranching(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNoContent, http.StatusTooManyRequests, http.StatusInternalServerError} {
		doer := &stubDoer{status: status, body: `{}`}
		c := New(WithHTTPClient(doer))

		_, err := c.QueryVideos(context.Background(), "tok", baseRequest())

		var statusErr *HTTPStatusError
		require.True(t, errors.As(err, &statusErr), "status %d", status)
		assert.Equal(t, status, statusErr.StatusCode)
		assert.Equal(t, int32(1), doer.calls.Load())
	}
}

func TestQueryVideos_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	doer := &stubDoer{err: cause}
	c := New(WithHTTPClient(doer))

	_, err := c.QueryVideos(context.Background(), "tok", baseRequest())
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, int32(1), doer.calls.Load())
}

func TestQueryVideos_ParseError(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{"data": `}
	c := New(WithHTTPClient(doer))

	_, err := c.QueryVideos(context.Background(), "tok", baseRequest())

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, []byte(`{"data": `), parseErr.Body)
}

func TestQueryVideos_TrailingGarbageIsParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"word", `{"data":{}} trailing`},
		{"extra brace", `{"data":{}}}`},
		{"extra bracket", `{"data":{}}]`},
		{"second value", `{"data":{}} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithHTTPClient(&stubDoer{status: http.StatusOK, body: tt.body}))

			resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "err: %v", err)
			assert.Nil(t, resp)
			assert.Equal(t, []byte(tt.body), parseErr.Body)
		})
	}
}

func TestQueryVideos_TrailingWhitespaceAccepted(t *testing.T) {
	c := New(WithHTTPClient(&stubDoer{status: http.StatusOK, body: "{\"data\":{}}\n  "}))

	resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())
	require.NoError(t, err)
	assert.Contains(t, resp, "data")
}

func TestQueryVideos_NonObjectIsParseError(t *testing.T) {
	for _, body := range []string{`null`, `[1,2]`, `"ok"`, `42`} {
		t.Run(body, func(t *testing.T) {
			c := New(WithHTTPClient(&stubDoer{status: http.StatusOK, body: body}))

			resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "err: %v", err)
			assert.Nil(t, resp)
		})
	}
}

func TestQueryVideos_EmptyObjectAccepted(t *testing.T) {
	c := New(WithHTTPClient(&stubDoer{status: http.StatusOK, body: `{}`}))

	resp, err := c.QueryVideos(context.Background(), "tok", baseRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestQueryVideos_EmptyCredential(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{}`}
	c := New(WithHTTPClient(doer))

	_, err := c.QueryVideos(context.Background(), "", baseRequest())
	assert.ErrorIs(t, err, ErrEmptyCredential)
	assert.Equal(t, int32(0), doer.calls.Load())
}

func TestQueryVideos_Idempotent(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{"data":{"videos":[]}}`}
	c := New(WithHTTPClient(doer))

	req := baseRequest()
	req.Cursor = Some(int64(40))
	req.SearchID = Some("sid")

	_, err := c.QueryVideos(context.Background(), "tok", req)
	require.NoError(t, err)
	_, err = c.QueryVideos(context.Background(), "tok", req)
	require.NoError(t, err)

	require.Len(t, doer.bodies, 2)
	assert.Equal(t, int32(2), doer.calls.Load())
	assert.Equal(t, doer.bodies[0], doer.bodies[1])
}

func TestQueryVideos_HTTPServer(t *testing.T) {
	var gotBody map[string]any
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/research/video/query/", r.URL.Path)
		gotHeader = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"videos":[{"id":1}],"cursor":20,"has_more":true,"search_id":"s1"},"error":{"code":"ok"}}`))
	}))
	defer srv.Close()

	c := New(
		WithEndpoint(srv.URL+"/v2/research/video/query/"),
		WithHTTPClient(srv.Client()),
	)

	req := baseRequest()
	req.IsRandom = Some(true)
	resp, err := c.QueryVideos(context.Background(), "secret", req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotHeader.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "id,username", gotBody["fields"])
	assert.Equal(t, true, gotBody["is_random"])
	assert.NotContains(t, gotBody, "cursor")

	assert.True(t, resp.HasMore())
	cursor, ok := resp.NextCursor()
	assert.True(t, ok)
	assert.Equal(t, int64(20), cursor)
	sid, ok := resp.SearchID()
	assert.True(t, ok)
	assert.Equal(t, "s1", sid)
}

func TestQueryVideos_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.QueryVideos(ctx, "tok", baseRequest())

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptional(t *testing.T) {
	var absent Optional[int]
	_, ok := absent.Get()
	assert.False(t, ok)
	assert.Nil(t, absent.ptr())

	present := Some(0)
	v, ok := present.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	require.NotNil(t, present.ptr())
	assert.Equal(t, 0, *present.ptr())
}

func TestFromPtr(t *testing.T) {
	assert.False(t, FromPtr[int64](nil).Set)

	zero := false
	o := FromPtr(&zero)
	assert.True(t, o.Set)
	assert.False(t, o.Value)
}
