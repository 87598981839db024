package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// Video object fields accepted in QueryRequest.Fields.
const (
	FieldID               = "id"
	FieldVideoDescription = "video_description"
	FieldCreateTime       = "create_time"
	FieldRegionCode       = "region_code"
	FieldShareCount       = "share_count"
	FieldViewCount        = "view_count"
	FieldLikeCount        = "like_count"
	FieldCommentCount     = "comment_count"
	FieldMusicID          = "music_id"
	FieldHashtagNames     = "hashtag_names"
	FieldUsername         = "username"
	FieldEffectIDs        = "effect_ids"
	FieldPlaylistID       = "playlist_id"
	FieldVoiceToText      = "voice_to_text"
	FieldIsStemVerified   = "is_stem_verified"
	FieldVideoDuration    = "video_duration"
	FieldHashtagInfoList  = "hashtag_info_list"
	FieldVideoMentionList = "video_mention_list"
	FieldVideoLabel       = "video_label"
)

// VideoFields lists every known Video field in documentation order.
var VideoFields = []string{
	FieldID,
	FieldVideoDescription,
	FieldCreateTime,
	FieldRegionCode,
	FieldShareCount,
	FieldViewCount,
	FieldLikeCount,
	FieldCommentCount,
	FieldMusicID,
	FieldHashtagNames,
	FieldUsername,
	FieldEffectIDs,
	FieldPlaylistID,
	FieldVoiceToText,
	FieldIsStemVerified,
	FieldVideoDuration,
	FieldHashtagInfoList,
	FieldVideoMentionList,
	FieldVideoLabel,
}

// DateLayout is the time layout of start_date and end_date.
const DateLayout = "20060102"

// FormatDate renders t (in UTC) as a Research API date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// QueryResponse is the decoded response body, returned as-is.
// Numbers are json.Number values.
type QueryResponse map[string]any

// HasMore reports the response's top-level or data-level has_more flag.
func (r QueryResponse) HasMore() bool {
	v, _ := r.lookup("has_more").(bool)
	return v
}

// NextCursor returns the cursor to pass for the next page, if present.
func (r QueryResponse) NextCursor() (int64, bool) {
	n, ok := r.lookup("cursor").(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// SearchID returns the cached search identifier, if present.
func (r QueryResponse) SearchID() (string, bool) {
	s, ok := r.lookup("search_id").(string)
	return s, ok && s != ""
}

// lookup finds key at the top level, then under "data".
func (r QueryResponse) lookup(key string) any {
	if v, ok := r[key]; ok {
		return v
	}
	if data, ok := r["data"].(map[string]any); ok {
		return data[key]
	}
	return nil
}

// TransportError is returned when no HTTP response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("research API transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned for any response status other than 200.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("research API error %d: %s", e.StatusCode, e.Message())
}

// Message extracts a human-readable message from the error body. It
// understands {"error":{"message":...}} and {"error":"..."}; otherwise the
// raw body is returned.
func (e *HTTPStatusError) Message() string {
	var errResp errorResponse
	if json.Unmarshal(e.Body, &errResp) == nil {
		var nested errorDetail
		if json.Unmarshal(errResp.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
		var flat string
		if json.Unmarshal(errResp.Error, &flat) == nil && flat != "" {
			return flat
		}
	}
	return string(e.Body)
}

// Code returns the remote error code (e.g. "access_token_invalid"), if any.
func (e *HTTPStatusError) Code() string {
	var errResp errorResponse
	if json.Unmarshal(e.Body, &errResp) != nil {
		return ""
	}
	var nested errorDetail
	if json.Unmarshal(errResp.Error, &nested) != nil {
		return ""
	}
	return nested.Code
}

// ParseError is returned when a 200 response body is not valid JSON.
type ParseError struct {
	Body []byte
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding research API response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// errorResponse is the JSON envelope of an API error.
type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LogID   string `json:"log_id"`
}
