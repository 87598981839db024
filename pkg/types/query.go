package types

// VideoQuerySummary describes a single query round trip.
type VideoQuerySummary struct {
	VideoCount int    `json:"video_count"`
	HasMore    bool   `json:"has_more"`
	Cursor     *int64 `json:"cursor,omitempty"`
	SearchID   string `json:"search_id,omitempty"`
	Projected  bool   `json:"projected,omitempty"`
	Truncated  bool   `json:"truncated,omitempty"`
}

// VideoQueryResponse is the output of the research_query_videos tool.
// Response holds the untouched API body unless a jq projection was requested,
// in which case Values holds the projection output instead.
type VideoQueryResponse struct {
	Summary  VideoQuerySummary `json:"summary"`
	Response any               `json:"response,omitempty"`
	Values   []any             `json:"values,omitzero"`
	Errors   []string          `json:"errors,omitempty"`
	Hints    []string          `json:"hints,omitempty"`
}

// FieldList is the body of the research://fields resource.
type FieldList struct {
	Fields   []string `json:"fields"`
	Defaults []string `json:"defaults"`
}
