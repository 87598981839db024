// Package client provides a Go SDK for the TikTok Research API video query
// endpoint.
//
// Each call to QueryVideos sends exactly one POST request and returns the
// decoded response body unchanged. The client does not retry, cache, or walk
// pages; the cursor and search_id from a response are left to the caller.
//
// # Quick Start
//
//	c := client.New()
//	resp, err := c.QueryVideos(ctx, token, client.QueryRequest{
//	    Fields:     []string{client.FieldID, client.FieldUsername},
//	    Conditions: client.Query{And: []client.Condition{client.In(client.FieldRegionCode, "US", "CA")}},
//	    StartDate:  "20240101",
//	    EndDate:    "20240131",
//	})
//
// Use custom configuration:
//
//	c := client.New(
//	    client.WithEndpoint("http://localhost:8080/v2/research/video/query/"),
//	    client.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
//	)
//
// # Optional Parameters
//
// MaxCount, Cursor, SearchID and IsRandom are Optional values. An unset
// Optional is left out of the request body entirely; Some(v) is always sent,
// even when v is a zero value:
//
//	req.Cursor = client.Some(int64(0))   // sends "cursor": 0
//	req.IsRandom = client.Some(false)    // sends "is_random": false
//
// MaxCount falls back to DefaultMaxCount (20). Out-of-range values are sent
// as given and rejected by the remote service.
//
// # Errors
//
// Failures come back as one of three types, reachable with errors.As:
//
//	var statusErr *client.HTTPStatusError
//	if errors.As(err, &statusErr) {
//	    log.Printf("status %d: %s", statusErr.StatusCode, statusErr.Body)
//	}
//
// TransportError covers failures before a response arrives, HTTPStatusError
// any non-200 status, and ParseError a 200 response that is not valid JSON.
package client
