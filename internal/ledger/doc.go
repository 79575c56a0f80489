// Package ledger provides an HTTP client for the accounting backend's REST API.
//
// # Overview
//
// Every accounting resource (customers, vendors, staff, chart of accounts,
// expenses) is served under the same generic contract:
//
//   - GET    /api/<resource>       one page of records plus a total count
//   - GET    /api/<resource>/<id>  a single record
//   - POST   /api/<resource>       create
//   - PUT    /api/<resource>/<id>  replace
//   - DELETE /api/<resource>/<id>  remove
//
// Records are opaque JSON objects decoded into tablestate.Map with
// json.Decoder.UseNumber, so amounts keep their exact textual form.
//
// # Listing
//
// List encodes a tablestate.ListQuery as query parameters:
//
//	page=2&pageSize=10&search=acme&sortBy=amount&sortDir=desc&filter[status]=open
//
// The response body is {"data": [...], "total": N}.
//
// # Client Usage
//
//	client, err := ledger.NewClient("127.0.0.1:8080", ledger.Options{Token: token})
//	if err != nil {
//		return err
//	}
//	page, err := client.List(ctx, "customers", state.Query())
//
// # Error Handling
//
// Status codes >= 400 are returned as *APIError carrying the request path,
// the status and the server's "message" or "error" field when present. A 404
// unwraps to ErrNotFound:
//
//	if errors.Is(err, ledger.ErrNotFound) { ... }
//
// Network and decode failures are wrapped with fmt.Errorf:
//   - "execute request: dial tcp: connection refused"
//   - "decode response: unexpected EOF"
//
// # URL Construction
//
// The api_url setting accepts "host:port" or a full URL. The scheme defaults to
// http:// and any path, query or fragment is discarded.
//
// # Thread Safety
//
// Client is safe for concurrent use.
//
// The client does no caching or retries; see package source for caching and
// package app for the poll and backoff policy.
package ledger
