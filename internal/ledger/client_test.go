package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/five82/ledgerdeck/internal/tablestate"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultAPIURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultAPIURL)
	}

	u, err = parseBaseURL("example.com:1234")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.Scheme != "https" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("expected error for missing host")
	}
}

func TestClient_ListEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath, gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Acme","balance":12.50}],"total":31}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Options{Token: " secret "})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.List(ctx, "customers", tablestate.ListQuery{
		Filters:  map[string][]string{"status": {"active"}},
		Sort:     tablestate.SortSpec{Field: "name", Direction: tablestate.Descending},
		Page:     4,
		PageSize: 10,
		Search:   "acme",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if gotPath != "/api/customers" {
		t.Fatalf("path = %q, want /api/customers", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want Bearer secret", gotAuth)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	want := map[string]string{
		"page":           "4",
		"pageSize":       "10",
		"search":         "acme",
		"sortBy":         "name",
		"sortDir":        "desc",
		"filter[status]": "active",
	}
	for k, v := range want {
		if gotQuery.Get(k) != v {
			t.Fatalf("query %s = %q, want %q (all: %v)", k, gotQuery.Get(k), v, gotQuery)
		}
	}

	if resp.Total != 31 || len(resp.Data) != 1 {
		t.Fatalf("List payload = %#v, want total=31 with one row", resp)
	}
	if n, ok := resp.Data[0]["balance"].(json.Number); !ok || n.String() != "12.50" {
		t.Fatalf("balance = %#v, want json.Number 12.50", resp.Data[0]["balance"])
	}
}

func TestClient_MutationsSendJSON(t *testing.T) {
	t.Parallel()

	type call struct {
		method, path, contentType string
		body                      map[string]any
	}
	var (
		mu    sync.Mutex
		calls []call
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type")}
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		mu.Lock()
		calls = append(calls, c)
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"v-1","name":"Stored"}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	created, err := c.Create(ctx, "vendors", tablestate.Map{"name": "New"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created["id"] != "v-1" {
		t.Fatalf("Create payload = %#v", created)
	}
	if _, err := c.Update(ctx, "vendors", "v-1", tablestate.Map{"name": "Renamed"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, err := c.Get(ctx, "vendors", "v-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got["name"] != "Stored" {
		t.Fatalf("Get payload = %#v", got)
	}
	if err := c.Delete(ctx, "vendors", "v-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 4 {
		t.Fatalf("calls = %d, want 4", len(calls))
	}
	if calls[0].method != http.MethodPost || calls[0].path != "/api/vendors" || calls[0].contentType != "application/json" {
		t.Fatalf("create call = %#v", calls[0])
	}
	if calls[0].body["name"] != "New" {
		t.Fatalf("create body = %#v", calls[0].body)
	}
	if calls[1].method != http.MethodPut || calls[1].path != "/api/vendors/v-1" || calls[1].body["name"] != "Renamed" {
		t.Fatalf("update call = %#v", calls[1])
	}
	if calls[2].method != http.MethodGet || calls[2].contentType != "" {
		t.Fatalf("get call = %#v", calls[2])
	}
	if calls[3].method != http.MethodDelete || calls[3].path != "/api/vendors/v-1" {
		t.Fatalf("delete call = %#v", calls[3])
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("", Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()
	if _, err := c.Get(ctx, "staff", " "); err == nil {
		t.Fatalf("expected Get error for empty id")
	}
	if _, err := c.Update(ctx, "staff", "", tablestate.Map{}); err == nil {
		t.Fatalf("expected Update error for empty id")
	}
	if err := c.Delete(ctx, "staff", ""); err == nil {
		t.Fatalf("expected Delete error for empty id")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/customers/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"no such customer"}`)
		case "/api/customers/boom":
			http.Error(w, "database down", http.StatusInternalServerError)
		case "/api/customers":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"data": [`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.Get(ctx, "customers", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "no such customer" {
		t.Fatalf("Get error = %#v, want APIError with message", err)
	}

	_, err = c.Get(ctx, "customers", "boom")
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("Get error = %v, want 500 APIError", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("500 should not unwrap to ErrNotFound")
	}
	if apiErr.Message != "database down" {
		t.Fatalf("message = %q, want plain-text body", apiErr.Message)
	}

	_, err = c.List(ctx, "customers", tablestate.ListQuery{Page: 1, PageSize: 10})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if errors.As(err, &apiErr) {
		t.Fatalf("decode error should not be APIError: %v", err)
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if _, err := c.List(context.Background(), "x", tablestate.ListQuery{}); err == nil {
		t.Fatalf("expected error from nil client")
	}
}
