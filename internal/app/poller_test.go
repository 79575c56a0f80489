package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/state"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type stubSource struct {
	page        source.Page
	err         error
	lists       int
	invalidated int
	lastQuery   tablestate.ListQuery
}

func (s *stubSource) List(_ context.Context, q tablestate.ListQuery) (source.Page, error) {
	s.lists++
	s.lastQuery = q
	return s.page, s.err
}

func (s *stubSource) Mode() source.Mode { return source.ModeServer }

func (s *stubSource) Invalidate() { s.invalidated++ }

func TestRefresh_NoFocusIsNoop(t *testing.T) {
	var store state.Store
	src := &stubSource{}
	failures, err := refresh(context.Background(), &store, map[string]source.Source{"customers": src})
	if err != nil || failures != 0 || src.lists != 0 {
		t.Fatalf("refresh without focus = %d, %v, lists=%d", failures, err, src.lists)
	}
}

func TestRefresh_FetchesFocusedQuery(t *testing.T) {
	var store state.Store
	src := &stubSource{page: source.Page{Rows: []tablestate.Map{{"id": "1"}}, Total: 1}}
	q := tablestate.ListQuery{Page: 2, PageSize: 5, Search: "acme"}
	store.SetFocus("customers", q)

	failures, err := refresh(context.Background(), &store, map[string]source.Source{"customers": src})
	if err != nil || failures != 0 {
		t.Fatalf("refresh = %d, %v", failures, err)
	}
	if src.invalidated != 1 || src.lists != 1 || src.lastQuery.Search != "acme" {
		t.Fatalf("source calls = %#v", src)
	}
	snap := store.Snapshot("customers")
	if !snap.HasData || snap.Total != 1 {
		t.Fatalf("snapshot = %#v", snap)
	}
}

func TestRefresh_CountsFailures(t *testing.T) {
	var store state.Store
	src := &stubSource{err: errors.New("offline")}
	store.SetFocus("vendors", tablestate.ListQuery{Page: 1, PageSize: 10})
	sources := map[string]source.Source{"vendors": src}

	for want := 1; want <= 3; want++ {
		failures, err := refresh(context.Background(), &store, sources)
		if err == nil || failures != want {
			t.Fatalf("refresh #%d = %d, %v", want, failures, err)
		}
	}
}

func TestRefresh_UnknownResource(t *testing.T) {
	var store state.Store
	store.SetFocus("invoices", tablestate.ListQuery{})
	if _, err := refresh(context.Background(), &store, map[string]source.Source{}); err == nil {
		t.Fatalf("expected error for unknown resource")
	}
}
