package source

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/five82/ledgerdeck/internal/ledger"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

// Mode names where searching, filtering, sorting and paging happen.
type Mode int

const (
	// ModeServer forwards every query to the API.
	ModeServer Mode = iota
	// ModeLocal fetches the collection once and answers queries in memory.
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "server"
}

// Page is the answer to one ListQuery.
type Page struct {
	Rows  []tablestate.Map
	Total int
}

// Source answers list queries for one resource.
type Source interface {
	List(ctx context.Context, q tablestate.ListQuery) (Page, error)
	Mode() Mode
	// Invalidate drops anything cached so the next List refetches.
	Invalidate()
}

var (
	_ Source = (*Remote)(nil)
	_ Source = (*Local)(nil)
)

const (
	defaultCacheSize = 64
	fetchPageSize    = 100
	maxFetchPages    = 1000
)

// Remote forwards queries to the API and remembers recent pages.
type Remote struct {
	store    ledger.RecordStore
	resource string
	cache    *lru.Cache[string, Page]
}

// NewRemote builds a server-driven source. A non-positive cacheSize uses the
// default.
func NewRemote(store ledger.RecordStore, resource string, cacheSize int) (*Remote, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, Page](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}
	return &Remote{store: store, resource: resource, cache: cache}, nil
}

// List returns a cached page for q or fetches it.
func (r *Remote) List(ctx context.Context, q tablestate.ListQuery) (Page, error) {
	key := q.Key()
	if page, ok := r.cache.Get(key); ok {
		return page, nil
	}
	resp, err := r.store.List(ctx, r.resource, q)
	if err != nil {
		return Page{}, fmt.Errorf("list %s: %w", r.resource, err)
	}
	page := Page{Rows: resp.Data, Total: resp.Total}
	r.cache.Add(key, page)
	return page, nil
}

// Mode reports ModeServer.
func (r *Remote) Mode() Mode { return ModeServer }

// Invalidate empties the page cache.
func (r *Remote) Invalidate() { r.cache.Purge() }

// Cached reports how many pages are held.
func (r *Remote) Cached() int { return r.cache.Len() }

// Local loads every record of a resource and answers queries with a
// TableState over the loaded slice.
type Local struct {
	store    ledger.RecordStore
	resource string
	schema   tablestate.Schema[tablestate.Map]

	mu      sync.Mutex
	records []tablestate.Map
	loaded  bool
}

// NewLocal builds a client-side source.
func NewLocal(store ledger.RecordStore, resource string, schema tablestate.Schema[tablestate.Map]) *Local {
	return &Local{store: store, resource: resource, schema: schema}
}

// List loads the collection on first use and derives the requested page.
func (l *Local) List(ctx context.Context, q tablestate.ListQuery) (Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		records, err := l.fetchAll(ctx)
		if err != nil {
			return Page{}, err
		}
		l.records = records
		l.loaded = true
	}
	view := tablestate.FromQuery(l.schema, q).VisibleRows(l.records)
	return Page{Rows: view.Rows, Total: view.TotalItems}, nil
}

// Reload refetches the collection immediately.
func (l *Local) Reload(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	records, err := l.fetchAll(ctx)
	if err != nil {
		return err
	}
	l.records = records
	l.loaded = true
	return nil
}

// Records returns the loaded collection.
func (l *Local) Records() []tablestate.Map {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records
}

// Mode reports ModeLocal.
func (l *Local) Mode() Mode { return ModeLocal }

// Invalidate marks the collection stale.
func (l *Local) Invalidate() {
	l.mu.Lock()
	l.loaded = false
	l.mu.Unlock()
}

func (l *Local) fetchAll(ctx context.Context) ([]tablestate.Map, error) {
	var all []tablestate.Map
	for page := 1; page <= maxFetchPages; page++ {
		resp, err := l.store.List(ctx, l.resource, tablestate.ListQuery{Page: page, PageSize: fetchPageSize})
		if err != nil {
			return nil, fmt.Errorf("load %s page %d: %w", l.resource, page, err)
		}
		all = append(all, resp.Data...)
		if len(resp.Data) < fetchPageSize || (resp.Total > 0 && len(all) >= resp.Total) {
			break
		}
	}
	return all, nil
}
