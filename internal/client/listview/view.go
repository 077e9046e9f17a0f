// Package listview coordinates the state of one paginated, filterable list
// screen: free-text search, 1-based page, page size, ordering and a filter
// map collapse into a single outbound query, with exactly one fetch per
// mutation and protection against out-of-order responses.
package listview

import (
	"context"
	"sync"

	"github.com/nberthel/formadmin/internal/client/api"
)

// Fetcher loads one page for the current query. Typically this is a
// Resource.List bound with method value syntax.
type Fetcher[T any] func(ctx context.Context, q api.ListQuery) (*api.Page[T], error)

// Snapshot is the render-ready state of a view at one point in time.
type Snapshot[T any] struct {
	Rows    []T
	Total   int
	Query   api.ListQuery
	Loading bool
	Err     error
}

// Options configures a View.
type Options[T any] struct {
	// PageSize is the initial page size (default 20).
	PageSize int
	// Ordering is the initial ordering key.
	Ordering string
	// ID extracts a row identifier for deduplication. Required.
	ID func(T) int64
	// OnChange, when set, is called with a snapshot after every applied
	// fetch result. Called outside the view's lock.
	OnChange func(Snapshot[T])
}

// View owns the list state of one resource screen.
//
// Every mutation except SetPage resets the page to 1 and issues exactly one
// fetch. Each fetch carries a monotonically increasing sequence number;
// results arriving for a superseded sequence are discarded, so a slow
// stale response can never overwrite a newer one. The superseded fetch's
// context is also cancelled to stop wasting the transport.
type View[T any] struct {
	fetch    Fetcher[T]
	id       func(T) int64
	onChange func(Snapshot[T])

	mu      sync.Mutex
	query   api.ListQuery
	rows    []T
	total   int
	loading bool
	err     error
	seq     uint64
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

// New creates a view. No fetch is issued until the first mutation or
// Refresh call.
func New[T any](fetch Fetcher[T], opts Options[T]) *View[T] {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &View[T]{
		fetch:    fetch,
		id:       opts.ID,
		onChange: opts.OnChange,
		query: api.ListQuery{
			Page:     1,
			PageSize: pageSize,
			Ordering: opts.Ordering,
			Filters:  map[string]string{},
		},
	}
}

// Snapshot returns the current render state.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Refresh re-issues the current query unchanged.
func (v *View[T]) Refresh(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dispatchLocked(ctx)
}

// SetSearch replaces the search text and resets to page 1.
func (v *View[T]) SetSearch(ctx context.Context, search string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query.Search = search
	v.query.Page = 1
	v.dispatchLocked(ctx)
}

// SetFilter sets one filter key and resets to page 1. An empty value
// removes the constraint entirely.
func (v *View[T]) SetFilter(ctx context.Context, key, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if value == "" {
		delete(v.query.Filters, key)
	} else {
		v.query.Filters[key] = value
	}
	v.query.Page = 1
	v.dispatchLocked(ctx)
}

// ClearFilters drops every filter and resets to page 1.
func (v *View[T]) ClearFilters(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query.Filters = map[string]string{}
	v.query.Page = 1
	v.dispatchLocked(ctx)
}

// SetOrdering replaces the ordering key and resets to page 1.
func (v *View[T]) SetOrdering(ctx context.Context, ordering string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query.Ordering = ordering
	v.query.Page = 1
	v.dispatchLocked(ctx)
}

// SetPageSize replaces the page size and resets to page 1.
func (v *View[T]) SetPageSize(ctx context.Context, size int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if size > 0 {
		v.query.PageSize = size
	}
	v.query.Page = 1
	v.dispatchLocked(ctx)
}

// SetPage navigates to the given page. This is the only mutation that does
// NOT reset the page; search, filters, ordering and page size all survive.
func (v *View[T]) SetPage(ctx context.Context, page int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if page < 1 {
		page = 1
	}
	v.query.Page = page
	v.dispatchLocked(ctx)
}

// NextPage navigates forward one page.
func (v *View[T]) NextPage(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query.Page++
	v.dispatchLocked(ctx)
}

// PrevPage navigates back one page, clamped at 1.
func (v *View[T]) PrevPage(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.query.Page > 1 {
		v.query.Page--
	}
	v.dispatchLocked(ctx)
}

// Wait blocks until every in-flight fetch has finished. Used on teardown
// and in tests; steady-state callers rely on OnChange instead.
func (v *View[T]) Wait() {
	v.wg.Wait()
}

// dispatchLocked starts a fetch for the current query under a fresh
// sequence number, cancelling whatever fetch was in flight. Caller holds
// v.mu.
func (v *View[T]) dispatchLocked(ctx context.Context) {
	v.seq++
	seq := v.seq

	if v.cancel != nil {
		v.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel

	v.loading = true
	query := v.cloneQueryLocked()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()

		page, err := v.fetch(fetchCtx, query)
		v.apply(seq, page, err)
	}()
}

// apply installs a fetch result unless a newer fetch has been issued since.
func (v *View[T]) apply(seq uint64, page *api.Page[T], err error) {
	v.mu.Lock()

	if seq != v.seq {
		// stale response for a superseded query
		v.mu.Unlock()
		return
	}

	v.loading = false
	v.err = err
	if err == nil && page != nil {
		v.rows = v.dedupe(page.Items)
		v.total = page.Count
	}

	snapshot := v.snapshotLocked()
	onChange := v.onChange
	v.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
}

// dedupe drops rows whose identifier was already seen, keeping first
// occurrence order. Defensive measure against backend pagination overlap.
func (v *View[T]) dedupe(items []T) []T {
	if v.id == nil {
		return items
	}

	seen := make(map[int64]bool, len(items))
	deduped := make([]T, 0, len(items))
	for _, item := range items {
		id := v.id(item)
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, item)
	}
	return deduped
}

func (v *View[T]) snapshotLocked() Snapshot[T] {
	rows := make([]T, len(v.rows))
	copy(rows, v.rows)

	return Snapshot[T]{
		Rows:    rows,
		Total:   v.total,
		Query:   v.cloneQueryLocked(),
		Loading: v.loading,
		Err:     v.err,
	}
}

func (v *View[T]) cloneQueryLocked() api.ListQuery {
	query := v.query
	query.Filters = make(map[string]string, len(v.query.Filters))
	for key, val := range v.query.Filters {
		query.Filters[key] = val
	}
	return query
}
