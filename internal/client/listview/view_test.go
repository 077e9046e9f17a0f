package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nberthel/formadmin/internal/client/api"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type row struct {
	ID   int64
	Name string
}

func rowID(r row) int64 { return r.ID }

// fakeFetcher records every query it receives and answers from a
// queue of canned responses, last one repeating.
type fakeFetcher struct {
	mu        sync.Mutex
	queries   []api.ListQuery
	responses []fakeResponse
}

type fakeResponse struct {
	page *api.Page[row]
	err  error
	// gate, when set, blocks the response until the channel is closed.
	gate chan struct{}
}

func (f *fakeFetcher) fetch(ctx context.Context, q api.ListQuery) (*api.Page[row], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	idx := len(f.queries) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	resp := f.responses[idx]
	f.mu.Unlock()

	if resp.gate != nil {
		<-resp.gate
	}
	return resp.page, resp.err
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeFetcher) query(i int) api.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[i]
}

func pageOf(count int, rows ...row) *api.Page[row] {
	return &api.Page[row]{Items: rows, Count: count}
}

func TestView_RefreshLoadsRows(t *testing.T) {
	fetcher := &fakeFetcher{responses: []fakeResponse{
		{page: pageOf(2, row{ID: 1, Name: "CAP cuisine"}, row{ID: 2, Name: "Titre pro"})},
	}}
	view := New(fetcher.fetch, Options[row]{ID: rowID})

	view.Refresh(context.Background())
	view.Wait()

	snap := view.Snapshot()
	require.NoError(t, snap.Err)
	assert.False(t, snap.Loading)
	assert.Equal(t, 2, snap.Total)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "CAP cuisine", snap.Rows[0].Name)
}

func TestView_MutationsResetPage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *View[row], ctx context.Context)
	}{
		{"search", func(v *View[row], ctx context.Context) { v.SetSearch(ctx, "cap") }},
		{"filter", func(v *View[row], ctx context.Context) { v.SetFilter(ctx, "centre", "3") }},
		{"ordering", func(v *View[row], ctx context.Context) { v.SetOrdering(ctx, "-start_date") }},
		{"page size", func(v *View[row], ctx context.Context) { v.SetPageSize(ctx, 50) }},
		{"clear filters", func(v *View[row], ctx context.Context) { v.ClearFilters(ctx) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &fakeFetcher{responses: []fakeResponse{{page: pageOf(0)}}}
			view := New(fetcher.fetch, Options[row]{ID: rowID})
			ctx := context.Background()

			view.SetPage(ctx, 4)
			view.Wait()
			require.Equal(t, 4, fetcher.query(0).Page)

			tc.mutate(view, ctx)
			view.Wait()

			require.Equal(t, 2, fetcher.calls())
			assert.Equal(t, 1, fetcher.query(1).Page, "mutation must reset to first page")
		})
	}
}

func TestView_SetPageKeepsQuery(t *testing.T) {
	fetcher := &fakeFetcher{responses: []fakeResponse{{page: pageOf(0)}}}
	view := New(fetcher.fetch, Options[row]{ID: rowID})
	ctx := context.Background()

	view.SetSearch(ctx, "cap")
	view.Wait()
	view.SetFilter(ctx, "statut", "7")
	view.Wait()
	view.SetPage(ctx, 3)
	view.Wait()

	require.Equal(t, 3, fetcher.calls())
	got := fetcher.query(2)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, "cap", got.Search)
	assert.Equal(t, "7", got.Filters["statut"])
}

func TestView_OneFetchPerMutation(t *testing.T) {
	fetcher := &fakeFetcher{responses: []fakeResponse{{page: pageOf(0)}}}
	view := New(fetcher.fetch, Options[row]{ID: rowID})
	ctx := context.Background()

	view.SetSearch(ctx, "a")
	view.SetFilter(ctx, "centre", "1")
	view.NextPage(ctx)
	view.PrevPage(ctx)
	view.Refresh(ctx)
	view.Wait()

	assert.Equal(t, 5, fetcher.calls())
}

func TestView_StaleResponseDiscarded(t *testing.T) {
	gate := make(chan struct{})
	// The fetch for "c" stalls and only answers after the one for "ca"
	// has already landed.
	fetch := func(ctx context.Context, q api.ListQuery) (*api.Page[row], error) {
		if q.Search == "c" {
			<-gate
			return pageOf(1, row{ID: 1, Name: "stale"}), nil
		}
		return pageOf(1, row{ID: 2, Name: "fresh"}), nil
	}
	view := New(fetch, Options[row]{ID: rowID})
	ctx := context.Background()

	view.SetSearch(ctx, "c")
	view.SetSearch(ctx, "ca")

	// Let the fresh response apply first, then release the stale one.
	require.Eventually(t, func() bool {
		snap := view.Snapshot()
		return len(snap.Rows) == 1 && snap.Rows[0].Name == "fresh"
	}, waitFor, tick)

	close(gate)
	view.Wait()

	snap := view.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "fresh", snap.Rows[0].Name, "late response for an old query must not win")
	assert.False(t, snap.Loading)
}

func TestView_SupersededFetchCancelled(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	first := true
	var mu sync.Mutex

	fetch := func(ctx context.Context, q api.ListQuery) (*api.Page[row], error) {
		mu.Lock()
		isFirst := first
		first = false
		mu.Unlock()

		if isFirst {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}
		return pageOf(1, row{ID: 2, Name: "second"}), nil
	}

	view := New(fetch, Options[row]{ID: rowID})
	ctx := context.Background()

	view.SetSearch(ctx, "a")
	<-started
	view.SetSearch(ctx, "ab")
	view.Wait()

	<-cancelled // would deadlock if the first context were never cancelled

	snap := view.Snapshot()
	require.NoError(t, snap.Err, "cancellation error of a stale fetch must not surface")
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "second", snap.Rows[0].Name)
}

func TestView_DeduplicatesRowsByID(t *testing.T) {
	fetcher := &fakeFetcher{responses: []fakeResponse{
		{page: pageOf(3, row{ID: 1, Name: "a"}, row{ID: 2, Name: "b"}, row{ID: 1, Name: "a again"})},
	}}
	view := New(fetcher.fetch, Options[row]{ID: rowID})

	view.Refresh(context.Background())
	view.Wait()

	snap := view.Snapshot()
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "a", snap.Rows[0].Name, "first occurrence wins")
	assert.Equal(t, "b", snap.Rows[1].Name)
}

func TestView_FetchErrorSurfaces(t *testing.T) {
	fetchErr := errors.New("boom")
	fetcher := &fakeFetcher{responses: []fakeResponse{
		{page: pageOf(1, row{ID: 1, Name: "kept"})},
		{err: fetchErr},
	}}
	view := New(fetcher.fetch, Options[row]{ID: rowID})
	ctx := context.Background()

	view.Refresh(ctx)
	view.Wait()
	view.Refresh(ctx)
	view.Wait()

	snap := view.Snapshot()
	require.ErrorIs(t, snap.Err, fetchErr)
	assert.False(t, snap.Loading)
	require.Len(t, snap.Rows, 1, "previous rows stay visible alongside the error")
}

func TestView_EmptyFilterValueRemovesKey(t *testing.T) {
	fetcher := &fakeFetcher{responses: []fakeResponse{{page: pageOf(0)}}}
	view := New(fetcher.fetch, Options[row]{ID: rowID})
	ctx := context.Background()

	view.SetFilter(ctx, "centre", "3")
	view.Wait()
	view.SetFilter(ctx, "centre", "")
	view.Wait()

	got := fetcher.query(1)
	_, ok := got.Filters["centre"]
	assert.False(t, ok)
}

func TestView_OnChangeNotified(t *testing.T) {
	var (
		mu    sync.Mutex
		snaps []Snapshot[row]
	)
	fetcher := &fakeFetcher{responses: []fakeResponse{
		{page: pageOf(1, row{ID: 1, Name: "only"})},
	}}
	view := New(fetcher.fetch, Options[row]{
		ID: rowID,
		OnChange: func(s Snapshot[row]) {
			mu.Lock()
			snaps = append(snaps, s)
			mu.Unlock()
		},
	})

	view.Refresh(context.Background())
	view.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snaps, 1)
	assert.Equal(t, 1, snaps[0].Total)
	assert.False(t, snaps[0].Loading)
}
