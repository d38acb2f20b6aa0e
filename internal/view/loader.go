package view

import (
	"context"
	"sync"
)

// Fetcher retrieves the two source collections. Client implements it against
// the REST API; tests substitute their own.
type Fetcher interface {
	FetchItems(ctx context.Context) ([]Item, error)
	FetchInventory(ctx context.Context) ([]InventoryRecord, error)
}

// LoadState is the loader's position in the two-fetch join.
type LoadState int

const (
	// LoadPending: a reload is running, nothing has arrived yet.
	LoadPending LoadState = iota
	// LoadPartial: exactly one collection has arrived. Aggregation never
	// runs in this state; partial data must not produce false zeroes.
	LoadPartial
	// LoadReady: both collections arrived and the summary is built.
	LoadReady
	// LoadError: at least one fetch failed; no summary is exposed.
	LoadError
)

// Loader owns the item and inventory collections and the summary derived from
// them. Both fetches run concurrently per reload and the summary is computed
// only once both have completed; results belonging to a superseded reload are
// discarded on arrival, so the exposed snapshot is always the latest
// completed pair regardless of request initiation order.
type Loader struct {
	fetcher Fetcher

	mu        sync.Mutex
	gen       uint64
	state     LoadState
	err       error
	items     []Item
	records   []InventoryRecord
	summaries Summaries
}

func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher, state: LoadPending}
}

// Reload starts fetching both collections. The returned channel receives the
// final state of this reload exactly once (LoadReady or LoadError), even when
// a newer reload has superseded it in the meantime.
func (l *Loader) Reload(ctx context.Context) <-chan LoadState {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.state = LoadPending
	l.err = nil
	l.mu.Unlock()

	done := make(chan LoadState, 1)

	type itemsResult struct {
		items []Item
		err   error
	}
	type recordsResult struct {
		records []InventoryRecord
		err     error
	}
	itemsCh := make(chan itemsResult, 1)
	recordsCh := make(chan recordsResult, 1)

	go func() {
		items, err := l.fetcher.FetchItems(ctx)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		records, err := l.fetcher.FetchInventory(ctx)
		recordsCh <- recordsResult{records, err}
	}()

	go func() {
		var (
			items    []Item
			records  []InventoryRecord
			fetchErr error
		)
		for i := 0; i < 2; i++ {
			select {
			case res := <-itemsCh:
				items = res.items
				if res.err != nil && fetchErr == nil {
					fetchErr = res.err
				}
			case res := <-recordsCh:
				records = res.records
				if res.err != nil && fetchErr == nil {
					fetchErr = res.err
				}
			}
			if i == 0 && fetchErr == nil {
				l.markPartial(gen)
			}
		}
		done <- l.finish(gen, items, records, fetchErr)
	}()

	return done
}

func (l *Loader) markPartial(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen && l.state == LoadPending {
		l.state = LoadPartial
	}
}

// finish installs the completed pair unless a newer reload owns the loader.
func (l *Loader) finish(gen uint64, items []Item, records []InventoryRecord, fetchErr error) LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()

	final := LoadReady
	if fetchErr != nil {
		final = LoadError
	}
	if l.gen != gen {
		// A newer reload superseded this one; drop the stale result.
		return final
	}
	if fetchErr != nil {
		l.state = LoadError
		l.err = fetchErr
		l.summaries = nil
		return final
	}
	l.items = items
	l.records = records
	l.summaries = Aggregate(items, records)
	l.state = LoadReady
	return final
}

// Snapshot returns the current collections, summary and state. The summary is
// only non-nil in LoadReady.
func (l *Loader) Snapshot() ([]Item, Summaries, LoadState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items, l.summaries, l.state, l.err
}
