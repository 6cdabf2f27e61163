// Package porttest provides in-memory implementations of the application
// ports for tests.
package porttest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

var ErrUnavailable = errors.New("coin source unavailable")

// Call is one recorded CoinSource request.
type Call struct {
	Method string // "search" or "ohlcv"
	Arg    string
}

// FakeCoins serves canned search results and price series.
type FakeCoins struct {
	mu     sync.Mutex
	coins  map[string][]model.Coin
	series map[string][]model.OHLCV
	fail   map[string]error
	calls  []Call
}

func NewFakeCoins() *FakeCoins {
	return &FakeCoins{
		coins:  make(map[string][]model.Coin),
		series: make(map[string][]model.OHLCV),
		fail:   make(map[string]error),
	}
}

func (f *FakeCoins) WithCoins(query string, coins ...model.Coin) *FakeCoins {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coins[query] = coins
	return f
}

func (f *FakeCoins) WithSeries(coinID string, series ...model.OHLCV) *FakeCoins {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.series[coinID] = series
	return f
}

// FailOn makes requests with the given argument fail with err.
func (f *FakeCoins) FailOn(arg string, err error) *FakeCoins {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, arg)
	} else {
		f.fail[arg] = err
	}
	return f
}

func (f *FakeCoins) SearchCoins(ctx context.Context, symbol string) ([]model.Coin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "search", Arg: symbol})
	if err := f.fail[symbol]; err != nil {
		return nil, err
	}
	return f.coins[symbol], nil
}

func (f *FakeCoins) TodayOHLCV(ctx context.Context, coinID string) ([]model.OHLCV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "ohlcv", Arg: coinID})
	if err := f.fail[coinID]; err != nil {
		return nil, err
	}
	return f.series[coinID], nil
}

func (f *FakeCoins) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeCoins) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var _ port.CoinSource = (*FakeCoins)(nil)

// MemoryRepo keeps journal records in memory.
type MemoryRepo struct {
	mu      sync.Mutex
	lookups []*model.Lookup
	err     error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

// FailWith makes every InsertLookup and ListLookups return err.
func (r *MemoryRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryRepo) InsertLookup(ctx context.Context, l *model.Lookup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *l
	r.lookups = append(r.lookups, &cp)
	return nil
}

func (r *MemoryRepo) ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*model.Lookup
	for _, l := range r.lookups {
		if symbol == "" || l.Symbol == symbol {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Close() error { return nil }

var _ port.Repository = (*MemoryRepo)(nil)
