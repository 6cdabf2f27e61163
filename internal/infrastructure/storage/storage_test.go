package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinmarker/internal/domain/model"
)

func TestMemoryNewestFirst(t *testing.T) {
	m := NewMemory(10)
	ctx := context.Background()
	for i, sym := range []string{"BTC", "ETH", "BTC"} {
		require.NoError(t, m.InsertLookup(ctx, &model.Lookup{Symbol: sym, Timestamp: int64(i)}))
	}

	all, err := m.ListLookups(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(2), all[0].Timestamp)
	assert.Equal(t, int64(0), all[2].Timestamp)

	btc, err := m.ListLookups(ctx, "BTC", 1)
	require.NoError(t, err)
	require.Len(t, btc, 1)
	assert.Equal(t, int64(2), btc[0].Timestamp)
}

func TestMemoryWrapsAround(t *testing.T) {
	m := NewMemory(3)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.InsertLookup(ctx, &model.Lookup{Symbol: "BTC", Timestamp: int64(i)}))
	}
	assert.Equal(t, 3, m.Len())

	all, err := m.ListLookups(ctx, "", 0)
	require.NoError(t, err)
	var ts []int64
	for _, l := range all {
		ts = append(ts, l.Timestamp)
	}
	assert.Equal(t, []int64{4, 3, 2}, ts)
}

func TestMemoryDefaultCapacity(t *testing.T) {
	m := NewMemory(0)
	assert.Len(t, m.buf, DefaultMemoryCapacity)
	assert.Zero(t, m.Len())
}
