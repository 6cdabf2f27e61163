package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinmarker/internal/domain/model"
)

func TestDecodeLookup(t *testing.T) {
	l, ok := decodeLookup(map[string]any{
		"ts_ms":   "99",
		"payload": `{"marker":"{{ Name/BTC }}","symbol":"BTC","outcome":"resolved","value":"Bitcoin"}`,
	})
	require.True(t, ok)
	assert.Equal(t, "Bitcoin", l.Value)
	assert.Equal(t, int64(99), l.Timestamp)

	_, ok = decodeLookup(map[string]any{"payload": "not json"})
	assert.False(t, ok)
	_, ok = decodeLookup(map[string]any{})
	assert.False(t, ok)
}

func TestNewDefaultsKeys(t *testing.T) {
	r := New(nil, "cm", 0, "", "")
	assert.Equal(t, "cm:lookups", r.stream)
	assert.Equal(t, "cm:lookups:pub", r.channel)
}

// requires a reachable server, e.g. COINMARKER_TEST_REDIS_ADDR=localhost:6379
func TestRedisRepoRoundTrip(t *testing.T) {
	addr := os.Getenv("COINMARKER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("COINMARKER_TEST_REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	prefix := "cmtest:" + uuid.NewString()
	repo := New(rdb, prefix, time.Minute, "", "")
	defer rdb.Del(ctx, repo.stream)

	require.NoError(t, repo.InsertLookup(ctx, &model.Lookup{Marker: "{{ Name/BTC }}", Action: "Name", Symbol: "BTC", Outcome: model.OutcomeResolved, Value: "Bitcoin", Timestamp: 1}))
	require.NoError(t, repo.InsertLookup(ctx, &model.Lookup{Marker: "{{ Name/ETH }}", Action: "Name", Symbol: "ETH", Outcome: model.OutcomeFailed, Timestamp: 2}))

	all, err := repo.ListLookups(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ETH", all[0].Symbol)

	btc, err := repo.ListLookups(ctx, "BTC", 10)
	require.NoError(t, err)
	require.Len(t, btc, 1)

	ttl, err := rdb.TTL(ctx, repo.stream).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
