package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// scanWindow 按 symbol 过滤时最多回看的 stream 条目数
const scanWindow = 1000

type Repo struct {
	rdb     *redis.Client
	prefix  string
	ttl     time.Duration // stream 在最后一次写入后的过期时间, 0 不过期
	stream  string
	channel string
}

func New(rdb *redis.Client, prefix string, ttl time.Duration, stream, channel string) *Repo {
	if strings.TrimSpace(stream) == "" {
		stream = prefix + ":lookups"
	}
	if strings.TrimSpace(channel) == "" {
		channel = prefix + ":lookups:pub"
	}
	return &Repo{
		rdb:     rdb,
		prefix:  prefix,
		ttl:     ttl,
		stream:  stream,
		channel: channel,
	}
}

func (r *Repo) InsertLookup(ctx context.Context, l *model.Lookup) error {
	b, _ := json.Marshal(l)

	// 1) Stream: XADD <stream> * ts_ms ... payload
	pipe := r.rdb.Pipeline()
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"ts_ms":   l.Timestamp,
			"symbol":  l.Symbol,
			"outcome": l.Outcome,
			"payload": string(b),
		},
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, r.stream, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// 2) PubSub: PUBLISH <channel> json
	return r.rdb.Publish(ctx, r.channel, string(b)).Err()
}

func (r *Repo) ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	count := int64(limit)
	if symbol != "" || limit <= 0 {
		count = scanWindow
	}
	msgs, err := r.rdb.XRevRangeN(ctx, r.stream, "+", "-", count).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Lookup, 0, len(msgs))
	for _, msg := range msgs {
		l, ok := decodeLookup(msg.Values)
		if !ok || (symbol != "" && l.Symbol != symbol) {
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *Repo) Close() error { return nil }

func decodeLookup(values map[string]any) (*model.Lookup, bool) {
	raw, ok := values["payload"].(string)
	if !ok {
		return nil, false
	}
	var l model.Lookup
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, false
	}
	if l.Timestamp == 0 {
		if s, ok := values["ts_ms"].(string); ok {
			l.Timestamp, _ = strconv.ParseInt(s, 10, 64)
		}
	}
	return &l, true
}

var _ port.Repository = (*Repo)(nil)
