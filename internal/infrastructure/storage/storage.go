// Package storage holds the lookup journal backends. Memory is used when no
// persistent backend is enabled.
package storage

import (
	"context"
	"sync"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

// DefaultMemoryCapacity 内存日志默认保留条数
const DefaultMemoryCapacity = 1024

// Memory 固定容量的环形日志，写满后覆盖最旧的记录
type Memory struct {
	mu   sync.Mutex
	buf  []model.Lookup
	next int
	full bool
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{buf: make([]model.Lookup, capacity)}
}

func (m *Memory) InsertLookup(ctx context.Context, l *model.Lookup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf[m.next] = *l
	m.next = (m.next + 1) % len(m.buf)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// ListLookups 按写入顺序倒序返回
func (m *Memory) ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.next
	if m.full {
		n = len(m.buf)
	}
	var out []*model.Lookup
	for i := 0; i < n; i++ {
		idx := (m.next - 1 - i + len(m.buf)) % len(m.buf)
		l := m.buf[idx]
		if symbol != "" && l.Symbol != symbol {
			continue
		}
		out = append(out, &l)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.full {
		return len(m.buf)
	}
	return m.next
}

func (m *Memory) Close() error { return nil }

var _ port.Repository = (*Memory)(nil)
