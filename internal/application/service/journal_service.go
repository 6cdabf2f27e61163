package service

import (
	"context"
	"strings"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

const defaultJournalLimit = 50

type JournalService struct {
	repo port.Repository
}

func NewJournalService(repo port.Repository) *JournalService {
	return &JournalService{repo: repo}
}

// Recent 返回某个 symbol 最近的查询记录；symbol 为空时返回全部
func (s *JournalService) Recent(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultJournalLimit
	}
	return s.repo.ListLookups(ctx, strings.TrimSpace(symbol), limit)
}
