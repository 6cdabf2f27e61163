package composite

import (
	"context"
	"errors"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

type Repo struct {
	repos []port.Repository
}

func New(repos ...port.Repository) *Repo {
	// nil repos are allowed; filter in constructor for safety
	out := make([]port.Repository, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

// Len 后端数量
func (r *Repo) Len() int { return len(r.repos) }

func (r *Repo) InsertLookup(ctx context.Context, l *model.Lookup) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.InsertLookup(ctx, l); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ListLookups 依次尝试，返回第一个成功的后端的结果
func (r *Repo) ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	var errs []error
	for _, repo := range r.repos {
		out, err := repo.ListLookups(ctx, symbol, limit)
		if err == nil {
			return out, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Close 后端的生命周期由容器管理
func (r *Repo) Close() error { return nil }

var _ port.Repository = (*Repo)(nil)
