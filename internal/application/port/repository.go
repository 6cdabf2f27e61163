package port

import (
	"context"

	"coinmarker/internal/domain/model"
)

type Repository interface {
	// Lookup journal
	InsertLookup(ctx context.Context, l *model.Lookup) error
	ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error)

	// Connection management
	Close() error
}
