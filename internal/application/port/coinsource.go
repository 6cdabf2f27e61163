package port

import (
	"context"

	"coinmarker/internal/domain/model"
)

// CoinSource 外部币种数据接口（symbol 搜索 + 日线价格）
type CoinSource interface {
	// SearchCoins returns the coins matching a symbol query. An empty result is
	// not an error.
	SearchCoins(ctx context.Context, symbol string) ([]model.Coin, error)

	// TodayOHLCV returns the daily series for a coin, most recent first.
	TodayOHLCV(ctx context.Context, coinID string) ([]model.OHLCV, error)
}
