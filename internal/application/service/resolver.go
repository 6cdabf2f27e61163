package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/marker"
	"coinmarker/internal/domain/model"
)

// 横幅提示文案
const (
	MsgMarkupErrors = "You have some errors in your markup."
	MsgFetchFailed  = "Sorry, there was an error while fetching coin data"
)

var (
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrSymbolNotFound    = errors.New("symbol not found")
	ErrEmptySeries       = errors.New("empty price series")
)

// BatchRequest 一次防抖触发后需要解析的标记
type BatchRequest struct {
	SessionID string
	Markers   []marker.Marker
	Known     marker.Resolutions // 已解析的标记会被跳过
}

// Batch 一批解析结果，由调用方一次性合并
type Batch struct {
	Resolved map[marker.Marker]string
	Error    string          // 横幅文案，空表示没有错误
	Failed   []marker.Marker // 临时失败，下一轮重试
	Calls    int             // 外部调用次数
}

type Resolver struct {
	coins port.CoinSource
	repo  port.Repository
	now   func() time.Time
}

// NewResolver 创建解析器；repo 可以为 nil（不记录查询日志）
func NewResolver(coins port.CoinSource, repo port.Repository) *Resolver {
	return &Resolver{coins: coins, repo: repo, now: time.Now}
}

// Resolve 顺序解析所有未知标记，不会并发发起请求
// 所有错误都在单个标记的边界内被转换为片段或横幅文案
func (r *Resolver) Resolve(ctx context.Context, req BatchRequest) Batch {
	b := Batch{Resolved: make(map[marker.Marker]string)}

	for _, m := range marker.Unresolved(req.Markers, req.Known) {
		if ctx.Err() != nil {
			break
		}
		if _, done := b.Resolved[m]; done {
			continue
		}

		action, symbol, err := m.Parse()
		rec := &model.Lookup{
			SessionID: req.SessionID,
			Marker:    m.String(),
			Action:    string(action),
			Symbol:    symbol,
		}

		var value string
		var calls int
		if err == nil {
			value, calls, err = r.resolveOne(ctx, action, symbol)
		} else {
			err = fmt.Errorf("%w: %v", ErrUnsupportedAction, err)
		}
		b.Calls += calls

		switch {
		case err == nil:
			b.Resolved[m] = value
			rec.Outcome = model.OutcomeResolved
			rec.Value = value

		case errors.Is(err, ErrUnsupportedAction):
			b.Resolved[m] = marker.InvalidMethod(m, action)
			b.Error = MsgMarkupErrors
			rec.Outcome = model.OutcomeInvalidMethod
			rec.Value = b.Resolved[m]

		case errors.Is(err, ErrSymbolNotFound):
			b.Resolved[m] = marker.InvalidSymbol(m, symbol)
			rec.Outcome = model.OutcomeNotFound
			rec.Value = b.Resolved[m]

		case ctx.Err() != nil:
			// session closed mid-call, nothing to report
			return b

		default:
			b.Error = MsgFetchFailed
			b.Failed = append(b.Failed, m)
			rec.Outcome = model.OutcomeFailed
			rec.Err = err.Error()
			log.Warn().Err(err).Str("marker", m.String()).Str("session", req.SessionID).Msg("marker lookup failed")
		}

		r.record(ctx, rec)
	}

	return b
}

func (r *Resolver) resolveOne(ctx context.Context, action marker.Action, symbol string) (string, int, error) {
	switch {
	case action.Is(marker.ActionName):
		coin, err := r.findCoin(ctx, symbol)
		if err != nil {
			return "", 1, err
		}
		return marker.Text(coin.Name), 1, nil

	case action.Is(marker.ActionPrice):
		coin, err := r.findCoin(ctx, symbol)
		if err != nil {
			return "", 1, err
		}
		series, err := r.coins.TodayOHLCV(ctx, coin.ID)
		if err != nil {
			return "", 2, err
		}
		if len(series) == 0 {
			return "", 2, fmt.Errorf("%w: %s", ErrEmptySeries, coin.ID)
		}
		return FormatPrice(series[0].Close), 2, nil

	default:
		return "", 0, fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
}

func (r *Resolver) findCoin(ctx context.Context, symbol string) (model.Coin, error) {
	coins, err := r.coins.SearchCoins(ctx, symbol)
	if err != nil {
		return model.Coin{}, err
	}
	coin, ok := model.FindBySymbol(coins, symbol)
	if !ok {
		return model.Coin{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return coin, nil
}

func (r *Resolver) record(ctx context.Context, rec *model.Lookup) {
	if r.repo == nil {
		return
	}
	rec.Timestamp = r.now().UnixMilli()
	if err := r.repo.InsertLookup(ctx, rec); err != nil {
		log.Warn().Err(err).Str("marker", rec.Marker).Msg("lookup journal write failed")
		return
	}
	log.Debug().
		Str("session", rec.SessionID).
		Str("marker", rec.Marker).
		Str("outcome", rec.Outcome).
		Msg("lookup recorded")
}

// FormatPrice 美元格式，固定两位小数，例如 $57427.40
func FormatPrice(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
