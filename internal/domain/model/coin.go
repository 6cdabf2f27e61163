package model

import "time"

// ========== Coin Models ==========

// Coin 币种搜索结果
type Coin struct {
	ID       string `json:"id"` // 内部标识，如 "btc-bitcoin"
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Rank     int    `json:"rank"`
	IsNew    bool   `json:"is_new"`
	IsActive bool   `json:"is_active"`
	Type     string `json:"type"`
}

// OHLCV 日线价格记录
type OHLCV struct {
	TimeOpen  time.Time `json:"time_open"`
	TimeClose time.Time `json:"time_close"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	MarketCap float64   `json:"market_cap"`
}

// FindBySymbol 精确匹配（大小写敏感）返回第一个 symbol 相同的币种
func FindBySymbol(coins []Coin, symbol string) (Coin, bool) {
	for _, c := range coins {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Coin{}, false
}
