package coinpaprika

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

const DefaultBaseURL = "https://api.coinpaprika.com"

// Client coinpaprika REST 客户端
type Client struct {
	baseURL  string
	client   *http.Client
	coalesce bool
	group    singleflight.Group
}

type Option func(*Client)

// WithHTTPClient 替换默认 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithCoalescing 合并并发的相同请求（不缓存结果）
func WithCoalescing(on bool) Option {
	return func(c *Client) { c.coalesce = on }
}

// NewClient 创建 coinpaprika 客户端
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResp struct {
	Currencies []model.Coin `json:"currencies"`
}

// SearchCoins 按 symbol 搜索币种
func (c *Client) SearchCoins(ctx context.Context, symbol string) ([]model.Coin, error) {
	q := url.Values{}
	q.Set("c", "currencies")
	q.Set("modifier", "symbol_search")
	q.Set("q", symbol)
	endpoint := fmt.Sprintf("%s/v1/search?%s", c.baseURL, q.Encode())

	var result searchResp
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("coinpaprika search %s: %w", symbol, err)
	}
	return result.Currencies, nil
}

// TodayOHLCV 获取币种当日 OHLCV
func (c *Client) TodayOHLCV(ctx context.Context, coinID string) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/v1/coins/%s/ohlcv/today", c.baseURL, url.PathEscape(coinID))

	var result []model.OHLCV
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("coinpaprika ohlcv %s: %w", coinID, err)
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if !c.coalesce {
		body, err := c.get(ctx, endpoint)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, out)
	}

	// 共享请求不跟随任一调用方的 ctx，超时由 http.Client 兜底
	ch := c.group.DoChan(endpoint, func() (any, error) {
		return c.get(context.WithoutCancel(ctx), endpoint)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		if res.Shared {
			log.Debug().Str("url", endpoint).Msg("coinpaprika request coalesced")
		}
		return json.Unmarshal(res.Val.([]byte), out)
	}
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Int64("took_ms", time.Since(start).Milliseconds()).
		Msg("coinpaprika request")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coinpaprika api error: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

var _ port.CoinSource = (*Client)(nil)
