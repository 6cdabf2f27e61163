package svc

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	appcontainer "coinmarker/internal/application/container"
	"coinmarker/internal/application/port"
	"coinmarker/internal/application/service"
	"coinmarker/internal/application/usecase/editor"
	"coinmarker/internal/infrastructure/coinpaprika"
	"coinmarker/internal/infrastructure/config"
	"coinmarker/internal/infrastructure/container"
)

type ServiceContext struct {
	Ctx    context.Context
	Config *config.Config

	// 基础设施层（第一层初始化）
	infra *container.Container
	coins *coinpaprika.Client

	// 应用层
	app *appcontainer.Container
}

// New 创建并初始化 ServiceContext
// 这是应用启动的唯一入口点，所有依赖初始化都在这里完成
func New(ctx context.Context, cfg *config.Config) (*ServiceContext, error) {
	infra, err := container.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageInitFailed, err)
	}

	coins := coinpaprika.NewClient(
		cfg.Coinpaprika.BaseURL,
		cfg.CoinpaprikaTimeout(),
		coinpaprika.WithCoalescing(cfg.Coinpaprika.Coalesce),
	)
	return NewWithSource(ctx, cfg, infra, coins), nil
}

// NewWithSource 使用给定的币种数据源组装应用层，测试时可传入假实现
func NewWithSource(ctx context.Context, cfg *config.Config, infra *container.Container, coins port.CoinSource) *ServiceContext {
	sc := &ServiceContext{
		Ctx:    ctx,
		Config: cfg,
		infra:  infra,
		app:    appcontainer.New(coins, infra.Journal(), cfg.QuietPeriod()),
	}
	if c, ok := coins.(*coinpaprika.Client); ok {
		sc.coins = c
	}

	log.Info().
		Str("coinpaprika", cfg.Coinpaprika.BaseURL).
		Dur("quiet_period", cfg.QuietPeriod()).
		Bool("coalesce", cfg.Coinpaprika.Coalesce).
		Msg("✓ All components initialized")
	return sc
}

// RenderService 一次性渲染
func (sc *ServiceContext) RenderService() *service.RenderService {
	return sc.app.RenderService()
}

// JournalService 查询日志
func (sc *ServiceContext) JournalService() *service.JournalService {
	return sc.app.JournalService()
}

// NewSession 创建编辑会话
func (sc *ServiceContext) NewSession(sink port.ViewSink) *editor.Controller {
	return sc.app.NewSession(sink)
}

// CoinClient 获取 coinpaprika 客户端，使用假数据源时为 nil
func (sc *ServiceContext) CoinClient() *coinpaprika.Client {
	return sc.coins
}

// Close 关闭 ServiceContext 中的所有资源
// 应该在应用退出时调用
func (sc *ServiceContext) Close() error {
	return sc.infra.Close()
}
