package container

import (
	"time"

	"coinmarker/internal/application/port"
	"coinmarker/internal/application/service"
	"coinmarker/internal/application/usecase/editor"
)

// Container 应用层服务，构造时一次性创建，可并发使用
type Container struct {
	coins       port.CoinSource
	repo        port.Repository
	quietPeriod time.Duration

	resolver       *service.Resolver
	renderService  *service.RenderService
	journalService *service.JournalService
}

func New(coins port.CoinSource, repo port.Repository, quietPeriod time.Duration) *Container {
	c := &Container{
		coins:       coins,
		repo:        repo,
		quietPeriod: quietPeriod,
	}
	c.resolver = service.NewResolver(coins, repo)
	c.renderService = service.NewRenderService(c.resolver)
	c.journalService = service.NewJournalService(repo)
	return c
}

func (c *Container) Repository() port.Repository {
	return c.repo
}

func (c *Container) Resolver() *service.Resolver {
	return c.resolver
}

func (c *Container) RenderService() *service.RenderService {
	return c.renderService
}

func (c *Container) JournalService() *service.JournalService {
	return c.journalService
}

// NewSession 每个编辑会话一个 Controller，调用方负责 Close
func (c *Container) NewSession(sink port.ViewSink) *editor.Controller {
	return editor.NewController(editor.Deps{
		Resolver:    c.Resolver(),
		Sink:        sink,
		QuietPeriod: c.quietPeriod,
	})
}
