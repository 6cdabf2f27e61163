package editor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"coinmarker/internal/application/port"
	"coinmarker/internal/application/service"
)

const DefaultQuietPeriod = 500 * time.Millisecond

// BatchResolver 解析一批标记（service.Resolver 实现）
type BatchResolver interface {
	Resolve(ctx context.Context, req service.BatchRequest) service.Batch
}

type Deps struct {
	Resolver    BatchResolver
	Sink        port.ViewSink // 可为 nil
	QuietPeriod time.Duration
	SessionID   string // 为空时自动生成
}

type event interface{}

type inputEvent struct{ text string }

type fireEvent struct{}

type batchDoneEvent struct{ batch service.Batch }

// Controller 单个编辑会话
// 所有状态变更都在一个事件循环 goroutine 中顺序执行
type Controller struct {
	id   string
	deps Deps

	events    chan event
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	debounce  *Debouncer
	current   atomic.Pointer[State]
	batches   atomic.Int64

	// owned by the loop goroutine
	st       State
	inFlight bool
	rerun    bool
}

func NewController(deps Deps) *Controller {
	if deps.QuietPeriod <= 0 {
		deps.QuietPeriod = DefaultQuietPeriod
	}
	if deps.SessionID == "" {
		deps.SessionID = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		id:     deps.SessionID,
		deps:   deps,
		events: make(chan event, 64),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	c.debounce = NewDebouncer(deps.QuietPeriod, func() { c.post(fireEvent{}) })
	c.current.Store(&State{})

	c.wg.Add(1)
	go c.loop()

	log.Debug().Str("session", c.id).Dur("quiet_period", deps.QuietPeriod).Msg("editor session started")
	return c
}

func (c *Controller) ID() string { return c.id }

// Input 用户输入了新的完整文本
func (c *Controller) Input(text string) {
	c.post(inputEvent{text: text})
}

// State 返回最近一次状态快照
func (c *Controller) State() State {
	return *c.current.Load()
}

func (c *Controller) View() port.View {
	return c.State().View(c.id)
}

// Batches 已启动的解析批次数量
func (c *Controller) Batches() int {
	return int(c.batches.Load())
}

// Close 释放定时器并结束会话，可重复调用
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.debounce.Stop()
		c.cancel()
		close(c.done)
		c.wg.Wait()
		log.Debug().Str("session", c.id).Msg("editor session closed")
	})
}

func (c *Controller) post(ev event) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Controller) loop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.events:
			switch e := ev.(type) {
			case inputEvent:
				c.onInput(e.text)
			case fireEvent:
				c.onFire()
			case batchDoneEvent:
				c.onBatchDone(e.batch)
			}
		}
	}
}

func (c *Controller) onInput(text string) {
	c.apply(c.st.Edit(text))
	if text == "" {
		c.debounce.Cancel()
		return
	}
	c.debounce.Trigger()
}

func (c *Controller) onFire() {
	if c.inFlight {
		// one batch at a time; run again on the latest text when it completes
		c.rerun = true
		return
	}
	c.startBatch()
}

func (c *Controller) startBatch() {
	next, pending := c.st.Begin()
	if len(pending) == 0 && c.debounce.Pending() {
		next.Phase = PhaseEditing
	}
	c.apply(next)
	if len(pending) == 0 {
		return
	}

	c.inFlight = true
	c.batches.Add(1)
	req := service.BatchRequest{
		SessionID: c.id,
		Markers:   pending,
		Known:     c.st.Resolved,
	}

	log.Debug().Str("session", c.id).Int("markers", len(pending)).Msg("resolution batch started")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		b := c.deps.Resolver.Resolve(c.ctx, req)
		select {
		case c.events <- batchDoneEvent{batch: b}:
		case <-c.done:
		}
	}()
}

func (c *Controller) onBatchDone(b service.Batch) {
	c.inFlight = false
	c.apply(c.st.Complete(b))

	log.Debug().
		Str("session", c.id).
		Int("resolved", len(b.Resolved)).
		Int("failed", len(b.Failed)).
		Int("calls", b.Calls).
		Msg("resolution batch completed")

	if c.rerun {
		c.rerun = false
		c.startBatch()
	}
}

func (c *Controller) apply(st State) {
	c.st = st
	snap := st
	c.current.Store(&snap)

	if c.deps.Sink == nil {
		return
	}
	if err := c.deps.Sink.WriteView(st.View(c.id)); err != nil {
		log.Warn().Err(err).Str("session", c.id).Msg("write view failed")
	}
}
