package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"coinmarker/internal/application/port"
	"coinmarker/internal/application/usecase/editor"
)

// ChanSink 把会话视图转发到 channel，消费方跟不上时只保留最新的视图
type ChanSink chan port.View

func (c ChanSink) WriteView(v port.View) error {
	for {
		select {
		case c <- v:
			return nil
		default:
		}
		select {
		case <-c:
		default:
		}
	}
}

// Run 打开一个编辑会话并运行终端界面，直到用户退出或 ctx 结束
func Run(ctx context.Context, newSession func(port.ViewSink) *editor.Controller) error {
	views := make(ChanSink, 16)
	session := newSession(views)
	defer session.Close()

	log.Info().Str("session", session.ID()).Msg("tui session started")

	p := tea.NewProgram(NewModel(session, views), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
