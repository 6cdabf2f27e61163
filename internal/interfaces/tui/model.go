// Package tui is a terminal editor: a textarea on top, the resolved output
// below, with the same loading and error banner rules as the web page.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/marker"
	"coinmarker/internal/interfaces/console"
)

// Session 编辑会话（editor.Controller 实现）
type Session interface {
	Input(text string)
	View() port.View
}

type viewMsg port.View

type styles struct {
	title         lipgloss.Style
	output        lipgloss.Style
	banner        lipgloss.Style
	invalidName   lipgloss.Style
	invalidMethod lipgloss.Style
	help          lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		output:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		banner:        lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
		invalidName:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true),
		invalidMethod: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Underline(true),
		help:          lipgloss.NewStyle().Faint(true),
	}
}

type Model struct {
	session Session
	views   <-chan port.View
	input   textarea.Model
	spinner spinner.Model
	styles  styles

	view  port.View
	text  string
	width int
}

func NewModel(session Session, views <-chan port.View) Model {
	ta := textarea.New()
	ta.Placeholder = "Type text with markers like {{ Name/BTC }} or {{ Price/BTC }}"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(6)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session: session,
		views:   views,
		input:   ta,
		spinner: sp,
		styles:  defaultStyles(),
		view:    session.View(),
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, waitForView(m.views))
}

func waitForView(views <-chan port.View) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-views
		if !ok {
			return nil
		}
		return viewMsg(v)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-2, 20))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

	case viewMsg:
		m.view = port.View(msg)
		return m, waitForView(m.views)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if v := m.input.Value(); v != m.text {
		m.text = v
		m.session.Input(v)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("Coin Marker Editor"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	if m.view.Loading {
		sb.WriteString(m.spinner.View() + " Loading…\n")
	}
	if m.view.ShowError {
		sb.WriteString(m.styles.banner.Render(m.view.Error) + "\n")
	}

	sb.WriteString(m.styles.output.Width(max(m.width-4, 20)).Render(m.renderOutput()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.help.Render("esc / ctrl+c to quit"))
	return sb.String()
}

func (m Model) renderOutput() string {
	var sb strings.Builder
	for _, seg := range console.Segments(m.view.Output) {
		switch seg.Class {
		case "":
			sb.WriteString(seg.Text)
		case marker.ClassInvalidMethod:
			sb.WriteString(m.styles.invalidMethod.Render(seg.Text))
		default:
			sb.WriteString(m.styles.invalidName.Render(seg.Text))
		}
	}
	return sb.String()
}
