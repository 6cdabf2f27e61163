package editor

import (
	"coinmarker/internal/application/port"
	"coinmarker/internal/application/service"
	"coinmarker/internal/domain/marker"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseResolving
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseResolving:
		return "resolving"
	default:
		return "idle"
	}
}

// State 会话状态快照，所有变更都返回新值
type State struct {
	Text     string
	Resolved marker.Resolutions
	Error    string
	Loading  bool
	Phase    Phase
}

// Edit 每次按键：更新文本并立即清空错误提示
func (s State) Edit(text string) State {
	s.Text = text
	s.Error = ""
	s.Phase = PhaseEditing
	return s
}

// Begin 扫描当前文本，返回需要解析的标记
// 没有未解析标记时不进入 loading
func (s State) Begin() (State, []marker.Marker) {
	pending := marker.Unresolved(marker.Scan(s.Text), s.Resolved)
	if len(pending) == 0 {
		s.Phase = PhaseIdle
		return s, nil
	}
	s.Loading = true
	s.Phase = PhaseResolving
	return s, pending
}

// Complete 一次性合并整批结果（已有条目不会被覆盖）
func (s State) Complete(b service.Batch) State {
	s.Resolved = s.Resolved.Merge(b.Resolved)
	s.Loading = false
	if b.Error != "" {
		s.Error = b.Error
	}
	if s.Phase == PhaseResolving {
		s.Phase = PhaseIdle
	}
	return s
}

func (s State) Output() string {
	return marker.Compose(s.Text, s.Resolved)
}

// ShowError 横幅只在非 loading 且有错误时显示
func (s State) ShowError() bool {
	return s.Error != "" && !s.Loading
}

func (s State) View(sessionID string) port.View {
	return port.View{
		SessionID: sessionID,
		Output:    s.Output(),
		Loading:   s.Loading,
		Error:     s.Error,
		ShowError: s.ShowError(),
		Phase:     s.Phase.String(),
	}
}
