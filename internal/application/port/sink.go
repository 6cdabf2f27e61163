package port

// View 会话对外展示的状态
type View struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error"`
	ShowError bool   `json:"show_error"`
	Phase     string `json:"phase"`
}

type ViewSink interface {
	// WriteView is called from the session loop after every state change.
	WriteView(v View) error
}
