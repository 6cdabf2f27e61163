package model

// Lookup outcome constants
const (
	OutcomeResolved      = "resolved"
	OutcomeNotFound      = "not_found"
	OutcomeInvalidMethod = "invalid_method"
	OutcomeFailed        = "failed"
)

// Lookup 一次标记解析尝试的日志记录
type Lookup struct {
	SessionID string `json:"session_id"`
	Marker    string `json:"marker"`
	Action    string `json:"action"`
	Symbol    string `json:"symbol"`
	Outcome   string `json:"outcome"`
	Value     string `json:"value,omitempty"` // 解析结果或诊断片段
	Err       string `json:"err,omitempty"`
	Timestamp int64  `json:"ts_ms"`
}
