package marker

import (
	"errors"
	"strings"
)

// Action 标记中请求的操作
type Action string

const (
	ActionName  Action = "name"
	ActionPrice Action = "price"
)

// Supported 返回操作是否在支持集合中（大小写不敏感）
func (a Action) Supported() bool {
	switch a.normalized() {
	case ActionName, ActionPrice:
		return true
	}
	return false
}

// Is 大小写不敏感地比较操作
func (a Action) Is(other Action) bool {
	return a.normalized() == other.normalized()
}

func (a Action) normalized() Action {
	return Action(strings.ToLower(string(a)))
}

// Marker 用户文本中的占位符，例如 "{{ Name/BTC }}"
// 作为缓存键时按原样使用（包括花括号和空格）
type Marker string

func (m Marker) String() string { return string(m) }

var ErrMalformed = errors.New("malformed marker")

// Parse 去掉分隔符并按 "/" 拆分出 Action 和 Symbol
// Action 保留用户输入的大小写，诊断信息需要原样展示
func (m Marker) Parse() (Action, string, error) {
	s := string(m)
	if !strings.HasPrefix(s, openDelim) || !strings.HasSuffix(s, closeDelim) {
		return "", "", ErrMalformed
	}
	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, openDelim), closeDelim))
	action, symbol, ok := strings.Cut(body, "/")
	if !ok || action == "" || symbol == "" || strings.Contains(symbol, "/") {
		return "", "", ErrMalformed
	}
	return Action(action), symbol, nil
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
)
