package marker

import (
	"fmt"

	"golang.org/x/net/html"
)

// CSS classes carried by diagnostic fragments.
const (
	ClassInvalidName   = "invalid-name"
	ClassInvalidMethod = "invalid-method"
)

// InvalidMethod 未支持的操作：保留原始标记文本并附带诊断标题
func InvalidMethod(m Marker, action Action) string {
	return diagnostic(ClassInvalidMethod, "Invalid method: "+string(action), m)
}

// InvalidSymbol 未找到币种：保留原始标记文本并附带诊断标题
func InvalidSymbol(m Marker, symbol string) string {
	return diagnostic(ClassInvalidName, "Invalid bitcoin symbol: "+symbol, m)
}

// Text escapes a resolved plain-text value for inclusion in markup.
func Text(s string) string {
	return html.EscapeString(s)
}

func diagnostic(class, title string, m Marker) string {
	return fmt.Sprintf(`<span class="%s" title="%s">%s</span>`,
		class, html.EscapeString(title), html.EscapeString(string(m)))
}
