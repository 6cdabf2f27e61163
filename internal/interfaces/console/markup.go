package console

import (
	"strings"

	"golang.org/x/net/html"
)

// Segment 输出中的一段文本；Class 非空时表示诊断片段
type Segment struct {
	Text  string
	Class string
	Title string
}

// Segments 把编辑器输出的标记拆成纯文本段，实体会被反转义
func Segments(markup string) []Segment {
	var out []Segment
	var cur *Segment // open diagnostic span

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.TextToken:
			text := string(z.Text())
			if cur != nil {
				cur.Text += text
				continue
			}
			if n := len(out); n > 0 && out[n-1].Class == "" {
				out[n-1].Text += text
				continue
			}
			out = append(out, Segment{Text: text})
		case html.StartTagToken:
			tok := z.Token()
			if tok.Data != "span" {
				continue
			}
			seg := Segment{}
			for _, a := range tok.Attr {
				switch a.Key {
				case "class":
					seg.Class = a.Val
				case "title":
					seg.Title = a.Val
				}
			}
			cur = &seg
		case html.EndTagToken:
			if cur != nil {
				out = append(out, *cur)
				cur = nil
			}
		}
	}
}

// PlainText 去掉所有标签
func PlainText(markup string) string {
	var sb strings.Builder
	for _, s := range Segments(markup) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
