package console

import (
	"fmt"
	"io"
	"strings"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/marker"
)

// ANSI color codes
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
)

// Colorize applies ANSI color to a string
func Colorize(s, color string) string {
	return color + s + ansiReset
}

// Format 输出格式
type Format string

const (
	FormatHTML  Format = "html"  // 原样输出标记
	FormatText  Format = "text"  // 纯文本，诊断片段着色并附带标题
	FormatPlain Format = "plain" // 纯文本，无颜色
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatText, FormatPlain:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want html, text or plain)", s)
	}
}

type Sink struct {
	out    io.Writer
	errOut io.Writer
	format Format
}

func NewSink(out, errOut io.Writer, format Format) *Sink {
	return &Sink{out: out, errOut: errOut, format: format}
}

// WriteView 输出正文；横幅文案写到 errOut
func (s *Sink) WriteView(v port.View) error {
	out := s.Render(v.Output)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(s.out, out); err != nil {
		return err
	}
	if !v.ShowError {
		return nil
	}
	msg := v.Error
	if s.format == FormatText {
		msg = Colorize(msg, ansiRed)
	}
	_, err := fmt.Fprintln(s.errOut, msg)
	return err
}

// Render 按格式转换一段输出标记
func (s *Sink) Render(markup string) string {
	switch s.format {
	case FormatHTML:
		return markup
	case FormatPlain:
		return PlainText(markup)
	}

	var sb strings.Builder
	for _, seg := range Segments(markup) {
		if seg.Class == "" {
			sb.WriteString(seg.Text)
			continue
		}
		color := ansiYellow
		if seg.Class == marker.ClassInvalidMethod {
			color = ansiRed
		}
		sb.WriteString(Colorize(seg.Text, color))
		if seg.Title != "" {
			sb.WriteString(Colorize(" ("+seg.Title+")", ansiDim))
		}
	}
	return sb.String()
}

var _ port.ViewSink = (*Sink)(nil)
