package console

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinmarker/internal/application/port"
)

const sample = `Bitcoin &amp; friends <span class="invalid-name" title="Invalid bitcoin symbol: XYZ">{{ Name/XYZ }}</span> <span class="invalid-method" title="Invalid method: Foo">{{ Foo/BTC }}</span>`

func TestSegments(t *testing.T) {
	want := []Segment{
		{Text: "Bitcoin & friends "},
		{Text: "{{ Name/XYZ }}", Class: "invalid-name", Title: "Invalid bitcoin symbol: XYZ"},
		{Text: " "},
		{Text: "{{ Foo/BTC }}", Class: "invalid-method", Title: "Invalid method: Foo"},
	}
	if diff := cmp.Diff(want, Segments(sample)); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, Segments(""))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Bitcoin & friends {{ Name/XYZ }} {{ Foo/BTC }}", PlainText(sample))
	assert.Equal(t, "{{ Name/BTC }}", PlainText("{{ Name/BTC }}"))
}

func TestRenderFormats(t *testing.T) {
	assert.Equal(t, sample, NewSink(nil, nil, FormatHTML).Render(sample))

	text := NewSink(nil, nil, FormatText).Render(sample)
	assert.Contains(t, text, Colorize("{{ Foo/BTC }}", ansiRed))
	assert.Contains(t, text, Colorize("{{ Name/XYZ }}", ansiYellow))
	assert.Contains(t, text, "(Invalid method: Foo)")
}

func TestWriteViewBanner(t *testing.T) {
	var out, errOut bytes.Buffer
	s := NewSink(&out, &errOut, FormatPlain)

	require.NoError(t, s.WriteView(port.View{Output: "Bitcoin", Error: "boom", ShowError: true}))
	assert.Equal(t, "Bitcoin\n", out.String())
	assert.Equal(t, "boom\n", errOut.String())

	out.Reset()
	errOut.Reset()
	require.NoError(t, s.WriteView(port.View{Output: "x", Error: "hidden", Loading: true}))
	assert.Empty(t, errOut.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat(" HTML ")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
