package tui

import (
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinmarker/internal/application/port"
)

type fakeSession struct {
	mu     sync.Mutex
	inputs []string
}

func (f *fakeSession) Input(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, text)
}

func (f *fakeSession) View() port.View { return port.View{Phase: "idle"} }

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestTypingFeedsSession(t *testing.T) {
	sess := &fakeSession{}
	m := NewModel(sess, make(chan port.View))

	m = typeRunes(m, "ab")
	require.Len(t, sess.inputs, 2)
	assert.Equal(t, []string{"a", "ab"}, sess.inputs)
}

func TestViewMsgUpdatesOutput(t *testing.T) {
	m := NewModel(&fakeSession{}, make(chan port.View))

	next, cmd := m.Update(viewMsg{Output: "Bitcoin", Error: "oops", ShowError: true})
	m = next.(Model)
	assert.NotNil(t, cmd, "keeps listening for views")

	out := m.View()
	assert.Contains(t, out, "Bitcoin")
	assert.Contains(t, out, "oops")
	assert.NotContains(t, out, "Loading")
}

func TestLoadingHidesBanner(t *testing.T) {
	m := NewModel(&fakeSession{}, make(chan port.View))

	next, _ := m.Update(viewMsg{Output: "x", Error: "oops", Loading: true})
	out := next.(Model).View()
	assert.Contains(t, out, "Loading")
	assert.NotContains(t, out, "oops")
}

func TestDiagnosticFragmentRenderedAsText(t *testing.T) {
	m := NewModel(&fakeSession{}, make(chan port.View))

	next, _ := m.Update(viewMsg{Output: `<span class="invalid-method" title="Invalid method: Foo">{{ Foo/BTC }}</span>`})
	out := next.(Model).View()
	assert.Contains(t, out, "{{ Foo/BTC }}")
	assert.False(t, strings.Contains(out, "<span"))
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(&fakeSession{}, make(chan port.View))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestChanSinkKeepsLatest(t *testing.T) {
	sink := make(ChanSink, 1)
	require.NoError(t, sink.WriteView(port.View{Output: "old"}))
	require.NoError(t, sink.WriteView(port.View{Output: "new"}))
	assert.Equal(t, "new", (<-sink).Output)
}
