package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coinmarker/internal/application/service"
	"coinmarker/internal/domain/marker"
)

func TestStateEditClearsError(t *testing.T) {
	s := State{Error: service.MsgMarkupErrors}
	next := s.Edit("hello")

	assert.Equal(t, "hello", next.Text)
	assert.Empty(t, next.Error)
	assert.Equal(t, PhaseEditing, next.Phase)
	// the receiver is a snapshot
	assert.Equal(t, service.MsgMarkupErrors, s.Error)
}

func TestStateBeginWithoutMarkers(t *testing.T) {
	s, pending := State{}.Edit("no markers here").Begin()
	assert.Empty(t, pending)
	assert.False(t, s.Loading)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestStateBeginSkipsResolved(t *testing.T) {
	s := State{Resolved: marker.NewResolutions(map[marker.Marker]string{"{{ Name/BTC }}": "Bitcoin"})}
	s, pending := s.Edit("{{ Name/BTC }} {{ Price/BTC }}").Begin()

	assert.Equal(t, []marker.Marker{"{{ Price/BTC }}"}, pending)
	assert.True(t, s.Loading)
	assert.Equal(t, PhaseResolving, s.Phase)
	assert.False(t, s.ShowError())
}

func TestStateCompleteMergesBatch(t *testing.T) {
	s, _ := State{}.Edit("{{ Name/BTC }} {{ Foo/BTC }}").Begin()
	s = s.Complete(service.Batch{
		Resolved: map[marker.Marker]string{
			"{{ Name/BTC }}": "Bitcoin",
			"{{ Foo/BTC }}":  marker.InvalidMethod("{{ Foo/BTC }}", "Foo"),
		},
		Error: service.MsgMarkupErrors,
	})

	assert.False(t, s.Loading)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.True(t, s.ShowError())
	assert.Equal(t,
		`Bitcoin <span class="invalid-method" title="Invalid method: Foo">{{ Foo/BTC }}</span>`,
		s.Output())

	v := s.View("abc")
	assert.Equal(t, "abc", v.SessionID)
	assert.Equal(t, "idle", v.Phase)
	assert.True(t, v.ShowError)
}

func TestStateCompleteKeepsEditingPhase(t *testing.T) {
	s, _ := State{}.Edit("{{ Name/BTC }}").Begin()
	s = s.Edit("{{ Name/BTC }} more")
	s = s.Complete(service.Batch{Resolved: map[marker.Marker]string{"{{ Name/BTC }}": "Bitcoin"}})

	assert.Equal(t, PhaseEditing, s.Phase)
	assert.Equal(t, "Bitcoin more", s.Output())
}

func TestStateOutputWithoutResolutions(t *testing.T) {
	s := State{}.Edit("{{ Name/BTC }}")
	assert.Equal(t, "{{ Name/BTC }}", s.Output())
}
