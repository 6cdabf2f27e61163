package marker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Marker
	}{
		{name: "empty", text: "", want: nil},
		{name: "no markers", text: "just some text {{ }} and {{Name/BTC}}", want: nil},
		{name: "single", text: "Coin: {{ Name/BTC }}!", want: []Marker{"{{ Name/BTC }}"}},
		{
			name: "duplicates collapse",
			text: "{{ Name/BTC }} costs {{ Price/BTC }} ({{ Name/BTC }})",
			want: []Marker{"{{ Name/BTC }}", "{{ Price/BTC }}"},
		},
		{name: "digits rejected", text: "{{ Name/BTC2 }}", want: nil},
		{name: "extra whitespace rejected", text: "{{  Name/BTC }} {{ Name/BTC  }}", want: nil},
		{name: "three segments rejected", text: "{{ Name/BTC/USD }}", want: nil},
		{name: "multi-line", text: "a\n{{ price/eth }}\nb", want: []Marker{"{{ price/eth }}"}},
		{name: "case preserved", text: "{{ name/BTC }} {{ Name/BTC }}", want: []Marker{"{{ name/BTC }}", "{{ Name/BTC }}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	action, symbol, err := Marker("{{ Price/BTC }}").Parse()
	require.NoError(t, err)
	assert.Equal(t, Action("Price"), action)
	assert.Equal(t, "BTC", symbol)
	assert.True(t, action.Is(ActionPrice))
	assert.True(t, action.Supported())

	action, _, err = Marker("{{ Unsupported/BTC }}").Parse()
	require.NoError(t, err)
	assert.False(t, action.Supported())

	_, _, err = Marker("Name/BTC").Parse()
	assert.ErrorIs(t, err, ErrMalformed)
	_, _, err = Marker("{{ NameBTC }}").Parse()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestActionCaseInsensitive(t *testing.T) {
	for _, a := range []Action{"name", "NAME", "Name", "nAmE"} {
		assert.True(t, a.Is(ActionName), string(a))
	}
	assert.False(t, Action("Names").Supported())
}

func TestUnresolved(t *testing.T) {
	known := NewResolutions(map[Marker]string{"{{ Name/BTC }}": "Bitcoin"})
	got := Unresolved([]Marker{"{{ Name/BTC }}", "{{ Price/BTC }}"}, known)
	assert.Equal(t, []Marker{"{{ Price/BTC }}"}, got)
	assert.Empty(t, Unresolved([]Marker{"{{ Name/BTC }}"}, known))
}

func TestResolutionsMergeNeverOverwrites(t *testing.T) {
	base := NewResolutions(map[Marker]string{"{{ Name/BTC }}": "Bitcoin"})
	merged := base.Merge(map[Marker]string{
		"{{ Name/BTC }}":  "Overwritten",
		"{{ Price/BTC }}": "$1.00",
	})

	v, ok := merged.Lookup("{{ Name/BTC }}")
	require.True(t, ok)
	assert.Equal(t, "Bitcoin", v)
	assert.Equal(t, 2, merged.Len())

	// the receiver is untouched
	assert.Equal(t, 1, base.Len())
	_, ok = base.Lookup("{{ Price/BTC }}")
	assert.False(t, ok)
}

func TestFragments(t *testing.T) {
	assert.Equal(t,
		`<span class="invalid-name" title="Invalid bitcoin symbol: BTC">{{ Name/BTC }}</span>`,
		InvalidSymbol("{{ Name/BTC }}", "BTC"))
	assert.Equal(t,
		`<span class="invalid-method" title="Invalid method: Unsupported">{{ Unsupported/BTC }}</span>`,
		InvalidMethod("{{ Unsupported/BTC }}", "Unsupported"))
	assert.Equal(t, "Fish &amp; Chips", Text("Fish & Chips"))
}
