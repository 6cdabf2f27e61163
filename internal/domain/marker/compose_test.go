package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeEmptyMapReturnsText(t *testing.T) {
	text := "hello {{ Name/BTC }}"
	assert.Equal(t, text, Compose(text, Resolutions{}))
	assert.Equal(t, "", Compose("", NewResolutions(map[Marker]string{"{{ Name/BTC }}": "Bitcoin"})))
}

func TestComposeReplacesAllOccurrences(t *testing.T) {
	res := NewResolutions(map[Marker]string{
		"{{ Name/BTC }}":  "Bitcoin",
		"{{ Price/BTC }}": "$57427.40",
	})

	got := Compose("{{ Name/BTC }} is {{ Price/BTC }}. Again: {{ Name/BTC }}", res)
	assert.Equal(t, "Bitcoin is $57427.40. Again: Bitcoin", got)
}

func TestComposeLeavesUnknownMarkers(t *testing.T) {
	res := NewResolutions(map[Marker]string{"{{ Name/BTC }}": "Bitcoin"})
	got := Compose("{{ Name/BTC }} and {{ Name/ETH }}", res)
	assert.Equal(t, "Bitcoin and {{ Name/ETH }}", got)
}

func TestComposeCaseInsensitive(t *testing.T) {
	res := NewResolutions(map[Marker]string{"{{ Name/BTC }}": "Bitcoin"})
	assert.Equal(t, "Bitcoin", Compose("{{ NAME/btc }}", res))

	// an exact key wins over its case-folded sibling
	res = res.Merge(map[Marker]string{"{{ name/BTC }}": "bitcoin"})
	assert.Equal(t, "Bitcoin bitcoin", Compose("{{ Name/BTC }} {{ name/BTC }}", res))
}

func TestComposeIsPure(t *testing.T) {
	res := NewResolutions(map[Marker]string{"{{ Name/BTC }}": InvalidSymbol("{{ Name/BTC }}", "BTC")})
	text := "x {{ Name/BTC }} y"

	first := Compose(text, res)
	second := Compose(text, res)
	assert.Equal(t, first, second)
	assert.Contains(t, first, `title="Invalid bitcoin symbol: BTC"`)
	assert.Contains(t, first, ">{{ Name/BTC }}</span>")
}
