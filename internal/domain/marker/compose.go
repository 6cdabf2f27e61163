package marker

import (
	"regexp"
	"strings"
)

// Compose substitutes every known marker in text with its fragment.
// Matching is case-insensitive and done in a single pass; markers that are
// not in res stay as typed.
func Compose(text string, res Resolutions) string {
	if res.IsEmpty() || text == "" {
		return text
	}

	keys := res.Keys()
	quoted := make([]string, len(keys))
	folded := make(map[string]Marker, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(string(k))
		lk := strings.ToLower(string(k))
		if _, ok := folded[lk]; !ok {
			folded[lk] = k
		}
	}
	re := regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))

	return re.ReplaceAllStringFunc(text, func(matched string) string {
		if v, ok := res.Lookup(Marker(matched)); ok {
			return v
		}
		if k, ok := folded[strings.ToLower(matched)]; ok {
			v, _ := res.Lookup(k)
			return v
		}
		return matched
	})
}
