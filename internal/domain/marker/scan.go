package marker

import "regexp"

// exactly one space inside each brace pair, letters only on both sides of the slash
var pattern = regexp.MustCompile(`\{\{ [a-zA-Z]+/[a-zA-Z]+ \}\}`)

// Scan 提取文本中出现的所有不同标记，按首次出现顺序返回
func Scan(text string) []Marker {
	found := pattern.FindAllString(text, -1)
	if len(found) == 0 {
		return nil
	}

	out := make([]Marker, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, s := range found {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, Marker(s))
	}
	return out
}

// Unresolved 过滤掉已经在 known 中的标记
func Unresolved(markers []Marker, known Resolutions) []Marker {
	var out []Marker
	for _, m := range markers {
		if _, ok := known.Lookup(m); ok {
			continue
		}
		out = append(out, m)
	}
	return out
}
