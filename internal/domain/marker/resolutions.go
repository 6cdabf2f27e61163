package marker

import "sort"

// Resolutions maps a marker, exactly as typed, to its resolved markup fragment.
// The zero value is an empty map. Values are never mutated in place: Merge
// returns a new Resolutions and existing entries always win.
type Resolutions struct {
	m map[Marker]string
}

func NewResolutions(entries map[Marker]string) Resolutions {
	return Resolutions{}.Merge(entries)
}

func (r Resolutions) Len() int { return len(r.m) }

func (r Resolutions) IsEmpty() bool { return len(r.m) == 0 }

func (r Resolutions) Lookup(m Marker) (string, bool) {
	v, ok := r.m[m]
	return v, ok
}

// Merge adds entries that are not present yet.
func (r Resolutions) Merge(entries map[Marker]string) Resolutions {
	added := 0
	for k := range entries {
		if _, ok := r.m[k]; !ok {
			added++
		}
	}
	if added == 0 {
		return r
	}

	out := make(map[Marker]string, len(r.m)+added)
	for k, v := range r.m {
		out[k] = v
	}
	for k, v := range entries {
		if _, ok := out[k]; ok {
			continue
		}
		out[k] = v
	}
	return Resolutions{m: out}
}

// Keys returns the markers sorted by length (longest first), then lexically.
func (r Resolutions) Keys() []Marker {
	keys := make([]Marker, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
