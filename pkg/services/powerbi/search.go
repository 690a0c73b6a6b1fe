package powerbi

import "sort"

// maxSearchDepth bounds the recursive descent. The metadata document is a few
// levels deep in practice; anything past this is not a document we understand.
const maxSearchDepth = 64

// FindKey walks a decoded JSON document (maps, slices, scalars) depth-first
// and returns the value of the first field named key, at any depth. Map keys
// are visited in sorted order so repeated searches over the same document are
// deterministic. The second return is false if the key occurs nowhere.
func FindKey(doc any, key string) (any, bool) {
	return findKey(doc, key, 0)
}

func findKey(node any, key string, depth int) (any, bool) {
	if depth > maxSearchDepth {
		return nil, false
	}

	switch v := node.(type) {
	case map[string]any:
		if val, ok := v[key]; ok {
			return val, true
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if val, ok := findKey(v[k], key, depth+1); ok {
				return val, true
			}
		}
	case []any:
		for _, item := range v {
			if val, ok := findKey(item, key, depth+1); ok {
				return val, true
			}
		}
	}

	return nil, false
}
