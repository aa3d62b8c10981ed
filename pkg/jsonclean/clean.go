package jsonclean

import "strings"

// Removed is the value written in place of a redacted subtree.
const Removed = "REMOVED"

// Wildcard is the path segment that matches a whole subtree.
const Wildcard = "*"

// Clean returns a deep copy of doc with every value addressed by paths
// replaced by Removed. Empty path strings are ignored. With no usable
// paths the copy is returned unchanged.
func Clean(doc any, paths []string) any {
	copied := DeepCopy(doc)
	segments := ParsePaths(paths)
	if len(segments) == 0 {
		return copied
	}
	return clean(copied, segments)
}

// ParsePaths splits dotted paths into segment lists, dropping empty paths.
func ParsePaths(paths []string) [][]string {
	out := make([][]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, strings.Split(p, "."))
	}
	return out
}

func clean(node any, paths [][]string) any {
	_, isArray := node.([]any)
	for _, p := range paths {
		if len(p) == 0 {
			return Removed
		}
		// A wildcard followed by more segments steps over array elements;
		// anywhere else it takes the whole subtree.
		if p[0] == Wildcard && (len(p) == 1 || !isArray) {
			return Removed
		}
	}

	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			var tails [][]string
			for _, p := range paths {
				if p[0] == key {
					tails = append(tails, p[1:])
				}
			}
			if len(tails) > 0 {
				v[key] = clean(child, tails)
			}
		}
		return v
	case []any:
		elemPaths := make([][]string, len(paths))
		for i, p := range paths {
			if p[0] == Wildcard {
				elemPaths[i] = p[1:]
			} else {
				elemPaths[i] = p
			}
		}
		for i, elem := range v {
			v[i] = clean(elem, elemPaths)
		}
		return v
	default:
		return node
	}
}

// DeepCopy copies the object and array containers of a decoded JSON
// document. Scalars are immutable and are shared.
func DeepCopy(doc any) any {
	switch v := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = DeepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = DeepCopy(child)
		}
		return out
	default:
		return doc
	}
}

// CleanJSON decodes raw, redacts it and encodes the result compactly.
func CleanJSON(raw []byte, paths []string) ([]byte, error) {
	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Encode(Clean(doc, paths))
}
