package jsonclean

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", s, err)
	}
	return v
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		paths []string
		want  string
	}{
		{
			name:  "no paths",
			doc:   `{"a":{"b":1}}`,
			paths: nil,
			want:  `{"a":{"b":1}}`,
		},
		{
			name:  "only empty paths",
			doc:   `{"a":1}`,
			paths: []string{"", ""},
			want:  `{"a":1}`,
		},
		{
			name:  "wildcard replaces whole document",
			doc:   `{"a":{"b":1},"c":[1,2]}`,
			paths: []string{"*"},
			want:  `"REMOVED"`,
		},
		{
			name:  "nested key",
			doc:   `{"a":{"b":1,"c":2}}`,
			paths: []string{"a.b"},
			want:  `{"a":{"b":"REMOVED","c":2}}`,
		},
		{
			name:  "wildcard over array applies to every element",
			doc:   `[{"t":"x"},{"t":"y"}]`,
			paths: []string{"*.t"},
			want:  `[{"t":"REMOVED"},{"t":"REMOVED"}]`,
		},
		{
			name:  "bare wildcard over array",
			doc:   `[{"t":"x"},{"t":"y"}]`,
			paths: []string{"*"},
			want:  `"REMOVED"`,
		},
		{
			name:  "wildcard with tail over object takes subtree",
			doc:   `{"a":{"t":1}}`,
			paths: []string{"*.t"},
			want:  `"REMOVED"`,
		},
		{
			name:  "array without wildcard uses full path set",
			doc:   `[{"t":"x","u":1},{"t":"y"}]`,
			paths: []string{"t"},
			want:  `[{"t":"REMOVED","u":1},{"t":"REMOVED"}]`,
		},
		{
			name:  "array elements under key",
			doc:   `{"items":[{"token":"x","id":1},{"token":"y","id":2}]}`,
			paths: []string{"items.token"},
			want:  `{"items":[{"token":"REMOVED","id":1},{"token":"REMOVED","id":2}]}`,
		},
		{
			name:  "trailing wildcard removes subtree",
			doc:   `{"user":{"profile":{"email":"a@b.c"},"id":7}}`,
			paths: []string{"user.profile.*"},
			want:  `{"user":{"profile":"REMOVED","id":7}}`,
		},
		{
			name:  "middle wildcard over array elements",
			doc:   `{"items":[{"token":"x","id":1},{"token":"y"}],"keep":true}`,
			paths: []string{"items.*.token"},
			want:  `{"items":[{"token":"REMOVED","id":1},{"token":"REMOVED"}],"keep":true}`,
		},
		{
			name:  "middle wildcard over object removes subtree",
			doc:   `{"items":{"token":"x"},"keep":true}`,
			paths: []string{"items.*.token"},
			want:  `{"items":"REMOVED","keep":true}`,
		},
		{
			name:  "shared prefix paths apply independently",
			doc:   `{"user":{"email":"a","phone":"b","name":"c"}}`,
			paths: []string{"user.email", "user.phone"},
			want:  `{"user":{"email":"REMOVED","phone":"REMOVED","name":"c"}}`,
		},
		{
			name:  "unmatched head is a no-op",
			doc:   `{"a":1}`,
			paths: []string{"b.c"},
			want:  `{"a":1}`,
		},
		{
			name:  "path deeper than scalar is a no-op",
			doc:   `{"a":"text"}`,
			paths: []string{"a.b.c"},
			want:  `{"a":"text"}`,
		},
		{
			name:  "null value is redacted",
			doc:   `{"a":null}`,
			paths: []string{"a"},
			want:  `{"a":"REMOVED"}`,
		},
		{
			name:  "nested arrays",
			doc:   `{"m":[[{"s":1}],[{"s":2,"k":3}]]}`,
			paths: []string{"m.s"},
			want:  `{"m":[[{"s":"REMOVED"}],[{"s":"REMOVED","k":3}]]}`,
		},
		{
			name:  "scalar root",
			doc:   `42`,
			paths: []string{"a"},
			want:  `42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(mustDecode(t, tt.doc), tt.paths)
			want := mustDecode(t, tt.want)
			if !reflect.DeepEqual(got, want) {
				gotJSON, _ := json.Marshal(got)
				t.Errorf("Clean(%s, %q) = %s, want %s", tt.doc, tt.paths, gotJSON, tt.want)
			}
		})
	}
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	doc := mustDecode(t, `{"a":{"b":1,"list":[{"c":2}]}}`)
	before := mustDecode(t, `{"a":{"b":1,"list":[{"c":2}]}}`)

	_ = Clean(doc, []string{"a.b", "a.list.c"})

	if !reflect.DeepEqual(doc, before) {
		t.Errorf("input was mutated: %v", doc)
	}
}

func TestClean_EmptyPathsReturnsCopy(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": 1.0}}

	got := Clean(doc, nil)
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("Clean() = %v, want %v", got, doc)
	}

	got.(map[string]any)["a"].(map[string]any)["b"] = 2.0
	if doc["a"].(map[string]any)["b"] != 1.0 {
		t.Error("Clean() result aliases the input document")
	}
}

func TestParsePaths(t *testing.T) {
	got := ParsePaths([]string{"a.b", "", "c", "*.d"})
	want := [][]string{{"a", "b"}, {"c"}, {"*", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePaths() = %v, want %v", got, want)
	}
}
