// Package jsonclean removes values from JSON documents by attribute path.
//
// A path is a dotted string such as "user.email" or "items.*.token".
// Each segment names an object key. The wildcard segment "*" stands for
// the whole subtree at that position, except over an array where it is
// followed by more segments: there it selects every element ("items.*.token").
// Arrays are otherwise transparent too: a path is applied to every element
// of an array it meets, so array indices are never addressed.
//
// Matched values are replaced by the string "REMOVED" rather than being
// deleted, so the shape of the document is kept in the output.
//
// Features:
//
//   - Clean: redact a decoded document (map[string]any, []any, scalars)
//   - Decode: parse raw bytes into a document, keeping number literals
//   - CleanJSON: decode, redact and re-encode in one call
//
// Clean never mutates its input; it works on a deep copy.
package jsonclean
