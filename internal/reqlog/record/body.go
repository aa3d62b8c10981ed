package record

import (
	"bytes"
	"errors"
	"reflect"

	"github.com/yndnr/reqlog-go/pkg/jsonclean"
)

// CleanBody decodes raw as JSON, redacts paths and re-encodes the result.
//
// An empty body yields nil. When decoding fails the raw body is returned
// as-is together with the decode error.
func CleanBody(raw []byte, paths []string) (*string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	out, err := jsonclean.CleanJSON(raw, paths)
	if err != nil {
		s := string(raw)
		return &s, err
	}
	s := string(out)
	return &s, nil
}

// ExceptionType names the type of err, with pointers and package path
// dropped. Wrappers that only add context, such as fmt.Errorf with %w or
// github.com/pkg/errors.Wrap, are looked through to the error they wrap.
func ExceptionType(err error) string {
	if err == nil {
		return ""
	}
	for isContextWrapper(err) {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}

	t := indirect(reflect.TypeOf(err))
	if t.PkgPath() == pkgErrorsPath && t.Name() == "fundamental" {
		// pkg/errors.New is errors.New with a stack.
		return "errorString"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

const pkgErrorsPath = "github.com/pkg/errors"

func isContextWrapper(err error) bool {
	t := indirect(reflect.TypeOf(err))
	switch t.PkgPath() {
	case pkgErrorsPath:
		return t.Name() == "withStack" || t.Name() == "withMessage"
	case "fmt":
		return t.Name() == "wrapError"
	}
	return false
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
