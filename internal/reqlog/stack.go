package reqlog

import (
	"errors"
	"fmt"
	"runtime/debug"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

type panicStacker interface {
	PanicStack() []byte
}

// CaptureStack returns the stack recorded in err: a panic site stack
// first, then one recorded by github.com/pkg/errors. Without either the
// current goroutine stack is returned.
func CaptureStack(err error) string {
	var ps panicStacker
	if errors.As(err, &ps) {
		if stack := ps.PanicStack(); len(stack) > 0 {
			return fmt.Sprintf("%s\n%s", err.Error(), stack)
		}
	}
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%s%+v", err.Error(), st.StackTrace())
	}
	return string(debug.Stack())
}
