package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/telemetry/logger"
)

// MaxFib is the largest n /fib accepts; fib(92) overflows int64.
const MaxFib = 91

// ErrFibRange is returned for n outside [0, MaxFib].
var ErrFibRange = errors.New("n out of range")

// Fib returns the n-th Fibonacci number.
func Fib(_ context.Context, n int) (int64, error) {
	if n < 0 || n > MaxFib {
		return 0, ErrFibRange
	}
	var a, b int64 = 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}

type handlers struct {
	log *reqlog.Logger
	fib func(context.Context, int) (int64, error)
}

func newHandlers(l *reqlog.Logger) *handlers {
	return &handlers{
		log: l,
		fib: reqlog.Wrap(l, Fib),
	}
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) echo(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, r, &reqlog.HTTPError{
			StatusCode: http.StatusBadRequest,
			Reason:     "Bad Request",
			Err:        pkgerrors.Wrap(err, "decode echo body"),
		})
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *handlers) fibonacci(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		h.fail(w, r, &reqlog.HTTPError{
			StatusCode: http.StatusBadRequest,
			Reason:     "Bad Request",
			Err:        pkgerrors.Wrap(err, "parse n"),
		})
		return
	}

	v, err := h.fib(r.Context(), n)
	if err != nil {
		h.fail(w, r, &reqlog.HTTPError{
			StatusCode: http.StatusUnprocessableEntity,
			Reason:     "Unprocessable Entity",
			Err:        pkgerrors.WithStack(err),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"n": int64(n), "value": v})
}

func (h *handlers) failing(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, &reqlog.HTTPError{
		StatusCode: http.StatusBadGateway,
		Reason:     "Bad Gateway",
		Err:        pkgerrors.New("upstream unavailable"),
	})
}

func (h *handlers) panicking(http.ResponseWriter, *http.Request) {
	panic("demo panic")
}

// fail logs err and answers with its status.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err *reqlog.HTTPError) {
	ctx := r.Context()
	if lerr := h.log.Error(ctx, err); lerr != nil {
		logger.L(ctx).Error("error record not emitted", "error", lerr)
	}
	writeError(w, err.StatusCode, err.Error())
}
