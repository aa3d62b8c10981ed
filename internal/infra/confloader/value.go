package confloader

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrMissingValue is returned when a required value is not set.
var ErrMissingValue = errors.New("confloader: required value not set")

type valueKind int

const (
	kindPlain valueKind = iota
	kindLazy
)

// Value is a configuration value that is either known up front or
// computed on first access.
//
// A lazy value caches a successful result. A failed build is returned to
// the caller and retried on the next Get.
type Value[T any] struct {
	kind  valueKind
	plain T
	build func() (T, error)

	mu     sync.Mutex
	cached T
	done   bool
}

// Plain wraps a known value.
func Plain[T any](v T) *Value[T] {
	return &Value[T]{kind: kindPlain, plain: v}
}

// Lazy wraps a value computed by build on first access.
func Lazy[T any](build func() (T, error)) *Value[T] {
	return &Value[T]{kind: kindLazy, build: build}
}

// Get resolves the value.
func (v *Value[T]) Get() (T, error) {
	switch v.kind {
	case kindPlain:
		return v.plain, nil
	case kindLazy:
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.done {
			return v.cached, nil
		}
		out, err := v.build()
		if err != nil {
			var zero T
			return zero, err
		}
		v.cached, v.done = out, true
		return out, nil
	default:
		var zero T
		return zero, fmt.Errorf("confloader: unknown value kind %d", v.kind)
	}
}

// Map derives a lazy value by applying fn to v.
func Map[T, U any](v *Value[T], fn func(T) (U, error)) *Value[U] {
	return Lazy(func() (U, error) {
		in, err := v.Get()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(in)
	})
}

type envSpec struct {
	required  bool
	def       *string
	formatter func(string) (string, error)
}

// EnvOption configures Env.
type EnvOption func(*envSpec)

// Required makes an unset variable an error.
func Required() EnvOption {
	return func(s *envSpec) { s.required = true }
}

// Default is used when the variable is unset.
func Default(v string) EnvOption {
	return func(s *envSpec) { s.def = &v }
}

// Formatter transforms the raw value.
func Formatter(fn func(string) (string, error)) EnvOption {
	return func(s *envSpec) { s.formatter = fn }
}

// Env returns a lazy value read from the named environment variable.
func Env(name string, opts ...EnvOption) *Value[string] {
	spec := &envSpec{}
	for _, opt := range opts {
		opt(spec)
	}

	return Lazy(func() (string, error) {
		raw, ok := os.LookupEnv(name)
		switch {
		case ok:
		case spec.def != nil:
			raw = *spec.def
		case spec.required:
			return "", fmt.Errorf("%w: %s", ErrMissingValue, name)
		}

		if spec.formatter != nil {
			out, err := spec.formatter(raw)
			if err != nil {
				return "", fmt.Errorf("confloader: %s: %w", name, err)
			}
			return out, nil
		}
		return raw, nil
	})
}

// EnvBool returns a lazy boolean read with ParseBool. An unset variable
// yields def.
func EnvBool(name string, def bool) *Value[bool] {
	return Lazy(func() (bool, error) {
		raw, ok := os.LookupEnv(name)
		if !ok {
			return def, nil
		}
		b, err := ParseBool(raw)
		if err != nil {
			return false, fmt.Errorf("confloader: %s: %w", name, err)
		}
		return b, nil
	})
}
