package httplog

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// PrincipalFunc returns the authenticated caller of r, or nil.
type PrincipalFunc func(r *http.Request) *record.Principal

// HeaderPrincipal reads the caller from trusted headers set by an
// upstream gateway. An empty id header yields no principal.
func HeaderPrincipal(idHeader, roleHeader string) PrincipalFunc {
	return func(r *http.Request) *record.Principal {
		id := r.Header.Get(idHeader)
		if id == "" {
			return nil
		}
		return &record.Principal{ID: id, Role: r.Header.Get(roleHeader)}
	}
}

// ReadBody drains r.Body and replaces it with a reader over the same
// bytes, so the handler still sees the full body.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, err
}

// NewRequestContext converts r into the logger's request view.
// Multi-valued headers are joined with ", ".
func NewRequestContext(r *http.Request, body []byte, principal *record.Principal) *record.RequestContext {
	return &record.RequestContext{
		Method:      r.Method,
		FullPath:    r.URL.RequestURI(),
		ContentType: r.Header.Get("Content-Type"),
		Headers:     requestHeaders(r),
		Body:        body,
		Principal:   principal,
	}
}

func requestHeaders(r *http.Request) map[string]string {
	out := FlattenHeader(r.Header)
	if r.Host != "" {
		out["Host"] = r.Host
	}
	return out
}

// FlattenHeader joins the values of each header with ", ".
func FlattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
