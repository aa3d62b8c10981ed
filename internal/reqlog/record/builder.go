package record

import (
	"net/textproto"
	"runtime"
	"strings"
	"time"
)

// Metadata is the static project information stamped on every record.
type Metadata struct {
	Project     string
	Version     string
	Repository  string
	Environment string
	Service     string
}

// Builder assembles the common part of log records.
type Builder struct {
	// Now returns the build instant. Defaults to time.Now.
	Now func() time.Time

	// CPUCount reports the host CPU count. Defaults to runtime.NumCPU.
	CPUCount func() int

	// RequestIDHeader names the header carrying the request id.
	// Empty disables request id extraction.
	RequestIDHeader string

	// HeadersToIgnore lists header names removed from RequestInfo,
	// compared case-insensitively.
	HeadersToIgnore []string
}

// BuildBase creates a record of the given type and level stamped with
// meta. When req is non-nil the record carries its RequestInfo.
func (b *Builder) BuildBase(meta Metadata, typ Type, level Level, req *RequestContext) *LogRecord {
	rec := &LogRecord{
		Project:     meta.Project,
		Version:     meta.Version,
		Repository:  meta.Repository,
		Environment: meta.Environment,
		Service:     meta.Service,
		NumCPUCores: b.cpuCount(),
		Type:        typ,
		Level:       level,
		Data:        map[string]any{},
		timestamp:   b.now().UTC(),
	}
	if req != nil {
		rec.Request = b.RequestInfo(req)
	}
	return rec
}

// RequestInfo derives the record view of req.
func (b *Builder) RequestInfo(req *RequestContext) *RequestInfo {
	info := &RequestInfo{
		RequestID:   b.RequestID(req.Headers),
		FullPath:    req.FullPath,
		HTTPMethod:  req.Method,
		ContentType: req.ContentType,
		Headers:     b.CleanHeaders(req.Headers),
	}
	if p := req.Principal; p != nil {
		id := p.ID
		info.UserID = &id
		if p.Role != "" {
			role := p.Role
			info.UserRoles = &role
		}
	}
	return info
}

// RequestID returns the configured request id header value, or nil when
// no header is configured or the request does not carry it. The lookup
// uses the configured name, then its canonical MIME form.
func (b *Builder) RequestID(headers map[string]string) *string {
	name := b.RequestIDHeader
	if name == "" {
		return nil
	}
	if v, ok := headers[name]; ok {
		return &v
	}
	if canon := textproto.CanonicalMIMEHeaderKey(name); canon != name {
		if v, ok := headers[canon]; ok {
			return &v
		}
	}
	return nil
}

// CleanHeaders returns a copy of headers without the ignored names.
// Values are never inspected.
func (b *Builder) CleanHeaders(headers map[string]string) map[string]string {
	ignored := make(map[string]struct{}, len(b.HeadersToIgnore))
	for _, h := range b.HeadersToIgnore {
		ignored[strings.ToLower(h)] = struct{}{}
	}

	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if _, drop := ignored[strings.ToLower(k)]; drop {
			continue
		}
		out[k] = v
	}
	return out
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) cpuCount() int {
	if b.CPUCount != nil {
		return b.CPUCount()
	}
	return runtime.NumCPU()
}
