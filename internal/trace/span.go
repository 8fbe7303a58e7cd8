package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// Span is an open begin event waiting for its end. Spans returned for a
// tracer that filters them out are inert: every method is a no-op.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

func admits(t Tracer, kind Kind, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(kind, scope)
}

// Begin emits the begin event of a span under parent (0 for roots).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !admits(t, KindSpanBegin, scope) {
		return &Span{}
	}
	s := &Span{tracer: t, begin: Event{
		Time:     time.Now(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   spanCounter.Add(1),
		ParentID: parent,
		Name:     name,
	}}
	ev := s.begin
	t.Emit(&ev)
	return s
}

// End emits the end event with detail and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.begin.Time)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	instant(t, KindPoint, scope, name, detail, parent)
}

// Failure records err as an instant event. Failures pass every level but off.
func Failure(t Tracer, scope Scope, name string, err error, parent uint64) {
	if err == nil {
		return
	}
	instant(t, KindFailure, scope, name, err.Error(), parent)
}

func instant(t Tracer, kind Kind, scope Scope, name, detail string, parent uint64) {
	if !admits(t, kind, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     kind,
		Scope:    scope,
		SpanID:   spanCounter.Add(1),
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
