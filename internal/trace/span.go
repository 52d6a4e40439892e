package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var globalSpans atomic.Uint64

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return globalSpans.Add(1)
}

// Span tracks one logical operation between Begin and End.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	depth    int
	scope    Scope
	name     string
	started  time.Time
	fields   []Field
}

// Begin starts a span under the tracer and parent span found in ctx, emits the
// begin event and returns a context carrying the new span.
func Begin(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(KindSpanBegin, scope) {
		return ctx, &Span{tracer: Nop}
	}

	parent := CurrentSpan(ctx)
	s := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent.SpanID,
		depth:    parent.Depth,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Depth:    s.depth,
		Name:     name,
	})
	return WithSpanContext(ctx, SpanContext{SpanID: s.id, Depth: s.depth + 1}), s
}

// With adds a field to the end event. Returns the span for chaining.
func (s *Span) With(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	s.fields = append(s.fields, Field{Key: key, Value: value})
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Fields:   append(s.fields, Field{Key: "dur", Value: dur.String()}),
	})
	return dur
}

// ID returns the span ID.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under the current span.
func Point(ctx context.Context, scope Scope, name, detail string, fields ...Field) {
	emitInstant(ctx, KindPoint, scope, name, detail, fields)
}

// Error records a failure; it is emitted at every level except off.
func Error(ctx context.Context, name string, err error) {
	if err == nil {
		return
	}
	emitInstant(ctx, KindError, ScopeDriver, name, err.Error(), nil)
}

func emitInstant(ctx context.Context, kind Kind, scope Scope, name, detail string, fields []Field) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(kind, scope) {
		return
	}
	parent := CurrentSpan(ctx)
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent.SpanID,
		Depth:    parent.Depth,
		Name:     name,
		Detail:   detail,
		Fields:   fields,
	})
}
