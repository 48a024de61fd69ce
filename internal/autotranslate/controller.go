// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package autotranslate localizes content entities on demand. When the
// target language is requested and no cached translation exists, the
// entity is machine-translated, shown immediately, and written back to
// storage for the next request. Failures fall back to the original text.
package autotranslate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kulipoly/internal/i18n"
)

// Status is a state of the localization state machine:
//
//	idle -> checking -> cached -> done
//	idle -> checking -> translating -> done
//	idle -> checking -> translating -> error -> done
type Status string

const (
	StatusIdle        Status = "idle"
	StatusChecking    Status = "checking"
	StatusCached      Status = "cached"
	StatusTranslating Status = "translating"
	StatusError       Status = "error"
	StatusDone        Status = "done"
)

// DefaultWriteBackTimeout bounds one asynchronous cache write.
const DefaultWriteBackTimeout = 10 * time.Second

// Adapter connects the controller to one entity type E and its localized
// view V.
type Adapter[E, V any] interface {
	// ID identifies the entity. A new ID or language restarts localization.
	ID(e E) string
	// HasTranslation reports whether target-language fields are cached.
	HasTranslation(e E) bool
	// Resolve projects e into lang without I/O.
	Resolve(e E, lang i18n.Language) V
	// Translate returns a copy of e with its target fields filled in. The
	// bool is false when nothing could be translated.
	Translate(ctx context.Context, e E) (E, bool)
	// WriteBack persists the target fields of e.
	WriteBack(ctx context.Context, e E) error
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	writeBackTimeout time.Duration
	onChange         func(Status)
}

// WithWriteBackTimeout sets the timeout applied to each write-back.
func WithWriteBackTimeout(d time.Duration) Option {
	return func(o *options) { o.writeBackTimeout = d }
}

// OnChange registers a callback invoked on every state transition of the
// current request. Transitions of superseded requests are not reported.
func OnChange(fn func(Status)) Option {
	return func(o *options) { o.onChange = fn }
}

// Controller runs the localization state machine for a stream of
// (entity, language) requests. Only the most recent request may commit its
// result; results of superseded requests are discarded.
type Controller[E, V any] struct {
	adapter Adapter[E, V]
	opts    options

	mu      sync.Mutex
	gen     uint64
	key     string
	lang    i18n.Language
	state   Status
	outcome Status
	view    V
	settled chan struct{}

	writes sync.WaitGroup
}

// New creates an idle Controller.
func New[E, V any](adapter Adapter[E, V], opts ...Option) *Controller[E, V] {
	o := options{writeBackTimeout: DefaultWriteBackTimeout}
	for _, fn := range opts {
		fn(&o)
	}
	settled := make(chan struct{})
	close(settled)
	return &Controller[E, V]{
		adapter: adapter,
		opts:    o,
		state:   StatusIdle,
		settled: settled,
	}
}

// Request starts localizing e into lang and supersedes any earlier
// request. Cached and original-language views settle before Request
// returns; otherwise translation continues in the background under ctx.
func (c *Controller[E, V]) Request(ctx context.Context, e E, lang i18n.Language) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.key = c.adapter.ID(e)
	c.lang = lang
	if c.state == StatusDone || c.state == StatusIdle {
		c.settled = make(chan struct{})
	}
	c.state = StatusChecking
	c.mu.Unlock()
	c.notify(StatusChecking)

	if lang != i18n.Target || c.adapter.HasTranslation(e) {
		c.transition(gen, StatusCached)
		c.settle(gen, c.adapter.Resolve(e, lang), StatusCached)
		return
	}

	c.transition(gen, StatusTranslating)
	go c.translate(ctx, gen, e)
}

// Sync calls Request only when the entity identity or language differs
// from the latest request. It reports whether a new request was started.
func (c *Controller[E, V]) Sync(ctx context.Context, e E, lang i18n.Language) bool {
	c.mu.Lock()
	same := c.gen > 0 && c.key == c.adapter.ID(e) && c.lang == lang
	c.mu.Unlock()
	if same {
		return false
	}
	c.Request(ctx, e, lang)
	return true
}

func (c *Controller[E, V]) translate(ctx context.Context, gen uint64, e E) {
	translated, ok := c.adapter.Translate(ctx, e)
	if !ok {
		c.transition(gen, StatusError)
		c.settle(gen, c.adapter.Resolve(e, i18n.Original), StatusError)
		return
	}

	// The translation is valid for e even if this request was superseded,
	// so it is cached either way.
	c.writeBack(ctx, translated)
	c.settle(gen, c.adapter.Resolve(translated, i18n.Target), StatusDone)
}

func (c *Controller[E, V]) writeBack(ctx context.Context, e E) {
	c.writes.Add(1)
	go func() {
		defer c.writes.Done()
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.writeBackTimeout)
		defer cancel()
		if err := c.adapter.WriteBack(wctx, e); err != nil {
			slog.Warn("translation write-back failed", "id", c.adapter.ID(e), "error", err)
		}
	}()
}

// transition moves the state machine if gen is still current.
func (c *Controller[E, V]) transition(gen uint64, s Status) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = s
	c.mu.Unlock()
	c.notify(s)
}

// settle commits view and moves to done if gen is still current.
func (c *Controller[E, V]) settle(gen uint64, view V, outcome Status) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		slog.Debug("discarding superseded localization result", "generation", gen)
		return
	}
	c.view = view
	c.outcome = outcome
	c.state = StatusDone
	close(c.settled)
	c.mu.Unlock()
	c.notify(StatusDone)
}

func (c *Controller[E, V]) notify(s Status) {
	if c.opts.onChange != nil {
		c.opts.onChange(s)
	}
}

// Wait blocks until the latest request settles, then returns its view and
// outcome: StatusCached, StatusDone (freshly translated) or StatusError
// (translation failed, original shown). A request issued while waiting
// extends the wait.
func (c *Controller[E, V]) Wait(ctx context.Context) (V, Status, error) {
	for {
		c.mu.Lock()
		if c.state == StatusDone || c.state == StatusIdle {
			view, outcome := c.view, c.outcome
			c.mu.Unlock()
			return view, outcome, nil
		}
		settled := c.settled
		c.mu.Unlock()

		select {
		case <-settled:
		case <-ctx.Done():
			var zero V
			return zero, "", ctx.Err()
		}
	}
}

// State returns the current state and the last committed view.
func (c *Controller[E, V]) State() (Status, V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.view
}

// Flush waits for in-flight write-backs.
func (c *Controller[E, V]) Flush() {
	c.writes.Wait()
}

// Localize runs one request to completion. If ctx ends first, the
// original-language view is returned with StatusError.
func Localize[E, V any](ctx context.Context, adapter Adapter[E, V], e E, lang i18n.Language, opts ...Option) (V, Status) {
	c := New(adapter, opts...)
	c.Request(ctx, e, lang)
	view, status, err := c.Wait(ctx)
	if err != nil {
		return adapter.Resolve(e, i18n.Original), StatusError
	}
	return view, status
}
