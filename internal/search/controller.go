package search

import (
	"context"
	"fmt"
	"sync"

	"booksearch/internal/books"
	"booksearch/internal/logger"
	"booksearch/internal/messages"
	"booksearch/internal/metrics"
	"booksearch/internal/query"
)

// Searcher performs one search round trip (Service in production).
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Preparer is implemented by searchers that rewrite input before it is sent.
// The controller falls back to plain trimming without it.
type Preparer interface {
	Prepare(rawInput string) (q string, ok bool)
}

// View handles. The controller calls them one at a time, never concurrently.
type (
	SubmitControl interface {
		SetSubmit(enabled bool, label string)
	}
	LoadingIndicator interface {
		SetLoading(visible bool, text string)
	}
	// ErrorNotice hides itself when text is empty.
	ErrorNotice interface {
		SetError(text string)
	}
	// ResultsContainer drops whatever it showed before.
	ResultsContainer interface {
		Replace(set ResultSet)
	}
)

// Handles is the set of view elements the controller drives.
type Handles struct {
	Submit  SubmitControl
	Loading LoadingIndicator
	Error   ErrorNotice
	Results ResultsContainer
}

// Policy decides what happens when a response arrives for a submission that
// has since been superseded. In-flight requests are never cancelled.
type Policy int

const (
	// PolicyIgnoreStale renders only the response of the latest submission.
	PolicyIgnoreStale Policy = iota
	// PolicyLastCompleted renders every response; the last to complete wins.
	PolicyLastCompleted
)

func (p Policy) String() string {
	if p == PolicyLastCompleted {
		return "last-completed"
	}
	return "ignore-stale"
}

// ParsePolicy accepts the config spelling of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "ignore-stale":
		return PolicyIgnoreStale, nil
	case "last-completed":
		return PolicyLastCompleted, nil
	}
	return 0, fmt.Errorf("unknown policy %q", s)
}

type Option func(*Controller)

func WithPolicy(p Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// Controller owns the submit → fetch → classify → render cycle.
type Controller struct {
	searcher Searcher
	handles  Handles
	msgs     *messages.Printer
	policy   Policy

	mu       sync.Mutex
	seq      uint64
	outcome  Outcome
	inflight sync.WaitGroup
}

// NewController renders the Idle outcome into handles before returning.
func NewController(s Searcher, h Handles, msgs *messages.Printer, opts ...Option) *Controller {
	c := &Controller{
		searcher: s,
		handles:  h,
		msgs:     msgs,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.render(Idle())
	c.mu.Unlock()
	return c
}

// SubmitQuery starts a search for rawInput. Input that is blank once prepared
// is ignored: no state change, no request. The fetch outlives ctx's cancellation.
func (c *Controller) SubmitQuery(ctx context.Context, rawInput string) {
	q, ok := c.prepare(rawInput)
	if !ok {
		return
	}
	ctx = logger.WithNewID(context.WithoutCancel(ctx))

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.render(Loading())
	c.inflight.Add(1)
	c.mu.Unlock()

	logger.For(ctx).WithField("query", q).Info("search.submitted")
	go c.fetch(ctx, seq, q)
}

func (c *Controller) prepare(rawInput string) (string, bool) {
	if p, ok := c.searcher.(Preparer); ok {
		return p.Prepare(rawInput)
	}
	return query.Normalize(rawInput)
}

func (c *Controller) fetch(ctx context.Context, seq uint64, q string) {
	defer c.inflight.Done()

	done := logger.Track(ctx, "search")
	results, err := c.searcher.Search(ctx, q)
	done()

	next := c.classify(ctx, results, err)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.policy == PolicyIgnoreStale && seq != c.seq {
		logger.For(ctx).WithField("query", q).Debug("search.stale_dropped")
		metrics.SearchesTotal.WithLabelValues("stale").Inc()
		return
	}
	metrics.SearchesTotal.WithLabelValues(next.State.String()).Inc()
	c.render(next)
}

func (c *Controller) classify(ctx context.Context, results []Result, err error) Outcome {
	if err != nil {
		class := books.Classify(err)
		metrics.UpstreamErrorsTotal.WithLabelValues(class).Inc()
		logger.For(ctx).WithError(err).WithField("class", class).Error("search.failed")
		return Failure(c.msgs.Get(messages.FetchFailed))
	}
	if len(results) == 0 {
		return Empty()
	}
	return Success(results)
}

// render must be called with mu held. Loading and submit are settled before
// the error notice and results are touched.
func (c *Controller) render(o Outcome) {
	c.outcome = o
	vs := Render(o, c.msgs)

	if c.handles.Submit != nil {
		c.handles.Submit.SetSubmit(vs.SubmitEnabled, vs.SubmitLabel)
	}
	if c.handles.Loading != nil {
		c.handles.Loading.SetLoading(vs.Loading, vs.LoadingText)
	}
	if c.handles.Error != nil {
		c.handles.Error.SetError(vs.Error)
	}
	if c.handles.Results != nil {
		c.handles.Results.Replace(vs.Results)
	}
}

// Outcome returns the outcome currently rendered.
func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Wait blocks until every submitted search has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}
