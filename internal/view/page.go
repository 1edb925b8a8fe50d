package view

import (
	"sync"
	"time"

	"booksearch/internal/search"
)

// Page is the shared state behind the web page. Every web request reads a
// snapshot; the controller writes through the handle methods.
type Page struct {
	mu      sync.RWMutex
	vs      search.ViewState
	query   string
	updated time.Time
}

func NewPage() *Page {
	return &Page{vs: search.ViewState{SubmitEnabled: true, Results: search.ResultSet{Cards: []search.Card{}}}}
}

// Handles exposes p as every view handle.
func (p *Page) Handles() search.Handles {
	return search.Handles{Submit: p, Loading: p, Error: p, Results: p}
}

func (p *Page) SetSubmit(enabled bool, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vs.SubmitEnabled, p.vs.SubmitLabel = enabled, label
	p.touch()
}

func (p *Page) SetLoading(visible bool, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vs.Loading = visible
	p.vs.LoadingText = text
	p.touch()
}

func (p *Page) SetError(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vs.Error = text
	p.touch()
}

func (p *Page) Replace(set search.ResultSet) {
	cards := make([]search.Card, len(set.Cards))
	copy(cards, set.Cards)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.vs.Results = search.ResultSet{Cards: cards, Notice: set.Notice}
	p.touch()
}

// SetQuery remembers the last submitted input to refill the form.
func (p *Page) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
}

func (p *Page) touch() { p.updated = time.Now() }

// Snapshot returns a copy of the current view state and the last query.
func (p *Page) Snapshot() (search.ViewState, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	vs := p.vs
	vs.Results.Cards = append([]search.Card{}, p.vs.Results.Cards...)
	vs.State = stateOf(vs).String()
	return vs, p.query
}

// Updated is the time of the last handle call.
func (p *Page) Updated() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updated
}

func stateOf(vs search.ViewState) search.State {
	switch {
	case vs.Loading:
		return search.StateLoading
	case vs.Error != "":
		return search.StateError
	case vs.Results.Notice != "":
		return search.StateEmpty
	case len(vs.Results.Cards) > 0:
		return search.StateSuccess
	default:
		return search.StateIdle
	}
}
