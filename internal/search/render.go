package search

import (
	"booksearch/internal/messages"
)

// Card is the display form of one Result.
type Card struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Cover    string `json:"cover,omitempty"` // empty renders the placeholder block
	CoverAlt string `json:"cover_alt,omitempty"`
	NoCover  string `json:"no_cover,omitempty"`
}

// ResultSet replaces the whole results container on every render.
// At most one of Cards and Notice is set.
type ResultSet struct {
	Cards  []Card `json:"cards"`
	Notice string `json:"notice,omitempty"`
}

// ViewState is everything the view shows for one Outcome.
type ViewState struct {
	State         string    `json:"state"`
	Loading       bool      `json:"loading"`
	LoadingText   string    `json:"loading_text,omitempty"`
	SubmitEnabled bool      `json:"submit_enabled"`
	SubmitLabel   string    `json:"submit_label"`
	Error         string    `json:"error,omitempty"` // hidden when empty
	Results       ResultSet `json:"results"`
}

// Render maps an Outcome to its ViewState. It has no side effects; equal
// outcomes give equal view states.
func Render(o Outcome, msgs *messages.Printer) ViewState {
	vs := ViewState{
		State:         o.State.String(),
		SubmitEnabled: true,
		SubmitLabel:   msgs.Get(messages.SubmitIdle),
		Results:       ResultSet{Cards: []Card{}},
	}

	switch o.State {
	case StateLoading:
		vs.Loading = true
		vs.LoadingText = msgs.Get(messages.Loading)
		vs.SubmitEnabled = false
		vs.SubmitLabel = msgs.Get(messages.SubmitLoading)
	case StateSuccess:
		vs.Results.Cards = make([]Card, 0, len(o.Results))
		for _, r := range o.Results {
			vs.Results.Cards = append(vs.Results.Cards, toCard(r, msgs))
		}
	case StateEmpty:
		vs.Results.Notice = msgs.Get(messages.NoResults)
	case StateError:
		vs.Error = o.Message
	}
	return vs
}

func toCard(r Result, msgs *messages.Printer) Card {
	c := Card{Title: r.Title, Author: r.AuthorLine}
	if r.HasCover() {
		c.Cover = r.Thumbnail
		c.CoverAlt = msgs.Get(messages.CoverAlt, r.Title)
	} else {
		c.NoCover = msgs.Get(messages.NoCover)
	}
	return c
}
