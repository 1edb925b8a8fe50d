// Package messages holds the fixed set of user-visible strings.
//
// All strings live in a single locale. The catalog exists so that every
// surface (terminal, web) prints exactly the same text.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Keys of the message catalog.
const (
	SubmitIdle    = "submit.idle"
	SubmitLoading = "submit.loading"
	Loading       = "loading"
	FetchFailed   = "error.fetch"
	NoResults     = "notice.no_results"
	UnknownTitle  = "placeholder.title"
	UnknownAuthor = "placeholder.author"
	NoCover       = "placeholder.cover"
	CoverAlt      = "cover.alt"
	Heading       = "page.heading"
	InputHint     = "input.placeholder"
)

// Locale is the only locale the tool speaks.
var Locale = language.Swedish

var entries = map[string]string{
	SubmitIdle:    "Sök böcker",
	SubmitLoading: "Söker...",
	Loading:       "Laddar...",
	FetchFailed:   "Ett fel uppstod när böckerna hämtades.",
	NoResults:     "Inga böcker hittades. Försök med andra sökord.",
	UnknownTitle:  "Okänd titel",
	UnknownAuthor: "Okänd författare",
	NoCover:       "Inget omslag",
	CoverAlt:      "Bokomslag för %s",
	Heading:       "Boksök",
	InputHint:     "Sök efter titel, författare eller ämne",
}

// Printer renders catalog entries.
type Printer struct {
	p *message.Printer
}

// New builds the catalog and a printer bound to Locale.
func New() *Printer {
	b := catalog.NewBuilder(catalog.Fallback(Locale))
	for key, msg := range entries {
		// keys are static; SetString only fails on malformed messages
		if err := b.SetString(Locale, key, msg); err != nil {
			panic(err)
		}
	}
	return &Printer{p: message.NewPrinter(Locale, message.Catalog(b))}
}

// Get returns the message for key, formatted with args.
func (p *Printer) Get(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
