// Package render turns view states into markup: an HTML page for the web
// adapter and a text table for the terminal.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"booksearch/internal/messages"
	"booksearch/internal/search"
)

var cardsTmpl = template.Must(template.New("cards").Parse(`
{{- if .Notice }}<div class="no-results">{{ .Notice }}</div>{{ end -}}
{{- range .Cards }}
<div class="book-card">
  {{- if .Cover }}
  <img src="{{ .Cover }}" alt="{{ .CoverAlt }}" class="book-cover">
  {{- else }}
  <div class="no-cover">{{ .NoCover }}</div>
  {{- end }}
  <div>
    <h3 class="book-title">{{ .Title }}</h3>
    <p class="book-author">{{ .Author }}</p>
  </div>
</div>
{{- end }}`))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{ .Lang }}">
<head>
  <meta charset="utf-8">
  <title>{{ .Heading }}</title>
  {{- if .State.Loading }}
  <meta http-equiv="refresh" content="1">
  {{- end }}
  <style>
    .book-card { display: flex; gap: 1rem; margin: .5rem 0; }
    .book-cover, .no-cover { width: 80px; min-height: 110px; }
    .no-cover { background: #eee; display: flex; align-items: center; justify-content: center; font-size: .8rem; }
    #errorMessage { color: #b00; }
  </style>
</head>
<body>
  <h1>{{ .Heading }}</h1>
  <form id="searchForm" method="post" action="/search">
    <input id="searchInput" name="q" type="text" value="{{ .Query }}" placeholder="{{ .Hint }}" autofocus>
    <button id="searchButton" type="submit"{{ if not .State.SubmitEnabled }} disabled{{ end }}>{{ .State.SubmitLabel }}</button>
  </form>
  <div id="loadingIndicator"{{ if not .State.Loading }} style="display:none"{{ end }}>{{ .State.LoadingText }}</div>
  <div id="errorMessage"{{ if not .State.Error }} style="display:none"{{ end }}>{{ .State.Error }}</div>
  <div id="booksContainer">{{ .Results }}</div>
</body>
</html>
`))

var cardClass = regexp.MustCompile(`^(book-card|book-cover|no-cover|book-title|book-author|no-results)$`)

// HTML renders the web page. Safe for concurrent use.
type HTML struct {
	msgs   *messages.Printer
	policy *bluemonday.Policy
}

func NewHTML(msgs *messages.Printer) *HTML {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "h3", "p")
	p.AllowAttrs("class").Matching(cardClass).OnElements("div", "img", "h3", "p")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)

	return &HTML{msgs: msgs, policy: p}
}

// Results renders the container fragment. Only card markup and http(s) or
// relative image sources survive sanitization.
func (h *HTML) Results(set search.ResultSet) (template.HTML, error) {
	var buf bytes.Buffer
	if err := cardsTmpl.Execute(&buf, set); err != nil {
		return "", fmt.Errorf("render cards: %w", err)
	}
	return template.HTML(h.policy.SanitizeBytes(buf.Bytes())), nil
}

type pageData struct {
	Lang    string
	Heading string
	Hint    string
	Query   string
	State   search.ViewState
	Results template.HTML
}

// Page writes the complete document for vs. query refills the input field.
func (h *HTML) Page(w io.Writer, vs search.ViewState, query string) error {
	results, err := h.Results(vs.Results)
	if err != nil {
		return err
	}
	data := pageData{
		Lang:    messages.Locale.String(),
		Heading: h.msgs.Get(messages.Heading),
		Hint:    h.msgs.Get(messages.InputHint),
		Query:   query,
		State:   vs,
		Results: results,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
