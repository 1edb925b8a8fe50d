// Package query normalizes user input and, optionally, rewrites friendly
// field prefixes into the operators the volumes endpoint understands.
package query

import (
	"strings"
)

// Aliases maps user-facing field names to volumes search operators.
var Aliases = map[string]string{
	"author":    "inauthor",
	"title":     "intitle",
	"publisher": "inpublisher",
	"subject":   "subject",
	"isbn":      "isbn",
}

// Normalize trims raw input. ok is false when nothing is left to search for.
func Normalize(raw string) (q string, ok bool) {
	q = strings.TrimSpace(raw)
	return q, q != ""
}

// Prepare normalizes raw and, with aliases set, rewrites it. The rewritten
// form is checked again since keywords alone (AND, NOT) rewrite to nothing.
func Prepare(raw string, aliases bool) (string, bool) {
	q, ok := Normalize(raw)
	if !ok || !aliases {
		return q, ok
	}
	return Normalize(Rewrite(q))
}

// Rewrite translates field aliases and boolean keywords:
//
//	author:King AND NOT title:It  ->  inauthor:King -intitle:It
//
// Plain text passes through with whitespace collapsed.
func Rewrite(input string) string {
	p := newRewriter(NewLexer(input))
	return strings.Join(p.terms(), " ")
}

type rewriter struct {
	l       *Lexer
	curTok  Token
	peekTok Token
}

func newRewriter(l *Lexer) *rewriter {
	p := &rewriter{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *rewriter) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *rewriter) terms() []string {
	var out []string
	for p.curTok.Type != TokenEOF {
		switch p.curTok.Type {
		case TokenAnd:
			// implicit upstream
			p.nextToken()
		case TokenOr:
			out = append(out, "OR")
			p.nextToken()
		case TokenNot:
			p.nextToken() // eat NOT
			if t := p.term(); t != "" {
				out = append(out, "-"+t)
			}
		default:
			if t := p.term(); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// term consumes one filter or word.
func (p *rewriter) term() string {
	switch p.curTok.Type {
	case TokenField:
		name := p.curTok.Value
		if op, ok := Aliases[strings.ToLower(name)]; ok {
			name = op
		}
		p.nextToken() // eat field

		if p.curTok.Type != TokenString && p.curTok.Type != TokenPhrase {
			return name + ":"
		}
		value := p.curTok.Value
		p.nextToken() // eat value
		return name + ":" + value

	case TokenString, TokenPhrase:
		v := p.curTok.Value
		p.nextToken()
		return v

	default:
		return ""
	}
}
