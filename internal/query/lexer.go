package query

import (
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenPhrase
	TokenField
	TokenAnd
	TokenOr
	TokenNot
)

type Token struct {
	Type  TokenType
	Value string
}

type Lexer struct {
	input []rune
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	if l.input[l.pos] == '"' {
		return l.readPhrase()
	}

	// read up to whitespace, or up to a colon when the word is a field name
	start := l.pos
	for l.pos < len(l.input) && !unicode.IsSpace(l.input[l.pos]) {
		if l.input[l.pos] == ':' && l.pos > start {
			word := string(l.input[start:l.pos])
			l.pos++
			return Token{Type: TokenField, Value: word}
		}
		l.pos++
	}

	word := string(l.input[start:l.pos])

	switch word {
	case "AND":
		return Token{Type: TokenAnd, Value: word}
	case "OR":
		return Token{Type: TokenOr, Value: word}
	case "NOT":
		return Token{Type: TokenNot, Value: word}
	}

	return Token{Type: TokenString, Value: word}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// readPhrase keeps the quotes; an unterminated phrase runs to the end of input.
func (l *Lexer) readPhrase() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	if l.pos < len(l.input) {
		l.pos++
	}
	phrase := string(l.input[start:l.pos])
	if !strings.HasSuffix(phrase, `"`) || len(phrase) == 1 {
		phrase += `"`
	}
	return Token{Type: TokenPhrase, Value: phrase}
}
