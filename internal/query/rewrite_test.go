package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"\t\n ", "", false},
		{"  Dune ", "Dune", true},
		{"Sagan om ringen", "Sagan om ringen", true},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain words", "Dune messiah", "Dune messiah"},
		{"lowercase keywords are words", "war and peace", "war and peace"},
		{"author field", "author:Herbert", "inauthor:Herbert"},
		{"case-insensitive field", "Title:Dune", "intitle:Dune"},
		{"logical AND is implicit", "author:Кинг AND title:Оно", "inauthor:Кинг intitle:Оно"},
		{"negation", "NOT title:Куджо", "-intitle:Куджо"},
		{"negated word", "Dune NOT messiah", "Dune -messiah"},
		{"or kept", "tolkien OR lewis", "tolkien OR lewis"},
		{"quoted phrase", `author:"Stephen King" shining`, `inauthor:"Stephen King" shining`},
		{"unterminated phrase", `"lord of`, `"lord of"`},
		{"native operator untouched", "inpublisher:Bonnier", "inpublisher:Bonnier"},
		{"unknown field kept", "http://x.test", "http://x.test"},
		{"dangling field", "author:", "inauthor:"},
		{"isbn", "isbn:9780441013593", "isbn:9780441013593"},
		{"lone AND", "AND", ""},
		{"lone NOT", "NOT", ""},
		{"keywords only", "NOT AND", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rewrite(tt.input))
		})
	}
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		input   string
		aliases bool
		want    string
		ok      bool
	}{
		{"  author:Herbert ", false, "author:Herbert", true},
		{"  author:Herbert ", true, "inauthor:Herbert", true},
		{"AND", false, "AND", true},
		{"AND", true, "", false},
		{" NOT ", true, "", false},
		{"   ", true, "", false},
		{"Dune AND", true, "Dune", true},
	}

	for _, tt := range tests {
		q, ok := Prepare(tt.input, tt.aliases)
		assert.Equal(t, tt.want, q, "input %q aliases=%v", tt.input, tt.aliases)
		assert.Equal(t, tt.ok, ok, "input %q aliases=%v", tt.input, tt.aliases)
	}
}
