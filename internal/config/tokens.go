package config

import (
	"strings"

	"bsa/internal/bsaerr"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokLBrace
	tokRBrace
	tokSemi
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	line int
}

// tokenize performs the character-level pass of the config grammar: it
// strips the three recognized comment forms ("// …", "# …", "/* … */"),
// tracks quoting so that braces/semicolons/comment markers inside a quoted
// string are inert, and otherwise emits maximal runs of non-delimiter text
// as a single "word" token. A word token may itself contain embedded
// whitespace and quoted segments; splitting it into an identifier plus its
// individual bare/quoted arguments is left to the shlex pass in parser.go,
// mirroring the grammar's own split between statement framing (this file)
// and argument tokenizing (shlex).
func tokenize(src, path string) ([]token, error) {
	var toks []token

	runes := []rune(src)
	n := len(runes)

	line := 1
	quoted := false
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			toks = append(toks, token{kind: tokWord, text: word.String(), line: line})
			word.Reset()
		}
	}

	for i := 0; i < n; i++ {
		c := runes[i]

		if c == '\n' {
			line++
		}

		if quoted {
			word.WriteRune(c)
			if c == '"' {
				quoted = false
			}
			continue
		}

		switch {
		case c == '"':
			quoted = true
			word.WriteRune(c)
			continue
		case c == '{':
			flush()
			toks = append(toks, token{kind: tokLBrace, line: line})
			continue
		case c == '}':
			flush()
			toks = append(toks, token{kind: tokRBrace, line: line})
			continue
		case c == ';':
			flush()
			toks = append(toks, token{kind: tokSemi, line: line})
			continue
		case c == '#':
			flush()
			for i < n && runes[i] != '\n' {
				i++
			}
			if i < n {
				line++
			}
			continue
		case c == '/' && i+1 < n && runes[i+1] == '/':
			flush()
			i++
			for i < n && runes[i] != '\n' {
				i++
			}
			if i < n {
				line++
			}
			continue
		case c == '/' && i+1 < n && runes[i+1] == '*':
			flush()
			i += 2
			for i+1 < n && !(runes[i] == '*' && runes[i+1] == '/') {
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			i++ // skip the '*', loop's i++ skips the '/'
			continue
		default:
			word.WriteRune(c)
		}
	}

	if quoted {
		return nil, bsaerr.Newf(bsaerr.ParseError, path, line, "unterminated quoted string")
	}

	flush()
	toks = append(toks, token{kind: tokEOF, line: line})
	return toks, nil
}

type tokenStream struct {
	toks []token
	pos  int
	path string
}

func newTokenStream(toks []token, path string) *tokenStream {
	return &tokenStream{toks: toks, path: path}
}

func (s *tokenStream) peek() token {
	return s.toks[s.pos]
}

func (s *tokenStream) next() token {
	t := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

func (s *tokenStream) expect(kind tokenKind, what string) (token, error) {
	t := s.next()
	if t.kind != kind {
		return t, bsaerr.Newf(bsaerr.ParseError, s.path, t.line, "expected %s", what)
	}
	return t, nil
}
