package zoneparse

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"bsa/internal/bsaerr"
	"bsa/internal/include"
	"bsa/internal/pathresolve"
)

// parser implements include.Parser[[]Record] for the zone grammar (C6). The
// include machine's frame payload is the current $ORIGIN; record-builder
// state (previous label, default TTL) lives outside the stack, since it
// persists across $INCLUDE the way the stack-scoped origin does not.
type parser struct {
	machine *include.Machine[string, []Record]
	rb      *recordBuilder
	log     *logrus.Logger
}

// ParseFile reads path from disk and parses it as a zone master file,
// splicing any $INCLUDEd records inline at the point of inclusion.
func (p *parser) ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bsaerr.New(bsaerr.IncludeNotFound, path, 0, err)
	}
	return p.parseSource(string(data), path)
}

func (p *parser) parseSource(src, path string) ([]Record, error) {
	var out []Record

	for _, zl := range tokenizeZone(src) {
		if len(zl.tokens) == 0 {
			continue
		}

		if strings.HasPrefix(zl.tokens[0], "$") {
			records, err := p.handlePragma(zl.tokens, path, zl.line)
			if err != nil {
				return nil, err
			}
			out = append(out, records...)
			continue
		}

		line, err := classifyLine(zl.tokens)
		if err != nil {
			return nil, bsaerr.Newf(bsaerr.ParseError, path, zl.line, "%s", err)
		}

		origin := p.machine.Peek().Extra
		record, err := p.rb.build(line, origin, path, zl.line)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

// handlePragma dispatches $ORIGIN, $TTL and $INCLUDE.
func (p *parser) handlePragma(tokens []string, path string, lineNum int) ([]Record, error) {
	name := tokens[0]

	switch name {
	case "$ORIGIN":
		if len(tokens) != 2 {
			return nil, bsaerr.Newf(bsaerr.ParseError, path, lineNum, "$ORIGIN requires exactly one argument")
		}
		p.machine.SetExtra(tokens[1])
		return nil, nil

	case "$TTL":
		if len(tokens) != 2 {
			return nil, bsaerr.Newf(bsaerr.ParseError, path, lineNum, "$TTL requires exactly one argument")
		}
		ttl, err := parseTTL(tokens[1])
		if err != nil {
			return nil, err
		}
		p.rb.ttl = ttl
		return nil, nil

	case "$INCLUDE":
		if len(tokens) < 2 {
			return nil, bsaerr.Newf(bsaerr.ParseError, path, lineNum, "$INCLUDE requires a path argument")
		}
		origin := p.machine.Peek().Extra
		if len(tokens) >= 3 {
			origin = tokens[2]
		}
		included, err := p.machine.Include(tokens[1], origin, p)
		if err != nil {
			return nil, err
		}
		return included, nil
	}

	return nil, bsaerr.Newf(bsaerr.UnknownDirective, path, lineNum, "unknown pragma: %q", name)
}

// Parse parses path as a zone master file rooted at origin, remapping
// include/$INCLUDE paths through fakeRoot the way the config grammar does
// (C1), and returns the flattened record list in source order.
func Parse(path, origin, fakeRoot string, log *logrus.Logger) ([]Record, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	resolver := pathresolve.New(filepath.Dir(path), fakeRoot)

	p := &parser{rb: newRecordBuilder(), log: log}
	p.machine = include.NewMachine[string, []Record](path, origin, resolver.Resolve, log)

	return p.ParseFile(path)
}
