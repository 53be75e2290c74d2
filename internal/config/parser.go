package config

import (
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bsa/internal/bsaerr"
	"bsa/internal/include"
	"bsa/internal/pathresolve"
)

// parser walks the nested-braces config grammar into a tree of statement
// nodes, expanding `include "path";` inline via the shared include.Machine
// (C2). It implements include.Parser[[]statement] so the machine can
// recurse into included files using exactly the same entry point as the
// top-level file.
type parser struct {
	machine *include.Machine[struct{}, []statement]
	log     *logrus.Logger
}

// ParseFile reads path, tokenizes it, and parses its statement list. It is
// the callback the include machine invokes for every nested include; Parse
// calls it directly for the root file.
func (p *parser) ParseFile(path string) ([]statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bsaerr.New(bsaerr.IncludeNotFound, path, 0, err)
	}

	toks, err := tokenize(string(data), path)
	if err != nil {
		return nil, err
	}

	return p.parseStatements(newTokenStream(toks, path))
}

// parseStatements consumes statements until a closing brace or EOF,
// splicing any `include` directive's result inline rather than emitting it
// as a statement node.
func (p *parser) parseStatements(toks *tokenStream) ([]statement, error) {
	var out []statement

	for {
		if toks.peek().kind == tokRBrace || toks.peek().kind == tokEOF {
			return out, nil
		}

		head, err := toks.expect(tokWord, "statement (identifier and arguments)")
		if err != nil {
			return nil, err
		}

		parts, err := shlex.Split(head.text)
		if err != nil {
			return nil, bsaerr.New(bsaerr.ParseError, toks.path, head.line, errors.Wrap(err, "splitting statement arguments"))
		}
		if len(parts) == 0 {
			return nil, bsaerr.Newf(bsaerr.ParseError, toks.path, head.line, "empty statement")
		}
		ident, args := parts[0], parts[1:]

		var body []statement
		if toks.peek().kind == tokLBrace {
			toks.next()
			body, err = p.parseStatements(toks)
			if err != nil {
				return nil, err
			}
			if _, err := toks.expect(tokRBrace, "closing }"); err != nil {
				return nil, err
			}
		}

		if _, err := toks.expect(tokSemi, "terminating ;"); err != nil {
			return nil, err
		}

		if ident == "include" {
			if len(args) != 1 {
				return nil, bsaerr.Newf(bsaerr.ParseError, toks.path, head.line, "include requires exactly one path argument")
			}
			included, err := p.machine.Include(args[0], struct{}{}, p)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)
			continue
		}

		out = append(out, statement{
			State: frameState{Path: p.machine.Peek().Path},
			Ident: ident,
			Args:  args,
			Body:  body,
		})
	}
}

// Parse reads the top-level configuration file at path, resolving any
// include against a fake root of fakeRoot, and returns the interpreted
// Config tree (C3 + C4). log receives diagnostics; nil uses
// logrus.StandardLogger().
func Parse(path, fakeRoot string, log *logrus.Logger) (*Config, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	root := filepath.Dir(path)
	resolver := pathresolve.New(root, fakeRoot)

	machine := include.NewMachine[struct{}, []statement](path, struct{}{}, resolver.Resolve, log)
	p := &parser{machine: machine, log: log}

	stmts, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()
	if err := interpret(cfg, stmts, resolver.Resolve, log); err != nil {
		return nil, err
	}

	return cfg, nil
}
