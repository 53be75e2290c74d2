// Package include implements the stack-of-frames include machine shared
// by the configuration grammar (C3) and the zone grammar (C5/C6). The
// config grammar only needs a path per frame; the zone grammar
// additionally carries the current $ORIGIN, so the frame carries a
// generic payload rather than being hard-coded to either grammar.
package include

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Frame is one entry on the include stack: a resolved path plus whatever
// extra per-grammar state (e.g. the zone grammar's current origin) needs to
// travel with it.
type Frame[T any] struct {
	Path  string
	Extra T
}

// Parser parses a single resolved path into an AST of type A, using
// Machine.Include to recursively expand nested includes as the grammar
// demands it.
type Parser[A any] interface {
	ParseFile(path string) (A, error)
}

// Machine is the shared include-stack engine. It resolves include paths
// through Resolve, memoizes parsed ASTs by resolved path (parse at most
// once per key, terminate via memoization), and maintains the frame
// stack so a parser can inspect (or push) state captured at the moment
// of parse.
type Machine[T any, A any] struct {
	Resolve func(path, last string) (string, error)
	Log     *logrus.Logger

	stack []Frame[T]
	cache map[string]A
}

// NewMachine creates a Machine whose base frame holds basePath and
// baseExtra. resolve implements the path-remapping rule (C1); log receives
// diagnostic messages (nil is treated as logrus.StandardLogger()).
func NewMachine[T any, A any](basePath string, baseExtra T, resolve func(path, last string) (string, error), log *logrus.Logger) *Machine[T, A] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Machine[T, A]{
		Resolve: resolve,
		Log:     log,
		stack:   []Frame[T]{{Path: basePath, Extra: baseExtra}},
		cache:   make(map[string]A),
	}
}

// Push adds a frame to the stack.
func (m *Machine[T, A]) Push(path string, extra T) {
	m.stack = append(m.stack, Frame[T]{Path: path, Extra: extra})
}

// Pop removes and returns the top frame.
func (m *Machine[T, A]) Pop() Frame[T] {
	n := len(m.stack)
	top := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return top
}

// Peek returns the current (top) frame without removing it.
func (m *Machine[T, A]) Peek() Frame[T] {
	return m.stack[len(m.stack)-1]
}

// Depth reports how many frames are on the stack, base frame included.
func (m *Machine[T, A]) Depth() int {
	return len(m.stack)
}

// SetExtra replaces the current (top) frame's carried payload in place,
// without touching its path. The zone grammar uses this for $ORIGIN: it
// changes the origin in effect for the rest of the current file without
// pushing a new frame.
func (m *Machine[T, A]) SetExtra(extra T) {
	m.stack[len(m.stack)-1].Extra = extra
}

// Include resolves path against the current frame, returning a
// previously-cached AST if this resolved path was already parsed, or
// pushing a new frame, invoking parser, caching the result and popping
// otherwise. extra is the per-grammar frame payload to push (the zone
// grammar's origin override, or the zero value for the config grammar).
func (m *Machine[T, A]) Include(path string, extra T, parser Parser[A]) (A, error) {
	var zero A

	current := m.Peek()

	resolved, err := m.Resolve(path, current.Path)
	if err != nil {
		return zero, errors.Wrapf(err, "resolving include %q from %q", path, current.Path)
	}

	if cached, ok := m.cache[resolved]; ok {
		m.Log.WithField("path", resolved).Debug("include: AST cache hit")
		return cached, nil
	}

	m.Push(resolved, extra)
	defer m.Pop()

	m.Log.WithField("path", resolved).Debug("include: parsing")

	ast, err := parser.ParseFile(resolved)
	if err != nil {
		return zero, errors.Wrapf(err, "including %q (from %q)", resolved, current.Path)
	}

	m.cache[resolved] = ast
	return ast, nil
}
