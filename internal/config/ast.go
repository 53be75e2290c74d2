package config

// frameState carries the include-frame captured when a statement was
// parsed, so that directives resolving relative paths (notably a zone's
// `file` directive) resolve them relative to the file that held them, not
// relative to wherever interpretation happens to be walking.
type frameState struct {
	Path string
}

// statement is one AST node: `identifier arguments ["{" statements "}"] ";"`.
// The config grammar's include directive never appears as a statement
// itself — it is expanded inline during parsing and its body spliced into
// the enclosing statement list.
type statement struct {
	State frameState
	Ident string
	Args  []string
	Body  []statement
}
