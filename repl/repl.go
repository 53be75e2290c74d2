// Package repl is the interactive-shell surface named by the CLI's
// --interactive flag ("open an interactive shell with the database
// bound"). Out of scope beyond its interface: the shell itself, history,
// completion and scripting are an external collaborator's concern.
package repl

import (
	"bsa/internal/query"
)

// Shell is the contract an interactive front-end binds against: a query
// database and nothing else. Implementations outside this module supply
// the actual read-eval-print loop.
type Shell interface {
	Bind(db *query.DB)
}
