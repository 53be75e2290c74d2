package config

import (
	"net"

	"github.com/sirupsen/logrus"

	"bsa/internal/bsaerr"
)

// resolveFunc resolves a path referenced from a statement's source file
// (C1), used to anchor a zone's `file` directive to the file it was
// declared in rather than to wherever interpretation is currently walking.
type resolveFunc func(path, last string) (string, error)

// interpret walks the AST using a FIFO worklist: a view's body is queued
// and interpreted after the statements already pending, producing the
// Config tree.
func interpret(root *Config, stmts []statement, resolve resolveFunc, log *logrus.Logger) error {
	type work struct {
		cfg   *Config
		stmts []statement
	}

	queue := []work{{root, stmts}}

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]

		for _, st := range w.stmts {
			switch st.Ident {
			case "zone":
				if len(st.Args) != 1 {
					return bsaerr.Newf(bsaerr.ParseError, st.State.Path, 0, "zone statement requires exactly one origin argument")
				}
				zone := &Zone{Origin: st.Args[0]}
				if err := applyZoneBody(zone, st.Body, resolve); err != nil {
					return err
				}
				w.cfg.Zones[zone.Origin] = zone

			case "view":
				if len(st.Args) != 1 {
					return bsaerr.Newf(bsaerr.ParseError, st.State.Path, 0, "view statement requires exactly one name argument")
				}
				view := newView(w.cfg, st.Args[0])
				w.cfg.Views[view.Name] = view
				queue = append(queue, work{view, st.Body})

			case "match-clients":
				if !isView(w.cfg) {
					log.WithField("directive", st.Ident).Warn("match-clients outside of a view")
					continue
				}
				w.cfg.MatchClients = append(w.cfg.MatchClients, identList(st.Body)...)

			case "options":
				applyOptions(&w.cfg.Options, st.Body, log)

			case "acl":
				if len(st.Args) != 1 {
					return bsaerr.Newf(bsaerr.ParseError, st.State.Path, 0, "acl statement requires exactly one name argument")
				}
				w.cfg.ACL[st.Args[0]] = identList(st.Body)

			case "logging":
				// ignored.3

			default:
				log.WithField("directive", st.Ident).Warn("unhandled top-level directive")
			}
		}
	}

	return nil
}

func isView(c *Config) bool { return !c.IsRoot() }

// identList converts a braced list of bare statements (e.g. the body of
// `allow-update { 10.0.0.1; };`) into the list of identifiers they name.
func identList(body []statement) []string {
	out := make([]string, 0, len(body))
	for _, st := range body {
		out = append(out, st.Ident)
	}
	return out
}

func applyZoneBody(zone *Zone, body []statement, resolve resolveFunc) error {
	for _, st := range body {
		switch st.Ident {
		case "file":
			if len(st.Args) != 1 {
				return bsaerr.Newf(bsaerr.ParseError, st.State.Path, 0, "file directive requires exactly one path argument")
			}
			resolved, err := resolve(st.Args[0], st.State.Path)
			if err != nil {
				return bsaerr.New(bsaerr.IncludeNotFound, st.Args[0], 0, err)
			}
			zone.File = resolved

		case "allow-update":
			zone.AllowUpdate = append(zone.AllowUpdate, identList(st.Body)...)
		}
	}
	return nil
}

func applyOptions(opts *Options, body []statement, log *logrus.Logger) {
	for _, st := range body {
		switch st.Ident {
		case "directory":
			if len(st.Args) > 0 {
				opts.Directory = st.Args[0]
			}

		case "also-notify":
			opts.AlsoNotify = append(opts.AlsoNotify, validatedAddresses(identList(st.Body), log)...)

		case "auth-nxdomain":
			if len(st.Args) > 0 {
				v := convertBool(st.Args[0])
				opts.AuthNxdomain = &v
			}

		case "listen-on-v6":
			opts.ListenOnV6 = append(opts.ListenOnV6, identList(st.Body)...)

		case "allow-recursion":
			opts.AllowRecursion = append(opts.AllowRecursion, identList(st.Body)...)

		case "allow-transfer":
			opts.AllowTransfer = append(opts.AllowTransfer, identList(st.Body)...)

		case "statistics-file":
			if len(st.Args) > 0 {
				opts.StatisticsFile = st.Args[0]
			}

		default:
			log.WithField("option", st.Ident).Warn("unhandled option key")
		}
	}
}

func convertBool(s string) bool {
	return s == "true" || s == "yes"
}

// validatedAddresses keeps only the entries that parse as IPv4 addresses,
// matching the original tool's use of an IPv4 converter for also-notify;
// anything else is logged and dropped rather than failing the whole parse.
func validatedAddresses(idents []string, log *logrus.Logger) []string {
	out := make([]string, 0, len(idents))
	for _, ident := range idents {
		ip := net.ParseIP(ident)
		if ip == nil || ip.To4() == nil {
			log.WithField("value", ident).Warn("also-notify: not an IPv4 address")
			continue
		}
		out = append(out, ident)
	}
	return out
}
