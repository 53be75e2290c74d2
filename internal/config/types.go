// Package config implements the ISC-style nested-braces configuration
// grammar (C3) and its interpretation into a tree of Config nodes (C4).
package config

import "sort"

// Options holds the fixed set of recognized top-level options.
// Unrecognized option keys are logged and dropped during interpretation.
type Options struct {
	Directory      string
	AlsoNotify     []string
	AuthNxdomain   *bool
	ListenOnV6     []string
	AllowRecursion []string
	AllowTransfer  []string
	StatisticsFile string
}

// defaultOptions mirrors the original tool's built-in option defaults.
func defaultOptions() Options {
	return Options{
		Directory:      "/etc/bind",
		AuthNxdomain:   nil,
		AllowRecursion: nil,
		AllowTransfer:  nil,
	}
}

// Zone is a zone descriptor built from a `zone "origin" { … }` block.
type Zone struct {
	Origin      string
	File        string
	AllowUpdate []string
}

// Config is either the root configuration or a view. Views are owned by
// their parent config; zones are owned by the config node they were
// declared in.
type Config struct {
	// Name is "" for the root config, and the view name for a view.
	Name   string
	Parent *Config

	Views   map[string]*Config
	Zones   map[string]*Zone
	Options Options
	ACL     map[string][]string

	// MatchClients is only meaningful for a view.
	MatchClients []string
}

// NewConfig builds an empty root Config with default options.
func NewConfig() *Config {
	return &Config{
		Views:   make(map[string]*Config),
		Zones:   make(map[string]*Zone),
		Options: defaultOptions(),
		ACL:     make(map[string][]string),
	}
}

// newView builds a Config representing a view owned by parent.
func newView(parent *Config, name string) *Config {
	v := NewConfig()
	v.Name = name
	v.Parent = parent
	return v
}

// IsRoot reports whether c is the top-level (non-view) config node. The
// root config always passes a view filter because it
// represents "no view".
func (c *Config) IsRoot() bool {
	return c.Parent == nil
}

// ZoneRef pairs a zone descriptor with the Config node that declared it.
type ZoneRef struct {
	Config *Config
	Zone   *Zone
}

// AllZones walks this config and every view beneath it, yielding every
// declared zone paired with its owning Config node. Traversal order is
// deterministic (origins and view names sorted) so that query ordering
// built on top of it is reproducible across runs.
func (c *Config) AllZones() []ZoneRef {
	var out []ZoneRef

	queue := []*Config{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		origins := make([]string, 0, len(cur.Zones))
		for origin := range cur.Zones {
			origins = append(origins, origin)
		}
		sort.Strings(origins)
		for _, origin := range origins {
			out = append(out, ZoneRef{Config: cur, Zone: cur.Zones[origin]})
		}

		names := make([]string, 0, len(cur.Views))
		for name := range cur.Views {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			queue = append(queue, cur.Views[name])
		}
	}

	return out
}
