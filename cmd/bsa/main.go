// Command bsa parses an ISC-style named configuration and its referenced
// zone files, builds an in-memory query database over the resulting
// records, and runs named validation suites against it.
//
// Usage:
//
//	bsa [-fake-root dir] [-module name]... [-parser-cache dir] [-log-level level] config...
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"bsa/internal/cache"
	"bsa/internal/config"
	"bsa/internal/query"
	"bsa/suites"
)

type moduleFlag []string

func (m *moduleFlag) String() string     { return strings.Join(*m, ",") }
func (m *moduleFlag) Set(v string) error { *m = append(*m, v); return nil }

func main() {
	fakeRoot := flag.String("fake-root", "/etc/bind", "fake root directory absolute include paths are rebased under")
	parserCache := flag.String("parser-cache", "", "optional directory for the persistent AST cache")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	interactive := flag.Bool("interactive", false, "open an interactive shell with the database bound")

	var modules moduleFlag
	flag.Var(&modules, "module", "run a named validation suite (repeatable); if omitted, run all")

	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	}

	configPaths := flag.Args()
	if len(configPaths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bsa [options] config...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	root := config.NewConfig()
	for _, path := range configPaths {
		parsed, err := config.Parse(path, *fakeRoot, log)
		if err != nil {
			log.WithField("path", path).WithError(err).Error("failed to parse configuration")
			os.Exit(1)
		}
		mergeConfig(root, parsed)
	}

	var diskCache cache.Cache
	if *parserCache != "" {
		boltCache, err := cache.Open(filepath.Join(*parserCache, "bsa-cache.db"), log)
		if err != nil {
			log.WithError(err).Warn("failed to open parser cache, continuing without it")
		} else {
			diskCache = boltCache
			defer boltCache.Close()
		}
	}

	db, err := query.BuildDB(root, *fakeRoot, diskCache, log)
	if err != nil {
		log.WithError(err).Error("failed to build query database")
		os.Exit(1)
	}

	if *interactive {
		log.Warn("interactive mode is not implemented by this build; see the repl package contract")
	}

	toRun := suites.All
	if len(modules) > 0 {
		toRun = selectSuites(modules)
	}

	reporter := suites.NewReporter(log)
	ok := suites.Run(db, toRun, reporter)
	reporter.PrintAll()

	if !ok {
		os.Exit(1)
	}
}

// mergeConfig folds additional config files' top-level state into root,
// matching the original tool's support for multiple positional config
// arguments sharing one assembled database.
func mergeConfig(root, parsed *config.Config) {
	for origin, zone := range parsed.Zones {
		root.Zones[origin] = zone
	}
	for name, view := range parsed.Views {
		root.Views[name] = view
	}
	for name, members := range parsed.ACL {
		root.ACL[name] = members
	}
}

func selectSuites(names []string) []suites.Suite {
	var out []suites.Suite
	for _, s := range suites.All {
		for _, name := range names {
			if s.Name == name {
				out = append(out, s)
			}
		}
	}
	return out
}
