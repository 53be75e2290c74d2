// Package query implements an indexed lookup engine over parsed zone
// records: records are indexed by a labelized form of their resolved
// owner name, with wildcard, record-type and view filters layered on top.
package query

import (
	"path"
	"strings"

	"bsa/internal/config"
	"bsa/internal/zoneparse"
)

// anySentinel stands in for a wildcard label component ("*") in the
// index; it is chosen to be unreachable from any legal label component.
const anySentinel = "\x00any\x00"

type hit struct {
	record  zoneparse.Record
	configs []*config.Config
}

// DB is the frozen, built-once query index: constructed once, thereafter
// read-only.
type DB struct {
	index map[string][]hit
	all   []hit
	zones []ZoneEntry
}

// NewDB builds the index from a sequence of per-zone-file entries. Record
// order within the index preserves append order, which is zone-file
// appearance order including nested includes.
func NewDB(zones []ZoneEntry) *DB {
	db := &DB{index: make(map[string][]hit), zones: zones}

	for _, z := range zones {
		for _, r := range z.Records {
			h := hit{record: r, configs: z.Configs}
			db.all = append(db.all, h)

			key := keyString(labelParts(r.ResolvedLabel()))
			db.index[key] = append(db.index[key], h)
		}
	}

	return db
}

// Zones exposes the per-zone-file grouping so validation suites can iterate
// (records, configs) pairs.
func (db *DB) Zones() []ZoneEntry { return db.zones }

// labelParts lowercases, strips the trailing ".", splits on ".", and maps
// "*" to the ANY sentinel.
func labelParts(label string) []string {
	label = strings.ToLower(strings.TrimSuffix(label, "."))
	if label == "" {
		return nil
	}
	parts := strings.Split(label, ".")
	for i, p := range parts {
		if p == "*" {
			parts[i] = anySentinel
		}
	}
	return parts
}

func keyString(parts []string) string {
	return strings.Join(parts, "\x00")
}

// IQuery is the lookup primitive behind Query. label may
// contain a shell-style glob ("*"); record and view default to AnyRecord()
// / AnyView() (the zero values already mean "accept all").
func (db *DB) IQuery(label string, record RecordFilter, view ViewFilter, unique bool) []zoneparse.Record {
	var hits []hit

	if strings.Contains(label, "*") {
		hits = db.wildcardHits(label)
	} else {
		hits = db.directHits(label)
	}

	out := make([]zoneparse.Record, 0, len(hits))
	var seen map[string]bool
	if unique {
		seen = make(map[string]bool, len(hits))
	}

	for _, h := range hits {
		if !record.matches(h.record) {
			continue
		}
		if !anyConfigMatches(view, h.configs) {
			continue
		}
		if unique {
			k := h.record.FullKey()
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, h.record)
	}

	return out
}

// Query materializes IQuery's result into a list; in Go there is no
// separate lazy form, so this is a thin alias kept for parity with the
// source's iquery/query split.
func (db *DB) Query(label string, record RecordFilter, view ViewFilter, unique bool) []zoneparse.Record {
	return db.IQuery(label, record, view, unique)
}

// directHits probes the index for an exact labelized key, then falls back
// to the same key with its first component wildcarded (a single-level
// left-edge wildcard stored in the zone data), stopping at the first
// bucket that yields anything.
func (db *DB) directHits(label string) []hit {
	parts := labelParts(label)

	if bucket, ok := db.index[keyString(parts)]; ok && len(bucket) > 0 {
		return bucket
	}

	if len(parts) == 0 {
		return nil
	}

	wildcarded := append([]string(nil), parts...)
	wildcarded[0] = anySentinel
	return db.index[keyString(wildcarded)]
}

// wildcardHits scans every record in every zone and keeps those whose
// resolved label matches the glob pattern; view filtering is applied to
// the matches afterward rather than pruning the scan itself.
func (db *DB) wildcardHits(pattern string) []hit {
	pattern = strings.ToLower(pattern)

	var out []hit
	for _, h := range db.all {
		name := strings.ToLower(strings.TrimSuffix(h.record.ResolvedLabel(), "."))
		matched, err := path.Match(strings.TrimSuffix(pattern, "."), name)
		if err == nil && matched {
			out = append(out, h)
		}
	}
	return out
}

func anyConfigMatches(view ViewFilter, configs []*config.Config) bool {
	for _, c := range configs {
		if view.matches(c.IsRoot(), c.Name) {
			return true
		}
	}
	return false
}
