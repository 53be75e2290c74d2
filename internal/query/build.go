package query

import (
	"github.com/sirupsen/logrus"

	"bsa/internal/cache"
	"bsa/internal/config"
	"bsa/internal/zoneparse"
)

// ZoneEntry groups one distinct (file, origin) pair's parsed records
// with every Config node (root or view) that references it, the shape
// C9 is built from.
type ZoneEntry struct {
	Zone    *config.Zone
	Records []zoneparse.Record
	Configs []*config.Config
}

// BuildDB walks every zone reachable from root (root config plus all
// views), parses each distinct (file, origin) pair exactly once
// regardless of how many views reference it, and constructs the query
// index over the result. diskCache, when non-nil, is consulted before
// and populated after each parse.
func BuildDB(root *config.Config, fakeRoot string, diskCache cache.Cache, log *logrus.Logger) (*DB, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	type group struct {
		zone    *config.Zone
		configs []*config.Config
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, ref := range root.AllZones() {
		key := ref.Zone.File + "\x00" + ref.Zone.Origin
		g, ok := groups[key]
		if !ok {
			g = &group{zone: ref.Zone}
			groups[key] = g
			order = append(order, key)
		}
		g.configs = append(g.configs, ref.Config)
	}

	// order/groups already collapse every view's reference to a distinct
	// (file, origin) pair down to one entry, so each one below is parsed
	// at most once per run regardless of diskCache.
	entries := make([]ZoneEntry, 0, len(order))

	for _, key := range order {
		g := groups[key]
		file := g.zone.File

		var records []zoneparse.Record
		var fromCache bool
		if diskCache != nil {
			records, fromCache = diskCache.Get(file, g.zone.Origin)
		}

		if !fromCache {
			parsed, err := zoneparse.Parse(file, g.zone.Origin, fakeRoot, log)
			if err != nil {
				return nil, err
			}
			if diskCache != nil {
				if err := diskCache.Put(file, g.zone.Origin, parsed); err != nil {
					log.WithField("file", file).WithError(err).Warn("parser cache: failed to persist entry")
				}
			}
			records = parsed
		}

		entries = append(entries, ZoneEntry{Zone: g.zone, Records: records, Configs: g.configs})
	}

	return NewDB(entries), nil
}
