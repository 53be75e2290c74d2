// Package cache implements the persistent AST cache: zones are keyed by
// md5(zone.file || zone.origin), and an entry is valid only if it was
// written after the zone file's current modification time. Stale or
// unreadable entries are logged and the zone is re-parsed rather than
// failing the run.
package cache

import (
	"crypto/md5"
	"encoding/hex"

	"bsa/internal/zoneparse"
)

// Cache is the persistent parser-cache contract. Get reports a cache miss
// (ok == false) both when nothing is stored and when what's stored is
// stale or corrupt — callers always have a uniform "re-parse" path.
type Cache interface {
	Get(file, origin string) ([]zoneparse.Record, bool)
	Put(file, origin string, records []zoneparse.Record) error
	Close() error
}

// Key computes the cache key for a zone file/origin pair.
func Key(file, origin string) string {
	sum := md5.Sum([]byte(file + origin))
	return hex.EncodeToString(sum[:])
}
