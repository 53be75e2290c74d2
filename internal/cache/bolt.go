package cache

import (
	"bytes"
	"encoding/gob"
	"os"
	"time"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"

	"bsa/internal/zoneparse"
)

var zonesBucket = []byte("zones")

func init() {
	gob.Register(zoneparse.ARecord{})
	gob.Register(zoneparse.NSRecord{})
	gob.Register(zoneparse.CNAMERecord{})
	gob.Register(zoneparse.PTRRecord{})
	gob.Register(zoneparse.MXRecord{})
	gob.Register(zoneparse.AFSDBRecord{})
	gob.Register(zoneparse.SRVRecord{})
	gob.Register(zoneparse.TXTRecord{})
	gob.Register(zoneparse.SOARecord{})
}

// storedEntry is what actually lands in bolt: the records plus the instant
// they were written, since a single-file KV store has no native per-key
// mtime to compare against the zone file's mtime.
type storedEntry struct {
	StoredAt time.Time
	Records  []zoneparse.Record
}

// BoltCache is the bolt-backed Cache implementation. One bolt database
// file backs an entire --parser-cache directory; each zone gets one key
// inside it.
type BoltCache struct {
	db  *bolt.DB
	log *logrus.Logger
}

// Open opens (creating if necessary) a bolt database at path for use as
// the persistent AST cache.
func Open(path string, log *logrus.Logger) (*BoltCache, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(zonesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db, log: log}, nil
}

func (c *BoltCache) Close() error { return c.db.Close() }

// Get returns the cached records for (file, origin), or ok==false if there
// is no entry, the entry is corrupt, or the entry predates the zone
// file's last modification (the freshness rule specifies).
func (c *BoltCache) Get(file, origin string) ([]zoneparse.Record, bool) {
	key := []byte(Key(file, origin))

	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(zonesBucket).Get(key)
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false
	}

	var entry storedEntry
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&entry); err != nil {
		c.log.WithField("file", file).WithError(err).Warn("parser cache: ignoring broken cache entry")
		return nil, false
	}

	info, err := os.Stat(file)
	if err != nil {
		c.log.WithField("file", file).WithError(err).Warn("parser cache: zone file missing, ignoring cache entry")
		return nil, false
	}

	if !entry.StoredAt.After(info.ModTime()) {
		c.log.WithField("file", file).Warn("parser cache: stale entry, re-parsing")
		return nil, false
	}

	return entry.Records, true
}

// Put stores records for (file, origin), stamped with the current time so
// a later Get can judge freshness against the zone file's mtime.
func (c *BoltCache) Put(file, origin string, records []zoneparse.Record) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(storedEntry{StoredAt: time.Now(), Records: records}); err != nil {
		return err
	}

	key := []byte(Key(file, origin))
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(zonesBucket).Put(key, buf.Bytes())
	})
}
