package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bsa/internal/config"
	"bsa/internal/zoneparse"
)

func header(label, origin string) zoneparse.Header {
	return zoneparse.Header{Label: label, TTL: 3600, ClassType: "IN", Origin: origin}
}

func aRecord(t *testing.T, label, origin, addr string) zoneparse.Record {
	t.Helper()
	return zoneparse.ARecord{Common: header(label, origin), Address: addr}
}

func TestDirectLookupPrefersExactOverWildcard(t *testing.T) {
	wild := aRecord(t, "*", "example.com.", "9.9.9.9")
	exact := aRecord(t, "host", "example.com.", "1.2.3.4")

	root := config.NewConfig()
	zone := &config.Zone{Origin: "example.com.", File: "db.example"}
	root.Zones["example.com."] = zone

	db := NewDB([]ZoneEntry{{Zone: zone, Records: []zoneparse.Record{wild, exact}, Configs: []*config.Config{root}}})

	got := db.Query("host.example.com.", AnyRecord(), AnyView(), false)
	require.Len(t, got, 1)
	require.Equal(t, "1.2.3.4", got[0].(zoneparse.ARecord).Address)
}

func TestDirectLookupFallsBackToWildcardBucket(t *testing.T) {
	wild := aRecord(t, "*", "example.com.", "9.9.9.9")

	root := config.NewConfig()
	zone := &config.Zone{Origin: "example.com.", File: "db.example"}
	root.Zones["example.com."] = zone
	db := NewDB([]ZoneEntry{{Zone: zone, Records: []zoneparse.Record{wild}, Configs: []*config.Config{root}}})

	got := db.Query("anything.example.com.", AnyRecord(), AnyView(), false)
	require.Len(t, got, 1)
}

func TestGlobQueryMatchesAcrossZone(t *testing.T) {
	r1 := aRecord(t, "www", "example.com.", "1.1.1.1")
	r2 := aRecord(t, "mail", "example.com.", "2.2.2.2")

	root := config.NewConfig()
	zone := &config.Zone{Origin: "example.com.", File: "db.example"}
	root.Zones["example.com."] = zone
	db := NewDB([]ZoneEntry{{Zone: zone, Records: []zoneparse.Record{r1, r2}, Configs: []*config.Config{root}}})

	got := db.Query("*.example.com.", AnyRecord(), AnyView(), false)
	require.Len(t, got, 2)
}

func TestViewFilterScopesToDeclaringView(t *testing.T) {
	root := config.NewConfig()
	internal := &config.Config{Name: "internal", Parent: root, Views: map[string]*config.Config{}, Zones: map[string]*config.Zone{}}
	external := &config.Config{Name: "external", Parent: root, Views: map[string]*config.Config{}, Zones: map[string]*config.Zone{}}

	internalZone := &config.Zone{Origin: "corp.", File: "internal/db.corp"}
	externalZone := &config.Zone{Origin: "corp.", File: "external/db.corp"}

	rInternal := aRecord(t, "x", "corp.", "10.0.0.1")
	rExternal := aRecord(t, "x", "corp.", "10.0.0.2")

	db := NewDB([]ZoneEntry{
		{Zone: internalZone, Records: []zoneparse.Record{rInternal}, Configs: []*config.Config{internal}},
		{Zone: externalZone, Records: []zoneparse.Record{rExternal}, Configs: []*config.Config{external}},
	})

	got := db.Query("x.corp.", AnyRecord(), ViewNames("internal"), false)
	require.Len(t, got, 1)
	require.Equal(t, "10.0.0.1", got[0].(zoneparse.ARecord).Address)
}

func TestUniqueModeDeduplicatesEqualRecords(t *testing.T) {
	r1 := aRecord(t, "www", "example.com.", "1.1.1.1")
	r2 := aRecord(t, "www", "example.com.", "1.1.1.1")

	root := config.NewConfig()
	zone := &config.Zone{Origin: "example.com.", File: "db.example"}
	db := NewDB([]ZoneEntry{{Zone: zone, Records: []zoneparse.Record{r1, r2}, Configs: []*config.Config{root}}})

	got := db.Query("www.example.com.", AnyRecord(), AnyView(), true)
	require.Len(t, got, 1)
}

func TestRecordTypeFilter(t *testing.T) {
	a := aRecord(t, "www", "example.com.", "1.1.1.1")

	root := config.NewConfig()
	zone := &config.Zone{Origin: "example.com.", File: "db.example"}
	db := NewDB([]ZoneEntry{{Zone: zone, Records: []zoneparse.Record{a}, Configs: []*config.Config{root}}})

	require.Len(t, db.Query("www.example.com.", RecordTypes("CNAME"), AnyView(), false), 0)
	require.Len(t, db.Query("www.example.com.", RecordTypes("A"), AnyView(), false), 1)
}
