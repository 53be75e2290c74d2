package suites

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bsa/internal/config"
	"bsa/internal/query"
	"bsa/internal/zoneparse"
)

func hdr(label, origin string) zoneparse.Header {
	return zoneparse.Header{Label: label, TTL: 3600, ClassType: "IN", Origin: origin}
}

func newDB(t *testing.T, records ...zoneparse.Record) *query.DB {
	t.Helper()
	root := config.NewConfig()
	zone := &config.Zone{Origin: "example.com.", File: "db.example"}
	return query.NewDB([]query.ZoneEntry{{Zone: zone, Records: records, Configs: []*config.Config{root}}})
}

func soa(origin string) zoneparse.Record {
	return zoneparse.SOARecord{Common: hdr("@", origin), Primary: "ns1", Mail: "hostmaster", Serial: 1, Refresh: 2, Retry: 3, Expire: 4, Minimum: 5}
}

// TestCNAMECheckFlagsMissingTarget covers a CNAME target with no A/NS/CNAME/PTR record.
func TestCNAMECheckFlagsMissingTarget(t *testing.T) {
	db := newDB(t,
		soa("example.com."),
		zoneparse.NewCNAME(hdr("foo", "example.com."), "bar.example.com."),
	)

	reporter := NewReporter(nil)
	ok := checkCNAME(db, reporter)
	require.False(t, ok)
}

func TestCNAMECheckPassesWhenTargetExists(t *testing.T) {
	db := newDB(t,
		soa("example.com."),
		zoneparse.NewCNAME(hdr("foo", "example.com."), "bar.example.com."),
		zoneparse.ARecord{Common: hdr("bar", "example.com."), Address: "1.2.3.4"},
	)

	reporter := NewReporter(nil)
	ok := checkCNAME(db, reporter)
	require.True(t, ok)
}

// TestPTRCheckFlagsMissingReverse covers an A record with no matching reverse PTR.
func TestPTRCheckFlagsMissingReverse(t *testing.T) {
	db := newDB(t,
		soa("example.com."),
		zoneparse.ARecord{Common: hdr("host", "example.com."), Address: "10.0.0.1"},
	)

	reporter := NewReporter(nil)
	ok := checkPTR(db, reporter)
	require.False(t, ok)
}

func TestPTRCheckPassesWhenReverseAdded(t *testing.T) {
	db := newDB(t,
		soa("example.com."),
		zoneparse.ARecord{Common: hdr("host", "example.com."), Address: "10.0.0.1"},
		zoneparse.NewPTR(hdr("1", "0.0.10.in-addr.arpa."), "host.example.com."),
	)

	reporter := NewReporter(nil)
	ok := checkPTR(db, reporter)
	require.True(t, ok)
}

func TestRunAggregatesAcrossSuites(t *testing.T) {
	db := newDB(t,
		soa("example.com."),
		zoneparse.NewCNAME(hdr("foo", "example.com."), "bar.example.com."),
	)

	reporter := NewReporter(nil)
	ok := Run(db, All, reporter)
	require.False(t, ok)
}
