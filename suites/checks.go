package suites

import (
	"strings"

	"github.com/miekg/dns"

	"bsa/internal/query"
	"bsa/internal/zoneparse"
)

// Suite is a named validation check: it inspects db and reports findings
// through reporter, returning false if it found anything error-worthy.
// Run reports whether the check found nothing error-worthy.
type Suite struct {
	Name string
	Run  func(db *query.DB, reporter *Reporter) bool
}

// allRecords flattens every zone's records, mirroring the source's
// generate_records helper.
func allRecords(db *query.DB) []zoneparse.Record {
	var out []zoneparse.Record
	for _, z := range db.Zones() {
		out = append(out, z.Records...)
	}
	return out
}

// soaDomains collects the resolved owner of every SOA record in the
// database: the set of zones a suite is licensed to make closed-world
// assumptions about (a missing target outside these domains might simply
// be delegated elsewhere).
func soaDomains(db *query.DB) []string {
	var out []string
	for _, r := range allRecords(db) {
		if r.Type() == "SOA" {
			out = append(out, r.ResolvedLabel())
		}
	}
	return out
}

// domainIn reports whether label falls within (is a suffix of) any of
// domains.
func domainIn(label string, domains []string) bool {
	for _, d := range domains {
		if strings.HasSuffix(label, d) {
			return true
		}
	}
	return false
}

// CNAMESuite checks that every CNAME's target resolves to something,
// within zones this run has SOA authority over.
var CNAMESuite = Suite{Name: "cname", Run: checkCNAME}

func checkCNAME(db *query.DB, reporter *Reporter) bool {
	ok := true
	checked := soaDomains(db)

	for _, r := range allRecords(db) {
		if r.Type() != "CNAME" {
			continue
		}
		target := r.(zoneparse.CNAMERecord).ResolvedTarget()

		if !domainIn(target, checked) {
			continue
		}

		hits := db.Query(target, query.RecordTypes("A", "NS", "CNAME", "PTR"), query.AnyView(), false)
		if len(hits) > 0 {
			continue
		}

		reporter.Error("cname", "missing target [A, NS, CNAME, PTR]: %s (%s)", target, r.String())
		ok = false
	}

	return ok
}

// PTRSuite checks that every A-record has a corresponding reverse PTR
// record, deriving the reverse-lookup name via
// github.com/miekg/dns's ReverseAddr.
var PTRSuite = Suite{Name: "ptr", Run: checkPTR}

func checkPTR(db *query.DB, reporter *Reporter) bool {
	ok := true
	checked := soaDomains(db)

	for _, r := range allRecords(db) {
		if r.Type() != "A" {
			continue
		}
		a := r.(zoneparse.ARecord)

		if !domainIn(a.ResolvedLabel(), checked) {
			continue
		}

		lookup, err := dns.ReverseAddr(a.Address)
		if err != nil {
			reporter.Warning("ptr", "could not derive reverse address for %s: %v", a.Address, err)
			continue
		}

		hits := db.Query(lookup, query.RecordTypes("PTR", "CNAME"), query.AnyView(), false)
		if len(hits) > 0 {
			continue
		}

		reporter.Error("ptr", "missing reverse [PTR, CNAME]: %s (%s)", lookup, a.String())
		ok = false
	}

	return ok
}

// SRVSuite checks that every SRV record's target resolves to something,
// when both the SRV's own owner and its target fall within a zone this
// run has SOA authority over.
var SRVSuite = Suite{Name: "srv", Run: checkSRV}

func checkSRV(db *query.DB, reporter *Reporter) bool {
	ok := true
	checked := soaDomains(db)

	for _, r := range allRecords(db) {
		if r.Type() != "SRV" {
			continue
		}
		srv := r.(zoneparse.SRVRecord)

		if !domainIn(srv.ResolvedLabel(), checked) {
			continue
		}

		target := srv.ResolvedTarget()
		if !domainIn(target, checked) {
			continue
		}

		hits := db.Query(target, query.RecordTypes("A", "NS", "CNAME"), query.AnyView(), false)
		if len(hits) > 0 {
			continue
		}

		reporter.Error("srv", "missing target [A, NS, CNAME]: %s (%s)", target, srv.String())
		ok = false
	}

	return ok
}

// All is the full built-in suite set, in the order the original tool ran
// them.
var All = []Suite{CNAMESuite, PTRSuite, SRVSuite}

// Run executes every suite in suites against db, aggregating their
// results: all suites always execute (a failing suite never aborts the
// run), and the run as a whole succeeds only if every suite did.
func Run(db *query.DB, suites []Suite, reporter *Reporter) bool {
	success := true
	for _, s := range suites {
		if !s.Run(db, reporter) {
			success = false
		}
	}
	return success
}
