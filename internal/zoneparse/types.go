// Package zoneparse implements the streaming zone-file tokenizer (C5), the
// pragma/record dispatcher and record builder (C6, C8), and the closed
// set of typed record variants (C7).
package zoneparse

import (
	"fmt"
	"strings"
)

// recordTypeNames is the closed set of record types this parser
// recognizes: A, NS, CNAME, PTR, MX, AFSDB, SRV, TXT, SOA. A record line
// whose type token is not in this set fails classification with a
// ParseError.
var recordTypeNames = map[string]bool{
	"A":     true,
	"NS":    true,
	"CNAME": true,
	"PTR":   true,
	"MX":    true,
	"AFSDB": true,
	"SRV":   true,
	"TXT":   true,
	"SOA":   true,
}

// validClassTypes is the fixed set of class tokens this parser accepts.
var validClassTypes = map[string]bool{"IN": true, "CH": true}

// Header holds the attributes common to every record variant:
// the as-written owner label, TTL, class, origin and the source path the
// record came from.
type Header struct {
	Label     string
	TTL       uint32
	ClassType string
	Origin    string
	Path      string
}

// normalizeLabel appends a trailing "." if label doesn't already have one.
func normalizeLabel(label string) string {
	if strings.HasSuffix(label, ".") {
		return label
	}
	return label + "."
}

// joinOrigin implements join_origin: a label ending in "." is
// already absolute; a literal "@" in label is replaced by origin; otherwise
// origin (itself normalized) is appended with a "." separator.
func joinOrigin(label, origin string) string {
	origin = normalizeLabel(origin)
	label = strings.ReplaceAll(label, "@", origin)

	if strings.HasSuffix(label, ".") {
		return label
	}
	if origin == "." {
		return label + "."
	}
	return label + "." + origin
}

// Record is the common interface every variant implements: a fixed header
// accessor, the record type name, the fully-qualified owner, rdata as
// originally written, rdata with targets re-resolved through join_origin,
// and a key suitable for equality/deduplication.
type Record interface {
	Header() Header
	Type() string
	ResolvedLabel() string
	Values() []string
	OriginValues() []string
	FullKey() string
	String() string
}

func resolvedLabel(h Header) string {
	return joinOrigin(h.Label, h.Origin)
}

// fullKey builds the equality/hash key: the tuple (label, ttl,
// class_type, origin, variant-specific key). Two records differing only
// in TTL are treated as distinct, so TTL participates in the key.
func fullKey(h Header, recordType string, variantKey ...interface{}) string {
	parts := append([]interface{}{h.Label, h.TTL, h.ClassType, h.Origin, recordType}, variantKey...)
	return fmt.Sprintf("%#v", parts)
}

// ARecord is an IPv4 address record.
type ARecord struct {
	Common  Header
	Address string // dotted-quad, validated at construction time
}

func (r ARecord) Header() Header         { return r.Common }
func (r ARecord) Type() string           { return "A" }
func (r ARecord) ResolvedLabel() string  { return resolvedLabel(r.Common) }
func (r ARecord) Values() []string       { return []string{r.Address} }
func (r ARecord) OriginValues() []string { return []string{r.Address} }
func (r ARecord) FullKey() string        { return fullKey(r.Common, r.Type(), r.Address) }
func (r ARecord) String() string         { return formatRecord(r) }

// targetRecord is the shared shape of NS, CNAME and PTR: a single label
// target, re-resolved through join_origin for OriginValues.
type targetRecord struct {
	Common Header
	Target string
	Kind   string
}

func (r targetRecord) Header() Header        { return r.Common }
func (r targetRecord) Type() string          { return r.Kind }
func (r targetRecord) ResolvedLabel() string { return resolvedLabel(r.Common) }
func (r targetRecord) Values() []string      { return []string{r.Target} }
func (r targetRecord) OriginValues() []string {
	return []string{joinOrigin(r.Target, r.Common.Origin)}
}
func (r targetRecord) FullKey() string { return fullKey(r.Common, r.Kind, r.Target) }
func (r targetRecord) String() string  { return formatRecord(r) }

// ResolvedTarget exposes the join_origin-resolved target for NS/CNAME/PTR
// records, analogous to ResolvedLabel.
func (r targetRecord) ResolvedTarget() string {
	return joinOrigin(r.Target, r.Common.Origin)
}

// NSRecord is a name-server delegation record.
type NSRecord struct{ targetRecord }

// CNAMERecord is a canonical-name alias record.
type CNAMERecord struct{ targetRecord }

// PTRRecord is a reverse-lookup pointer record.
type PTRRecord struct{ targetRecord }

func NewNS(h Header, target string) NSRecord { return NSRecord{targetRecord{h, target, "NS"}} }
func NewCNAME(h Header, target string) CNAMERecord {
	return CNAMERecord{targetRecord{h, target, "CNAME"}}
}
func NewPTR(h Header, target string) PTRRecord { return PTRRecord{targetRecord{h, target, "PTR"}} }

// priorityTargetRecord is the shared shape of MX and AFSDB.
type priorityTargetRecord struct {
	Common   Header
	Priority uint16
	Target   string
	Kind     string
}

func (r priorityTargetRecord) Header() Header         { return r.Common }
func (r priorityTargetRecord) Type() string           { return r.Kind }
func (r priorityTargetRecord) ResolvedLabel() string  { return resolvedLabel(r.Common) }
func (r priorityTargetRecord) ResolvedTarget() string { return joinOrigin(r.Target, r.Common.Origin) }
func (r priorityTargetRecord) Values() []string {
	return []string{fmt.Sprintf("%d", r.Priority), r.Target}
}
func (r priorityTargetRecord) OriginValues() []string {
	return []string{fmt.Sprintf("%d", r.Priority), r.ResolvedTarget()}
}
func (r priorityTargetRecord) FullKey() string {
	return fullKey(r.Common, r.Kind, r.Priority, r.Target)
}
func (r priorityTargetRecord) String() string { return formatRecord(r) }

// MXRecord is a mail-exchange record.
type MXRecord struct{ priorityTargetRecord }

// AFSDBRecord is an AFS cell database record.
type AFSDBRecord struct{ priorityTargetRecord }

func NewMX(h Header, priority uint16, target string) MXRecord {
	return MXRecord{priorityTargetRecord{h, priority, target, "MX"}}
}
func NewAFSDB(h Header, priority uint16, target string) AFSDBRecord {
	return AFSDBRecord{priorityTargetRecord{h, priority, target, "AFSDB"}}
}

// SRVRecord is a service-location record.
type SRVRecord struct {
	Common   Header
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (r SRVRecord) Header() Header        { return r.Common }
func (r SRVRecord) Type() string          { return "SRV" }
func (r SRVRecord) ResolvedLabel() string { return resolvedLabel(r.Common) }
func (r SRVRecord) ResolvedTarget() string {
	return joinOrigin(r.Target, r.Common.Origin)
}
func (r SRVRecord) Values() []string {
	return []string{fmt.Sprintf("%d", r.Priority), fmt.Sprintf("%d", r.Weight), fmt.Sprintf("%d", r.Port), r.Target}
}
func (r SRVRecord) OriginValues() []string {
	return []string{fmt.Sprintf("%d", r.Priority), fmt.Sprintf("%d", r.Weight), fmt.Sprintf("%d", r.Port), r.ResolvedTarget()}
}
func (r SRVRecord) FullKey() string {
	return fullKey(r.Common, r.Type(), r.Priority, r.Weight, r.Port, r.Target)
}
func (r SRVRecord) String() string { return formatRecord(r) }

// TXTRecord is a free-text record; Labels preserves the ordered list of
// quoted segments exactly as the zone file wrote them.
type TXTRecord struct {
	Common Header
	Labels []string
}

func (r TXTRecord) Header() Header        { return r.Common }
func (r TXTRecord) Type() string          { return "TXT" }
func (r TXTRecord) ResolvedLabel() string { return resolvedLabel(r.Common) }
func (r TXTRecord) Values() []string      { return append([]string(nil), r.Labels...) }
func (r TXTRecord) OriginValues() []string {
	return r.Values()
}
func (r TXTRecord) FullKey() string {
	return fullKey(r.Common, r.Type(), strings.Join(r.Labels, "\x00"))
}
func (r TXTRecord) String() string { return formatRecord(r) }

// SOARecord is the zone's start-of-authority record.
type SOARecord struct {
	Common  Header
	Primary string
	Mail    string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (r SOARecord) Header() Header        { return r.Common }
func (r SOARecord) Type() string          { return "SOA" }
func (r SOARecord) ResolvedLabel() string { return resolvedLabel(r.Common) }
func (r SOARecord) ResolvedPrimary() string {
	return joinOrigin(r.Primary, r.Common.Origin)
}
func (r SOARecord) numbers() string {
	return fmt.Sprintf("(%d %d %d %d %d)", r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}
func (r SOARecord) Values() []string {
	return []string{r.Primary, r.Mail, r.numbers()}
}
func (r SOARecord) OriginValues() []string {
	return []string{r.ResolvedPrimary(), r.Mail, r.numbers()}
}
func (r SOARecord) FullKey() string {
	return fullKey(r.Common, r.Type(), r.Primary, r.Mail, r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}
func (r SOARecord) String() string { return formatRecord(r) }

// formatRecord renders the printable form:
// "<resolved_label> <ttl> <class> <type> <origin_values…>".
func formatRecord(r Record) string {
	h := r.Header()
	return fmt.Sprintf("%s %d %s %s %s",
		r.ResolvedLabel(), h.TTL, h.ClassType, r.Type(), strings.Join(r.OriginValues(), " "))
}
