package zoneparse

import (
	"net"
	"strconv"

	"bsa/internal/bsaerr"
)

// defaultTTL and defaultClassType are applied when a record line omits the
// corresponding field.
const defaultTTL uint32 = 3600 * 24
const defaultClassType = "IN"

// recordLine is the positionally-disambiguated shape of one record line,
// produced by classifyLine: the as-written owner (empty means "inherit"),
// an optional TTL, an optional class, the record type keyword and its
// remaining rdata tokens.
type recordLine struct {
	label      string
	ttl        *uint32
	classType  string
	recordType string
	args       []string
}

// classifyLine implements positional disambiguation of the
// five accepted record-line shapes. It never consults record rdata, only
// the fixed set of record-type keywords and the two valid class tokens, so
// it can tell a TTL integer apart from a class token apart from the start
// of rdata.
func classifyLine(tokens []string) (recordLine, error) {
	if len(tokens) >= 2 && recordTypeNames[tokens[1]] {
		return recordLine{label: tokens[0], recordType: tokens[1], args: tokens[2:]}, nil
	}

	if len(tokens) >= 3 && recordTypeNames[tokens[2]] {
		if validClassTypes[tokens[1]] {
			return recordLine{label: tokens[0], classType: tokens[1], recordType: tokens[2], args: tokens[3:]}, nil
		}
		ttl, err := parseTTL(tokens[1])
		if err != nil {
			return recordLine{}, err
		}
		return recordLine{label: tokens[0], ttl: &ttl, recordType: tokens[2], args: tokens[3:]}, nil
	}

	if len(tokens) >= 4 && recordTypeNames[tokens[3]] {
		if validClassTypes[tokens[2]] {
			ttl, err := parseTTL(tokens[1])
			if err != nil {
				return recordLine{}, err
			}
			return recordLine{label: tokens[0], ttl: &ttl, classType: tokens[2], recordType: tokens[3], args: tokens[4:]}, nil
		}
		if validClassTypes[tokens[1]] {
			ttl, err := parseTTL(tokens[2])
			if err != nil {
				return recordLine{}, err
			}
			return recordLine{label: tokens[0], ttl: &ttl, classType: tokens[1], recordType: tokens[3], args: tokens[4:]}, nil
		}
	}

	return recordLine{}, bsaerr.Newf(bsaerr.ParseError, "", 0, "cannot classify record line: %v", tokens)
}

func parseTTL(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, bsaerr.Newf(bsaerr.ParseError, "", 0, "invalid TTL %q", s)
	}
	return uint32(v), nil
}

// recordBuilder carries the (previous_label, default_ttl) state that
// persists across record lines, $TTL pragmas and $INCLUDEs within a zone.
// Unlike origin, this state is NOT frame-scoped: an included file
// inherits and can mutate it, and the mutation is visible back in the
// includer once the include returns.
type recordBuilder struct {
	previousLabel string
	ttl           uint32
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{ttl: defaultTTL}
}

// build turns a classified record line plus the frame currently in effect
// (path, origin) into a concrete Record, applying owner inheritance and
// the default TTL/class substitution rules.
func (rb *recordBuilder) build(line recordLine, origin, path string, lineNum int) (Record, error) {
	label := line.label
	if label == "" {
		if rb.previousLabel == "" {
			return nil, bsaerr.Newf(bsaerr.InheritedOwnerMissing, path, lineNum, "blank owner with no previous label to inherit")
		}
		label = rb.previousLabel
	} else {
		rb.previousLabel = label
	}

	ttl := rb.ttl
	if line.ttl != nil {
		ttl = *line.ttl
	}

	classType := line.classType
	if classType == "" {
		classType = defaultClassType
	}

	h := Header{Label: label, TTL: ttl, ClassType: classType, Origin: origin, Path: path}

	return newRecord(h, line.recordType, line.args, path, lineNum)
}

func newRecord(h Header, recordType string, args []string, path string, lineNum int) (Record, error) {
	switch recordType {
	case "A":
		if len(args) != 1 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "A record requires exactly one address, got %v", args)
		}
		addr := net.ParseIP(args[0])
		if addr == nil || addr.To4() == nil {
			return nil, bsaerr.Newf(bsaerr.InvalidAddress, path, lineNum, "invalid IPv4 address: %q", args[0])
		}
		return ARecord{Common: h, Address: args[0]}, nil

	case "NS":
		if len(args) != 1 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "NS record requires exactly one target, got %v", args)
		}
		return NewNS(h, args[0]), nil

	case "CNAME":
		if len(args) != 1 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "CNAME record requires exactly one target, got %v", args)
		}
		return NewCNAME(h, args[0]), nil

	case "PTR":
		if len(args) != 1 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "PTR record requires exactly one target, got %v", args)
		}
		return NewPTR(h, args[0]), nil

	case "MX":
		if len(args) != 2 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "MX record requires priority and target, got %v", args)
		}
		priority, err := parseUint16(args[0])
		if err != nil {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "MX: invalid priority %q", args[0])
		}
		return NewMX(h, priority, args[1]), nil

	case "AFSDB":
		if len(args) != 2 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "AFSDB record requires priority and target, got %v", args)
		}
		priority, err := parseUint16(args[0])
		if err != nil {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "AFSDB: invalid priority %q", args[0])
		}
		return NewAFSDB(h, priority, args[1]), nil

	case "SRV":
		if len(args) != 4 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "SRV record requires priority, weight, port and target, got %v", args)
		}
		priority, err1 := parseUint16(args[0])
		weight, err2 := parseUint16(args[1])
		port, err3 := parseUint16(args[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "SRV: invalid priority/weight/port in %v", args)
		}
		return SRVRecord{Common: h, Priority: priority, Weight: weight, Port: port, Target: args[3]}, nil

	case "TXT":
		if len(args) == 0 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "TXT record requires at least one string")
		}
		return TXTRecord{Common: h, Labels: append([]string(nil), args...)}, nil

	case "SOA":
		if len(args) != 7 {
			return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "SOA record requires primary, mail and 5 numbers, got %v", args)
		}
		nums := make([]uint32, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseUint(args[2+i], 10, 32)
			if err != nil {
				return nil, bsaerr.Newf(bsaerr.InvalidRdata, path, lineNum, "SOA: invalid number %q", args[2+i])
			}
			nums[i] = uint32(v)
		}
		return SOARecord{
			Common:  h,
			Primary: args[0],
			Mail:    args[1],
			Serial:  nums[0],
			Refresh: nums[1],
			Retry:   nums[2],
			Expire:  nums[3],
			Minimum: nums[4],
		}, nil
	}

	return nil, bsaerr.Newf(bsaerr.UnknownRecordType, path, lineNum, "unknown record type: %q", recordType)
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
