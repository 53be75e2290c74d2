package query

import "bsa/internal/zoneparse"

// RecordFilter is a small sum type for restricting a query by record
// type: the caller may ask for everything, for a set of type names, or
// for a set of variants (matched by the same type tag). AnyRecord is the
// zero value, so an unset RecordFilter field already means "accept all".
type RecordFilter struct {
	all   bool
	types map[string]bool
}

// AnyRecord matches every record, equivalent to passing record=None.
func AnyRecord() RecordFilter { return RecordFilter{all: true} }

// RecordTypes matches records whose Type() is one of names.
func RecordTypes(names ...string) RecordFilter {
	f := RecordFilter{types: make(map[string]bool, len(names))}
	for _, n := range names {
		f.types[n] = true
	}
	return f
}

// RecordVariants matches records sharing a type tag with any of the given
// sample records, tolerating the "variant tag" form of the filter alongside
// RecordTypes' "name" form.
func RecordVariants(records ...zoneparse.Record) RecordFilter {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Type())
	}
	return RecordTypes(names...)
}

func (f RecordFilter) matches(r zoneparse.Record) bool {
	if f.all || f.types == nil {
		return true
	}
	return f.types[r.Type()]
}

// ViewFilter is the analogous sum type for the view filter: accept all,
// or accept configs whose view name is in a fixed set. The root config
// (IsRoot()) always passes, representing "no view" in the source model.
type ViewFilter struct {
	all   bool
	names map[string]bool
}

// AnyView matches every config, equivalent to passing view=None.
func AnyView() ViewFilter { return ViewFilter{all: true} }

// ViewNames matches configs whose Name is one of names, plus the root
// config unconditionally.
func ViewNames(names ...string) ViewFilter {
	f := ViewFilter{names: make(map[string]bool, len(names))}
	for _, n := range names {
		f.names[n] = true
	}
	return f
}

func (f ViewFilter) matches(isRoot bool, name string) bool {
	if f.all || f.names == nil {
		return true
	}
	return isRoot || f.names[name]
}
