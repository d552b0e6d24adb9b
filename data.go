package opendata

import "github.com/reoring/opendata/i18n"

// CompositeData is a self-describing record: a mapping from attribute name to
// value, tagged with the CompositeType it was built against. A nil value is the
// explicit "no value" marker.
type CompositeData interface {
	CompositeType() *CompositeType
	// Get returns the value of an attribute, or nil if the attribute holds the
	// no-value marker or is not declared.
	Get(key string) any
	ContainsKey(key string) bool
	// Values returns the values ordered by CompositeType().Keys().
	Values() []any
}

// Record is the immutable CompositeData implementation.
type Record struct {
	typ    *CompositeType
	values []any // indexed like typ.items
}

// NewRecord builds a record from positional names and values. The names must
// be exactly the attribute names of ct (in any order) and every non-nil value
// must be a value of its declared type.
func NewRecord(ct *CompositeType, names []string, values []any) (*Record, error) {
	if ct == nil {
		return nil, singleIssue(CodeNilInput, i18n.T(CodeNilInput, nil))
	}
	if len(names) != len(values) {
		return nil, singleIssue(CodeInvalidValue, "names and values differ in length")
	}
	r := &Record{typ: ct, values: make([]any, len(ct.items))}
	seen := make([]bool, len(ct.items))
	var iss Issues
	for i, n := range names {
		p := Root().Field(n)
		idx, ok := ct.index[n]
		if !ok {
			iss = AppendIssues(iss, p.Issue(CodeUnknownKey, i18n.T(CodeUnknownKey, nil)))
			continue
		}
		if seen[idx] {
			iss = AppendIssues(iss, p.Issue(CodeDuplicateKey, i18n.T(CodeDuplicateKey, nil)))
			continue
		}
		seen[idx] = true
		v := values[i]
		if v != nil && !ct.items[idx].typ.IsValue(v) {
			iss = AppendIssues(iss, p.Issue(CodeInvalidType,
				i18n.T(CodeInvalidType, map[string]string{"expected": ct.items[idx].typ.TypeName()}),
				"expected", ct.items[idx].typ.TypeName()))
			continue
		}
		r.values[idx] = v
	}
	for i, ok := range seen {
		if !ok {
			iss = AppendIssues(iss, Root().Field(ct.items[i].name).Issue(CodeRequired, i18n.T(CodeRequired, nil)))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}

// NewRecordFromMap builds a record from a name -> value map.
func NewRecordFromMap(ct *CompositeType, m map[string]any) (*Record, error) {
	names := make([]string, 0, len(m))
	values := make([]any, 0, len(m))
	for k, v := range m {
		names = append(names, k)
		values = append(values, v)
	}
	return NewRecord(ct, names, values)
}

func (r *Record) CompositeType() *CompositeType {
	if r == nil {
		return nil
	}
	return r.typ
}

func (r *Record) Get(key string) any {
	if r == nil {
		return nil
	}
	if i, ok := r.typ.index[key]; ok {
		return r.values[i]
	}
	return nil
}

func (r *Record) ContainsKey(key string) bool {
	return r != nil && r.typ.ContainsKey(key)
}

func (r *Record) Values() []any {
	if r == nil {
		return nil
	}
	out := make([]any, len(r.typ.keys))
	for i, k := range r.typ.keys {
		out[i] = r.values[r.typ.index[k]]
	}
	return out
}

// IsNil reports whether cd is absent: a nil interface or a typed nil record.
func IsNil(cd CompositeData) bool {
	if cd == nil {
		return true
	}
	if r, ok := cd.(*Record); ok && r == nil {
		return true
	}
	return cd.CompositeType() == nil
}
