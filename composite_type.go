package opendata

import (
	"fmt"
	"sort"
	"strings"
)

type item struct {
	name        string
	description string
	typ         OpenType
}

// CompositeType is the schema descriptor of a composite record: a named,
// ordered list of typed attributes. It is immutable once built.
type CompositeType struct {
	name        string
	description string
	items       []item
	index       map[string]int
	keys        []string
}

// NewCompositeType validates and builds a composite type. The three slices are
// positional: itemNames[i] is described by itemDescriptions[i] and typed by
// itemTypes[i].
func NewCompositeType(name, description string, itemNames, itemDescriptions []string, itemTypes []OpenType) (*CompositeType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("opendata: composite type name must not be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("opendata: composite type %q: description must not be empty", name)
	}
	if len(itemNames) == 0 {
		return nil, fmt.Errorf("opendata: composite type %q: no items", name)
	}
	if len(itemNames) != len(itemDescriptions) || len(itemNames) != len(itemTypes) {
		return nil, fmt.Errorf("opendata: composite type %q: %d names, %d descriptions, %d types",
			name, len(itemNames), len(itemDescriptions), len(itemTypes))
	}
	ct := &CompositeType{
		name:        name,
		description: description,
		items:       make([]item, len(itemNames)),
		index:       make(map[string]int, len(itemNames)),
		keys:        make([]string, len(itemNames)),
	}
	for i, n := range itemNames {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("opendata: composite type %q: item %d has an empty name", name, i)
		}
		if _, dup := ct.index[n]; dup {
			return nil, fmt.Errorf("opendata: composite type %q: duplicate item %q", name, n)
		}
		if itemTypes[i] == nil {
			return nil, fmt.Errorf("opendata: composite type %q: item %q has a nil type", name, n)
		}
		desc := itemDescriptions[i]
		if strings.TrimSpace(desc) == "" {
			desc = n
		}
		ct.items[i] = item{name: n, description: desc, typ: itemTypes[i]}
		ct.index[n] = i
		ct.keys[i] = n
	}
	sort.Strings(ct.keys)
	return ct, nil
}

func (t *CompositeType) TypeName() string    { return t.name }
func (t *CompositeType) Description() string { return t.description }
func (*CompositeType) openType()             {}

func (t *CompositeType) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "composite(%s){", t.name)
	for i, it := range t.items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %s", it.name, it.typ)
	}
	b.WriteString("}")
	return b.String()
}

// ItemNames returns attribute names in declaration order.
func (t *CompositeType) ItemNames() []string {
	out := make([]string, len(t.items))
	for i, it := range t.items {
		out[i] = it.name
	}
	return out
}

// Keys returns attribute names sorted ascending.
func (t *CompositeType) Keys() []string { return append([]string(nil), t.keys...) }

// Len is the number of attributes.
func (t *CompositeType) Len() int { return len(t.items) }

func (t *CompositeType) ContainsKey(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Type returns the declared type of an attribute, or nil if it is not declared.
func (t *CompositeType) Type(name string) OpenType {
	if i, ok := t.index[name]; ok {
		return t.items[i].typ
	}
	return nil
}

// ItemDescription returns the description of an attribute, or "" if it is not declared.
func (t *CompositeType) ItemDescription(name string) string {
	if i, ok := t.index[name]; ok {
		return t.items[i].description
	}
	return ""
}

// IsValue reports whether v is CompositeData whose type carries the same type
// name and declares exactly the attributes of t, each with an assignable type.
func (t *CompositeType) IsValue(v any) bool {
	cd, ok := v.(CompositeData)
	if !ok || cd == nil {
		return false
	}
	return t.isAssignableFrom(cd.CompositeType())
}

func (t *CompositeType) isAssignableFrom(other *CompositeType) bool {
	if other == nil {
		return false
	}
	if t == other {
		return true
	}
	if t.name != other.name || len(t.items) != len(other.items) {
		return false
	}
	for _, it := range t.items {
		ot := other.Type(it.name)
		if ot == nil || !assignable(it.typ, ot) {
			return false
		}
	}
	return true
}

func assignable(to, from OpenType) bool {
	if tc, ok := to.(*CompositeType); ok {
		fc, ok := from.(*CompositeType)
		return ok && tc.isAssignableFrom(fc)
	}
	return Equal(to, from)
}
