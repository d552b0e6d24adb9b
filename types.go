package opendata

// OpenType describes the declared type of an attribute value. Implementations
// are immutable and safe to share between goroutines.
type OpenType interface {
	// TypeName is the protocol-level name of the type.
	TypeName() string
	// Description is a human-readable description.
	Description() string
	// IsValue reports whether v is a value of this type. nil is never a value.
	IsValue(v any) bool
	String() string

	openType()
}

// SimpleType is a primitive open type. Values of a SimpleType are plain Go
// values of a fixed kind (see the predefined types).
type SimpleType struct {
	name   string
	goKind string
	isVal  func(any) bool
}

// Predefined simple types.
var (
	String = &SimpleType{name: "string", goKind: "string", isVal: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}
	Boolean = &SimpleType{name: "boolean", goKind: "bool", isVal: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}
	Integer = &SimpleType{name: "integer", goKind: "int32", isVal: func(v any) bool {
		_, ok := v.(int32)
		return ok
	}}
	Long = &SimpleType{name: "long", goKind: "int64", isVal: func(v any) bool {
		_, ok := v.(int64)
		return ok
	}}
	Double = &SimpleType{name: "double", goKind: "float64", isVal: func(v any) bool {
		_, ok := v.(float64)
		return ok
	}}
)

var simpleTypes = map[string]*SimpleType{
	String.name:  String,
	Boolean.name: Boolean,
	Integer.name: Integer,
	Long.name:    Long,
	Double.name:  Double,
}

// LookupSimpleType returns the predefined simple type with the given name.
func LookupSimpleType(name string) (*SimpleType, bool) {
	st, ok := simpleTypes[name]
	return st, ok
}

func (t *SimpleType) TypeName() string    { return t.name }
func (t *SimpleType) Description() string { return t.name }
func (t *SimpleType) IsValue(v any) bool  { return v != nil && t.isVal(v) }
func (t *SimpleType) String() string      { return "simple(" + t.name + ")" }

// GoKind is the Go type values of t carry.
func (t *SimpleType) GoKind() string { return t.goKind }

func (*SimpleType) openType() {}

// Equal reports exact equality of two open types: simple types by name,
// composite types by name, description and items (recursively).
func Equal(a, b OpenType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	switch at := a.(type) {
	case *SimpleType:
		bt, ok := b.(*SimpleType)
		return ok && at.name == bt.name
	case *CompositeType:
		bt, ok := b.(*CompositeType)
		if !ok || at.name != bt.name || at.description != bt.description || len(at.items) != len(bt.items) {
			return false
		}
		for _, it := range at.items {
			other, ok := bt.index[it.name]
			if !ok || !Equal(it.typ, bt.items[other].typ) {
				return false
			}
		}
		return true
	}
	return false
}
