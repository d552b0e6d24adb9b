package monitorinfo

import (
	"fmt"
	"sync"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/lockinfo"
	"github.com/reoring/opendata/stackframe"
)

// Variant selects a generation of the MonitorInfo type.
type Variant int

const (
	Current Variant = iota
	Legacy
)

// Variants lists every known generation, newest first.
var Variants = [...]Variant{Current, Legacy}

func (v Variant) String() string {
	switch v {
	case Current:
		return "current"
	case Legacy:
		return "legacy"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// overrides holds the attribute types that differ from the current type.
var overrides = map[Variant]map[string]func() *opendata.CompositeType{
	Legacy: {AttrLockedStackFrame: stackframe.LegacyCompositeType},
}

var names = map[Variant][2]string{
	Current: {"MonitorInfo", "MonitorInfo"},
	Legacy:  {"MonitorInfo", "Legacy MonitorInfo"},
}

// derivedType maps an attribute onto the field of MonitorInfo that backs it.
func derivedType(attr string) (opendata.OpenType, error) {
	switch attr {
	case AttrClassName, AttrIdentityHashCode:
		if t := lockinfo.CompositeType().Type(attr); t != nil {
			return t, nil
		}
		return nil, fmt.Errorf("lock identity type has no attribute %q", attr)
	case AttrLockedStackFrame:
		return stackframe.CompositeType(), nil
	case AttrLockedStackDepth:
		return opendata.Integer, nil
	}
	return nil, fmt.Errorf("no MonitorInfo field backs attribute %q", attr)
}

func buildCurrentType() (*opendata.CompositeType, error) {
	types := make([]opendata.OpenType, len(attributes))
	for i, attr := range attributes {
		t, err := derivedType(attr)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return newType(Current, types)
}

func buildLegacyType(cur *opendata.CompositeType) (*opendata.CompositeType, error) {
	types := make([]opendata.OpenType, len(attributes))
	for i, attr := range attributes {
		if o, ok := overrides[Legacy][attr]; ok {
			types[i] = o()
			continue
		}
		types[i] = cur.Type(attr)
	}
	return newType(Legacy, types)
}

func newType(v Variant, types []opendata.OpenType) (*opendata.CompositeType, error) {
	descs := make([]string, len(attributes))
	for i, attr := range attributes {
		descs[i] = descriptions[attr]
	}
	n := names[v]
	return opendata.NewCompositeType(n[0], n[1], attributes[:], descs, types)
}

var (
	currentType = sync.OnceValue(func() *opendata.CompositeType {
		ct, err := buildCurrentType()
		if err != nil {
			panic("monitorinfo.CompositeType: " + err.Error())
		}
		return ct
	})
	legacyType = sync.OnceValue(func() *opendata.CompositeType {
		ct, err := buildLegacyType(currentType())
		if err != nil {
			panic("monitorinfo.LegacyCompositeType: " + err.Error())
		}
		return ct
	})
)

// CompositeType returns the current MonitorInfo type. Every call returns the
// same instance.
func CompositeType() *opendata.CompositeType { return currentType() }

// LegacyCompositeType returns the MonitorInfo type of the previous protocol
// generation. Every call returns the same instance.
func LegacyCompositeType() *opendata.CompositeType { return legacyType() }

// TypeOf returns the type of the given generation.
func TypeOf(v Variant) *opendata.CompositeType {
	if v == Legacy {
		return legacyType()
	}
	return currentType()
}
