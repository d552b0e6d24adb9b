package monitorinfo

import (
	"github.com/reoring/opendata"
	"github.com/reoring/opendata/i18n"
	"github.com/reoring/opendata/stackframe"
)

// Validate checks that cd is a MonitorInfo record of either generation. The
// comparison is structural, so records decoded from the wire are accepted.
// Failures are opendata.Issues.
func Validate(cd opendata.CompositeData) error {
	_, err := MatchVariant(cd)
	return err
}

// MatchVariant reports which generation cd conforms to.
func MatchVariant(cd opendata.CompositeData) (Variant, error) {
	if opendata.IsNil(cd) {
		return Current, opendata.Issues{opendata.Root().Issue(opendata.CodeNilInput, i18n.T(opendata.CodeNilInput, nil))}
	}
	ct := cd.CompositeType()
	for _, v := range Variants {
		if opendata.TypeMatched(TypeOf(v), ct) {
			return v, nil
		}
	}

	// report the differences against the closer generation
	closest := opendata.MatchIssues(currentType(), ct)
	if legacy := opendata.MatchIssues(legacyType(), ct); len(legacy) < len(closest) {
		closest = legacy
	}
	iss := opendata.Issues{opendata.Root().Issue(opendata.CodeInvalidType,
		"unexpected composite type for MonitorInfo",
		"expected", []string{currentType().String(), legacyType().String()},
		"got", ct.String())}
	return Current, append(iss, closest...)
}

// ClassName returns the class name of the lock object.
func ClassName(cd opendata.CompositeData) string {
	s, _ := cd.Get(AttrClassName).(string)
	return s
}

// IdentityHashCode returns the identity hash code of the lock object.
func IdentityHashCode(cd opendata.CompositeData) int32 {
	n, _ := cd.Get(AttrIdentityHashCode).(int32)
	return n
}

// LockedStackDepth returns the depth at which the monitor was locked, or
// UnknownDepth.
func LockedStackDepth(cd opendata.CompositeData) int32 {
	n, _ := cd.Get(AttrLockedStackDepth).(int32)
	return n
}

// LockedStackFrame returns the frame at which the monitor was locked. An
// absent attribute and the no-value marker both yield (nil, nil).
func LockedStackFrame(cd opendata.CompositeData) (*stackframe.Frame, error) {
	nested, ok := cd.Get(AttrLockedStackFrame).(opendata.CompositeData)
	if !ok || opendata.IsNil(nested) {
		return nil, nil
	}
	f, err := stackframe.From(nested)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// From validates cd and rebuilds the MonitorInfo it describes.
func From(cd opendata.CompositeData) (MonitorInfo, error) {
	if err := Validate(cd); err != nil {
		return MonitorInfo{}, err
	}
	return decode(cd)
}

func decode(cd opendata.CompositeData) (MonitorInfo, error) {
	frame, err := LockedStackFrame(cd)
	if err != nil {
		return MonitorInfo{}, err
	}
	return New(ClassName(cd), IdentityHashCode(cd), LockedStackDepth(cd), frame)
}
