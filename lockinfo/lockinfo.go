// Package lockinfo maps the identity of a lock object to and from its
// composite record form.
package lockinfo

import (
	"fmt"
	"sync"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/i18n"
)

// Attribute names of the lock identity record.
const (
	ClassName        = "className"
	IdentityHashCode = "identityHashCode"
)

var attributes = [...]string{ClassName, IdentityHashCode}

// LockInfo identifies a lock object by its class name and identity hash code.
type LockInfo struct {
	ClassName        string
	IdentityHashCode int32
}

func (li LockInfo) String() string { return fmt.Sprintf("%s@%x", li.ClassName, uint32(li.IdentityHashCode)) }

var compositeType = sync.OnceValue(func() *opendata.CompositeType {
	ct, err := opendata.NewCompositeType("LockInfo", "LockInfo",
		attributes[:],
		[]string{"class name of the lock object", "identity hash code of the lock object"},
		[]opendata.OpenType{opendata.String, opendata.Integer})
	if err != nil {
		panic("lockinfo.CompositeType: " + err.Error())
	}
	return ct
})

// CompositeType returns the process-wide LockInfo type.
func CompositeType() *opendata.CompositeType { return compositeType() }

// ToCompositeData encodes li.
func ToCompositeData(li LockInfo) opendata.CompositeData {
	rec, err := opendata.NewRecord(compositeType(), attributes[:], []any{li.ClassName, li.IdentityHashCode})
	if err != nil {
		panic("lockinfo.ToCompositeData: " + err.Error())
	}
	return rec
}

// Validate checks that cd has the LockInfo shape.
func Validate(cd opendata.CompositeData) error {
	if opendata.IsNil(cd) {
		return opendata.Issues{opendata.Root().Issue(opendata.CodeNilInput, i18n.T(opendata.CodeNilInput, nil))}
	}
	if iss := opendata.MatchIssues(compositeType(), cd.CompositeType()); len(iss) > 0 {
		return fmt.Errorf("unexpected composite type for LockInfo: %w", iss)
	}
	return nil
}

// From decodes a validated LockInfo record.
func From(cd opendata.CompositeData) (LockInfo, error) {
	if err := Validate(cd); err != nil {
		return LockInfo{}, err
	}
	name, _ := cd.Get(ClassName).(string)
	hash, _ := cd.Get(IdentityHashCode).(int32)
	return LockInfo{ClassName: name, IdentityHashCode: hash}, nil
}
