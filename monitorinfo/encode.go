package monitorinfo

import (
	"github.com/reoring/opendata"
	"github.com/reoring/opendata/lockinfo"
	"github.com/reoring/opendata/stackframe"
)

var frameEncoders = map[Variant]func(stackframe.Frame) opendata.CompositeData{
	Current: stackframe.ToCompositeData,
	Legacy:  stackframe.ToLegacyCompositeData,
}

// ToCompositeData encodes mi as a record of the current type. The fields are
// read directly; the lock identity attributes are copied from the lockinfo
// encoding of the owning lock.
func ToCompositeData(mi MonitorInfo) opendata.CompositeData { return encode(Current, mi) }

// ToLegacyCompositeData encodes mi as a record of the legacy type, for
// consumers of the previous protocol generation.
func ToLegacyCompositeData(mi MonitorInfo) opendata.CompositeData { return encode(Legacy, mi) }

func encode(v Variant, mi MonitorInfo) opendata.CompositeData {
	li := lockinfo.ToCompositeData(mi.LockInfo)

	values := make([]any, len(attributes))
	for i, attr := range attributes {
		switch attr {
		case AttrLockedStackFrame:
			if mi.LockedStackFrame != nil {
				values[i] = frameEncoders[v](*mi.LockedStackFrame)
			}
		case AttrLockedStackDepth:
			values[i] = mi.LockedStackDepth
		default:
			values[i] = li.Get(attr)
		}
	}

	rec, err := opendata.NewRecord(TypeOf(v), attributes[:], values)
	if err != nil {
		// attributes and the registry disagree
		panic("monitorinfo.ToCompositeData: " + err.Error())
	}
	return rec
}
