// Package monitorinfo exposes the record of a monitor held by a thread through
// self-describing composite records.
//
// Two generations of the record type coexist. The current type nests the
// current stack frame shape; the legacy type nests the stack frame shape of
// the previous protocol generation. ToCompositeData always produces the
// current generation, while Validate and the getters accept both, so that
// consumers and producers built against either generation interoperate.
//
// Callers must Validate a record received from elsewhere before using the
// getters; From does both.
package monitorinfo

import (
	"fmt"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/lockinfo"
	"github.com/reoring/opendata/stackframe"
)

// UnknownDepth is the stack depth of a monitor locked from native code or
// otherwise not attributable to a stack frame.
const UnknownDepth int32 = -1

// MonitorInfo describes a monitor held by a thread: the lock object, and the
// stack frame and depth at which it was locked.
type MonitorInfo struct {
	lockinfo.LockInfo
	LockedStackDepth int32
	LockedStackFrame *stackframe.Frame
}

// New builds a MonitorInfo. A frame requires a depth >= 0, and a nil frame
// requires a negative depth.
func New(className string, identityHashCode, depth int32, frame *stackframe.Frame) (MonitorInfo, error) {
	at := opendata.Root().Field(AttrLockedStackDepth)
	switch {
	case frame == nil && depth >= 0:
		return MonitorInfo{}, opendata.Issues{at.Issue(opendata.CodeInvalidValue,
			fmt.Sprintf("depth %d without a stack frame", depth), "depth", depth)}
	case frame != nil && depth < 0:
		return MonitorInfo{}, opendata.Issues{at.Issue(opendata.CodeInvalidValue,
			fmt.Sprintf("stack frame %s with depth %d", frame, depth), "depth", depth)}
	}
	return MonitorInfo{
		LockInfo:         lockinfo.LockInfo{ClassName: className, IdentityHashCode: identityHashCode},
		LockedStackDepth: depth,
		LockedStackFrame: frame,
	}, nil
}

func (mi MonitorInfo) String() string {
	if mi.LockedStackFrame == nil {
		return mi.LockInfo.String()
	}
	return fmt.Sprintf("%s locked at %s (depth %d)", mi.LockInfo, mi.LockedStackFrame, mi.LockedStackDepth)
}
