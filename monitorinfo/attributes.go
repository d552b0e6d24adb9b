package monitorinfo

// Attribute names of the MonitorInfo record. The lock identity attributes are
// flattened from lockinfo and keep its names.
const (
	AttrClassName        = "className"
	AttrIdentityHashCode = "identityHashCode"
	AttrLockedStackFrame = "lockedStackFrame"
	AttrLockedStackDepth = "lockedStackDepth"
)

// attributes is the only list of MonitorInfo attributes. The registry, the
// encoder and the decoder all iterate it.
var attributes = [...]string{
	AttrClassName,
	AttrIdentityHashCode,
	AttrLockedStackFrame,
	AttrLockedStackDepth,
}

var descriptions = map[string]string{
	AttrClassName:        "class name of the lock object",
	AttrIdentityHashCode: "identity hash code of the lock object",
	AttrLockedStackFrame: "stack frame where the monitor was locked",
	AttrLockedStackDepth: "depth in the stack trace where the monitor was locked",
}

// Attributes returns the attribute names in declaration order.
func Attributes() []string { return append([]string(nil), attributes[:]...) }
