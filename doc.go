// Package opendata provides:
//
// - Self-describing open types (SimpleType, CompositeType) and immutable
// composite records (CompositeData, Record)
// - Structural type matching for values that arrive from another process
// - A stable error model via Issues (JSON Pointer, code, message)
// - A wire JSON form that carries the type descriptor with the values, plus
// YAML and JSON Schema projections of types
//
// Design policy:
// - Keep only the protocol layer in the root package; record mappers live in
// lockinfo/, stackframe/ and monitorinfo/, the CLI under cmd/mxdata.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	cd := monitorinfo.ToCompositeData(mi)
//	wire, err := opendata.MarshalCompositeData(cd)
//
//	in, err := opendata.UnmarshalCompositeData(wire)
//	if err := monitorinfo.Validate(in); err != nil { ... }
//	frame, err := monitorinfo.LockedStackFrame(in)
package opendata
