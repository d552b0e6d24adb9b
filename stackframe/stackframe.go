// Package stackframe maps a single stack location to and from its composite
// record form. Two shapes exist: the current one, and the legacy one of the
// previous protocol generation, which lacks the class loader and module
// attributes.
package stackframe

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/i18n"
)

// Attribute names of the stack frame record.
const (
	ClassLoaderName = "classLoaderName"
	ModuleName      = "moduleName"
	ModuleVersion   = "moduleVersion"
	ClassName       = "className"
	MethodName      = "methodName"
	FileName        = "fileName"
	LineNumber      = "lineNumber"
	NativeMethod    = "nativeMethod"
)

// NativeLine is the line number reported for native methods.
const NativeLine int32 = -2

var (
	attributes = [...]string{
		ClassLoaderName, ModuleName, ModuleVersion,
		ClassName, MethodName, FileName, LineNumber, NativeMethod,
	}
	legacyAttributes = [...]string{ClassName, MethodName, FileName, LineNumber, NativeMethod}

	attributeTypes = map[string]opendata.OpenType{
		ClassLoaderName: opendata.String,
		ModuleName:      opendata.String,
		ModuleVersion:   opendata.String,
		ClassName:       opendata.String,
		MethodName:      opendata.String,
		FileName:        opendata.String,
		LineNumber:      opendata.Integer,
		NativeMethod:    opendata.Boolean,
	}
)

// Frame is one stack location.
type Frame struct {
	ClassLoaderName string `json:"classLoaderName,omitempty"`
	ModuleName      string `json:"moduleName,omitempty"`
	ModuleVersion   string `json:"moduleVersion,omitempty"`
	ClassName       string `json:"className"`
	MethodName      string `json:"methodName"`
	FileName        string `json:"fileName,omitempty"`
	LineNumber      int32  `json:"lineNumber"`
}

// IsNativeMethod reports whether the frame is in a native method.
func (f Frame) IsNativeMethod() bool { return f.LineNumber == NativeLine }

func (f Frame) String() string {
	b := &strings.Builder{}
	if f.ClassLoaderName != "" {
		b.WriteString(f.ClassLoaderName)
		b.WriteByte('/')
	}
	if f.ModuleName != "" {
		b.WriteString(f.ModuleName)
		if f.ModuleVersion != "" {
			b.WriteByte('@')
			b.WriteString(f.ModuleVersion)
		}
		b.WriteByte('/')
	}
	b.WriteString(f.ClassName)
	b.WriteByte('.')
	b.WriteString(f.MethodName)
	switch {
	case f.IsNativeMethod():
		b.WriteString("(Native Method)")
	case f.FileName != "" && f.LineNumber >= 0:
		b.WriteString("(" + f.FileName + ":" + strconv.Itoa(int(f.LineNumber)) + ")")
	case f.FileName != "":
		b.WriteString("(" + f.FileName + ")")
	default:
		b.WriteString("(Unknown Source)")
	}
	return b.String()
}

func build(name, description string, names []string) (*opendata.CompositeType, error) {
	types := make([]opendata.OpenType, len(names))
	for i, n := range names {
		types[i] = attributeTypes[n]
	}
	return opendata.NewCompositeType(name, description, names, names, types)
}

var (
	compositeType = sync.OnceValue(func() *opendata.CompositeType {
		ct, err := build("StackFrame", "StackFrame", attributes[:])
		if err != nil {
			panic("stackframe.CompositeType: " + err.Error())
		}
		return ct
	})
	legacyCompositeType = sync.OnceValue(func() *opendata.CompositeType {
		ct, err := build("StackFrame", "Legacy StackFrame", legacyAttributes[:])
		if err != nil {
			panic("stackframe.LegacyCompositeType: " + err.Error())
		}
		return ct
	})
)

// CompositeType returns the current stack frame type.
func CompositeType() *opendata.CompositeType { return compositeType() }

// LegacyCompositeType returns the stack frame type of the previous protocol
// generation.
func LegacyCompositeType() *opendata.CompositeType { return legacyCompositeType() }

func (f Frame) value(name string) any {
	switch name {
	case ClassLoaderName:
		return f.ClassLoaderName
	case ModuleName:
		return f.ModuleName
	case ModuleVersion:
		return f.ModuleVersion
	case ClassName:
		return f.ClassName
	case MethodName:
		return f.MethodName
	case FileName:
		return f.FileName
	case LineNumber:
		return f.LineNumber
	case NativeMethod:
		return f.IsNativeMethod()
	}
	return nil
}

func encode(ct *opendata.CompositeType, names []string, f Frame) opendata.CompositeData {
	values := make([]any, len(names))
	for i, n := range names {
		values[i] = f.value(n)
	}
	rec, err := opendata.NewRecord(ct, names, values)
	if err != nil {
		panic("stackframe: " + err.Error())
	}
	return rec
}

// ToCompositeData encodes f in the current shape.
func ToCompositeData(f Frame) opendata.CompositeData {
	return encode(compositeType(), attributes[:], f)
}

// ToLegacyCompositeData encodes f in the legacy shape. The class loader and
// module attributes are dropped.
func ToLegacyCompositeData(f Frame) opendata.CompositeData {
	return encode(legacyCompositeType(), legacyAttributes[:], f)
}

// Validate checks that cd has either the current or the legacy shape.
func Validate(cd opendata.CompositeData) error {
	if opendata.IsNil(cd) {
		return opendata.Issues{opendata.Root().Issue(opendata.CodeNilInput, i18n.T(opendata.CodeNilInput, nil))}
	}
	ct := cd.CompositeType()
	if opendata.TypeMatched(compositeType(), ct) || opendata.TypeMatched(legacyCompositeType(), ct) {
		return nil
	}
	return fmt.Errorf("unexpected composite type for StackFrame: %w", opendata.MatchIssues(compositeType(), ct))
}

// From decodes a record in either shape. Attributes missing from the legacy
// shape decode as empty strings. The nativeMethod attribute is derived from
// the line number, so a record where the two disagree is rejected.
func From(cd opendata.CompositeData) (Frame, error) {
	if err := Validate(cd); err != nil {
		return Frame{}, err
	}
	str := func(k string) string {
		s, _ := cd.Get(k).(string)
		return s
	}
	line, _ := cd.Get(LineNumber).(int32)
	if native, ok := cd.Get(NativeMethod).(bool); ok && native != (line == NativeLine) {
		return Frame{}, opendata.Issues{opendata.Root().Field(NativeMethod).Issue(opendata.CodeInvalidValue,
			fmt.Sprintf("nativeMethod=%t contradicts lineNumber %d", native, line),
			"nativeMethod", native, "lineNumber", line)}
	}
	return Frame{
		ClassLoaderName: str(ClassLoaderName),
		ModuleName:      str(ModuleName),
		ModuleVersion:   str(ModuleVersion),
		ClassName:       str(ClassName),
		MethodName:      str(MethodName),
		FileName:        str(FileName),
		LineNumber:      line,
	}, nil
}
