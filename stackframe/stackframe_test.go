package stackframe_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/stackframe"
)

func sample() stackframe.Frame {
	return stackframe.Frame{
		ClassLoaderName: "app",
		ModuleName:      "worker",
		ModuleVersion:   "1.2",
		ClassName:       "example.Worker",
		MethodName:      "run",
		FileName:        "Worker.java",
		LineNumber:      42,
	}
}

func TestFrame_CurrentRoundTrip(t *testing.T) {
	f := sample()
	cd := stackframe.ToCompositeData(f)
	assert.Same(t, stackframe.CompositeType(), cd.CompositeType())
	assert.Equal(t, false, cd.Get(stackframe.NativeMethod))

	got, err := stackframe.From(cd)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestFrame_LegacyDropsModuleAttributes(t *testing.T) {
	f := sample()
	cd := stackframe.ToLegacyCompositeData(f)
	assert.Same(t, stackframe.LegacyCompositeType(), cd.CompositeType())
	assert.False(t, cd.ContainsKey(stackframe.ModuleName))

	got, err := stackframe.From(cd)
	require.NoError(t, err)
	assert.Equal(t, stackframe.Frame{
		ClassName:  f.ClassName,
		MethodName: f.MethodName,
		FileName:   f.FileName,
		LineNumber: f.LineNumber,
	}, got)
}

func TestFrame_TypesShareAttributeTypes(t *testing.T) {
	cur, legacy := stackframe.CompositeType(), stackframe.LegacyCompositeType()
	for _, k := range legacy.Keys() {
		assert.True(t, opendata.Equal(cur.Type(k), legacy.Type(k)), k)
	}
	assert.False(t, opendata.TypeMatched(cur, legacy))
}

func TestFrame_Validate_RejectsForeign(t *testing.T) {
	ct, err := opendata.NewCompositeType("StackFrame", "x",
		[]string{stackframe.MethodName}, []string{"m"}, []opendata.OpenType{opendata.String})
	require.NoError(t, err)
	rec, err := opendata.NewRecord(ct, []string{stackframe.MethodName}, []any{"run"})
	require.NoError(t, err)

	err = stackframe.Validate(rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, opendata.ErrInvalidInput))
	assert.Error(t, stackframe.Validate(nil))
}

func TestFrame_String(t *testing.T) {
	assert.Equal(t, "app/worker@1.2/example.Worker.run(Worker.java:42)", sample().String())
	native := stackframe.Frame{ClassName: "C", MethodName: "m", LineNumber: stackframe.NativeLine}
	assert.True(t, native.IsNativeMethod())
	assert.Equal(t, "C.m(Native Method)", native.String())
	assert.Equal(t, "C.m(Unknown Source)", stackframe.Frame{ClassName: "C", MethodName: "m", LineNumber: -1}.String())
}

func TestFrame_From_NativeMethodMustMatchLine(t *testing.T) {
	ct := stackframe.LegacyCompositeType()
	names := ct.ItemNames()
	record := func(line int32, native any) opendata.CompositeData {
		values := map[string]any{
			stackframe.ClassName:    "C",
			stackframe.MethodName:   "m",
			stackframe.FileName:     "C.java",
			stackframe.LineNumber:   line,
			stackframe.NativeMethod: native,
		}
		vals := make([]any, len(names))
		for i, n := range names {
			vals[i] = values[n]
		}
		rec, err := opendata.NewRecord(ct, names, vals)
		require.NoError(t, err)
		return rec
	}

	for name, cd := range map[string]opendata.CompositeData{
		"native flag on a source line": record(10, true),
		"native line without the flag":  record(stackframe.NativeLine, false),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := stackframe.From(cd)
			iss, ok := opendata.AsIssues(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, "/nativeMethod", iss[0].Path)
			assert.Equal(t, opendata.CodeInvalidValue, iss[0].Code)
		})
	}

	f, err := stackframe.From(record(stackframe.NativeLine, true))
	require.NoError(t, err)
	assert.True(t, f.IsNativeMethod())

	f, err = stackframe.From(record(10, nil))
	require.NoError(t, err)
	assert.Equal(t, int32(10), f.LineNumber)
}
