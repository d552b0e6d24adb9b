package monitorinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/monitorinfo"
)

func TestWire_RoundTripValidatesStructurally(t *testing.T) {
	for _, mi := range []monitorinfo.MonitorInfo{unknownDepthRecord(t), framedRecord(t)} {
		data, err := opendata.MarshalCompositeData(monitorinfo.ToCompositeData(mi))
		require.NoError(t, err)

		cd, err := opendata.UnmarshalCompositeData(data)
		require.NoError(t, err)
		assert.NotSame(t, monitorinfo.CompositeType(), cd.CompositeType())

		got, err := monitorinfo.From(cd)
		require.NoError(t, err)
		assert.Equal(t, mi, got)
	}
}

func TestWire_LegacyProducer(t *testing.T) {
	// a record as emitted by a producer of the previous generation
	data := []byte(`{
	  "type": {"kind":"composite","name":"MonitorInfo","description":"Legacy MonitorInfo","items":[
	    {"name":"className","type":{"kind":"simple","name":"string"}},
	    {"name":"identityHashCode","type":{"kind":"simple","name":"integer"}},
	    {"name":"lockedStackFrame","type":{"kind":"composite","name":"StackFrame","description":"Legacy StackFrame","items":[
	      {"name":"className","type":{"kind":"simple","name":"string"}},
	      {"name":"methodName","type":{"kind":"simple","name":"string"}},
	      {"name":"fileName","type":{"kind":"simple","name":"string"}},
	      {"name":"lineNumber","type":{"kind":"simple","name":"integer"}},
	      {"name":"nativeMethod","type":{"kind":"simple","name":"boolean"}}]}},
	    {"name":"lockedStackDepth","type":{"kind":"simple","name":"integer"}}]},
	  "values": {
	    "className":"example.Lock","identityHashCode":99,"lockedStackDepth":0,
	    "lockedStackFrame":{"className":"example.Worker","methodName":"run","fileName":"Worker.java","lineNumber":42,"nativeMethod":false}
	  }
	}`)

	cd, err := opendata.UnmarshalCompositeData(data)
	require.NoError(t, err)

	v, err := monitorinfo.MatchVariant(cd)
	require.NoError(t, err)
	assert.Equal(t, monitorinfo.Legacy, v)

	mi, err := monitorinfo.From(cd)
	require.NoError(t, err)
	assert.Equal(t, "example.Lock", mi.ClassName)
	assert.Equal(t, int32(99), mi.IdentityHashCode)
	require.NotNil(t, mi.LockedStackFrame)
	assert.Equal(t, "run", mi.LockedStackFrame.MethodName)
	assert.Equal(t, int32(42), mi.LockedStackFrame.LineNumber)
}
