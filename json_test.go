package opendata_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reoring/opendata"
)

func TestWire_RoundTrip(t *testing.T) {
	ct := point(t, "Point")
	rec, err := opendata.NewRecord(ct, []string{"x", "y", "label"}, []any{int32(-3), int64(1) << 40, "p"})
	require.NoError(t, err)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	cd, err := opendata.UnmarshalCompositeData(data)
	require.NoError(t, err)
	assert.True(t, opendata.Equal(ct, cd.CompositeType()))
	assert.Equal(t, rec.Values(), cd.Values())
}

func TestWire_TypeRoundTrip(t *testing.T) {
	ct := point(t, "Point")
	data, err := json.Marshal(ct)
	require.NoError(t, err)
	got, err := opendata.UnmarshalCompositeType(data)
	require.NoError(t, err)
	assert.True(t, opendata.Equal(ct, got))
}

func TestWire_Null(t *testing.T) {
	cd, err := opendata.UnmarshalCompositeData([]byte(" null "))
	require.NoError(t, err)
	assert.Nil(t, cd)

	data, err := opendata.MarshalCompositeData(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestWire_Rejects(t *testing.T) {
	typ := `{"kind":"composite","name":"P","description":"p","items":[{"name":"x","type":{"kind":"simple","name":"integer"}}]}`
	cases := map[string]struct {
		data string
		code string
	}{
		"garbage":        {`{`, opendata.CodeParseError},
		"no type":        {`{"values":{}}`, opendata.CodeRequired},
		"unknown kind":   {`{"type":{"kind":"tabular","name":"T"},"values":{}}`, opendata.CodeInvalidValue},
		"unknown simple": {`{"type":{"kind":"composite","name":"P","description":"p","items":[{"name":"x","type":{"kind":"simple","name":"char"}}]},"values":{"x":1}}`, opendata.CodeInvalidValue},
		"simple root":    {`{"type":{"kind":"simple","name":"string"},"values":{}}`, opendata.CodeInvalidType},
		"overflow":       {`{"type":` + typ + `,"values":{"x":4294967296}}`, opendata.CodeInvalidValue},
		"fraction":       {`{"type":` + typ + `,"values":{"x":1.5}}`, opendata.CodeInvalidType},
		"string for int": {`{"type":` + typ + `,"values":{"x":"1"}}`, opendata.CodeInvalidType},
		"missing value":  {`{"type":` + typ + `,"values":{}}`, opendata.CodeRequired},
		"extra value":    {`{"type":` + typ + `,"values":{"x":1,"y":2}}`, opendata.CodeUnknownKey},
		"duplicate item": {`{"type":{"kind":"composite","name":"P","description":"p","items":[{"name":"x","type":{"kind":"simple","name":"integer"}},{"name":"x","type":{"kind":"simple","name":"integer"}}]},"values":{}}`, opendata.CodeInvalidValue},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := opendata.UnmarshalCompositeData([]byte(tc.data))
			iss, ok := opendata.AsIssues(err)
			require.True(t, ok, "got %v", err)
			assert.True(t, iss.HasCode(tc.code), "want %s in %v", tc.code, iss)
		})
	}
}

func TestJSONSchema_Projection(t *testing.T) {
	pt := point(t, "Point")
	seg, err := opendata.NewCompositeType("Segment", "segment",
		[]string{"from", "weight"}, []string{"start", "w"}, []opendata.OpenType{pt, opendata.Double})
	require.NoError(t, err)

	s := opendata.JSONSchema(seg)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"from", "weight"}, s.Required)
	assert.Equal(t, false, s.AdditionalProperties)
	require.Len(t, s.Properties["from"].OneOf, 2)
	assert.Equal(t, "null", s.Properties["from"].OneOf[1].Type)
	assert.Equal(t, "int64", s.Properties["from"].OneOf[0].Properties["y"].Format)
	assert.Equal(t, "number", s.Properties["weight"].Type)
	assert.Equal(t, "w", s.Properties["weight"].Description)
}

func TestMarshalTypeYAML(t *testing.T) {
	data, err := opendata.MarshalTypeYAML(point(t, "Point"))
	require.NoError(t, err)

	var doc struct {
		Kind  string `yaml:"kind"`
		Name  string `yaml:"name"`
		Items []struct {
			Name string `yaml:"name"`
			Type struct {
				Name string `yaml:"name"`
			} `yaml:"type"`
		} `yaml:"items"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "composite", doc.Kind)
	require.Len(t, doc.Items, 3)
	assert.Equal(t, "x", doc.Items[0].Name)
	assert.Equal(t, "long", doc.Items[1].Type.Name)
}
