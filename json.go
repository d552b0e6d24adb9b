package opendata

import (
	"bytes"
	"math"

	json "github.com/goccy/go-json"

	"github.com/reoring/opendata/i18n"
)

// Wire form: a record travels with its full type descriptor so that a consumer
// can rebuild the CompositeType without sharing code with the producer.
//
//	{"type": {"kind":"composite","name":...,"items":[...]}, "values": {...}}

const (
	kindSimple    = "simple"
	kindComposite = "composite"
)

type typeDoc struct {
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Items       []itemDoc `json:"items,omitempty"`
}

type itemDoc struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Type        typeDoc `json:"type"`
}

type recordDoc struct {
	Type   typeDoc        `json:"type"`
	Values map[string]any `json:"values"`
}

func toTypeDoc(t OpenType) typeDoc {
	switch tt := t.(type) {
	case *CompositeType:
		d := typeDoc{Kind: kindComposite, Name: tt.name, Description: tt.description, Items: make([]itemDoc, len(tt.items))}
		for i, it := range tt.items {
			d.Items[i] = itemDoc{Name: it.name, Description: it.description, Type: toTypeDoc(it.typ)}
		}
		return d
	default:
		return typeDoc{Kind: kindSimple, Name: t.TypeName()}
	}
}

func valuesDoc(cd CompositeData) map[string]any {
	ct := cd.CompositeType()
	out := make(map[string]any, ct.Len())
	for _, k := range ct.keys {
		v := cd.Get(k)
		if nested, ok := v.(CompositeData); ok && !IsNil(nested) {
			out[k] = valuesDoc(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the type descriptor.
func (t *CompositeType) MarshalJSON() ([]byte, error) { return json.Marshal(toTypeDoc(t)) }

// MarshalJSON encodes the record together with its type descriptor.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return MarshalCompositeData(r)
}

// MarshalCompositeData encodes any CompositeData into the wire form.
func MarshalCompositeData(cd CompositeData) ([]byte, error) {
	if IsNil(cd) {
		return []byte("null"), nil
	}
	return json.Marshal(recordDoc{Type: toTypeDoc(cd.CompositeType()), Values: valuesDoc(cd)})
}

// UnmarshalCompositeType rebuilds a type from its wire descriptor.
func UnmarshalCompositeType(data []byte) (*CompositeType, error) {
	var d typeDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	t, iss := fromTypeDoc(Root(), d)
	if len(iss) > 0 {
		return nil, iss
	}
	ct, ok := t.(*CompositeType)
	if !ok {
		return nil, singleIssue(CodeInvalidType, i18n.T(CodeInvalidType, map[string]string{"expected": kindComposite, "got": d.Kind}))
	}
	return ct, nil
}

// UnmarshalCompositeData decodes the wire form. The result carries a freshly
// built CompositeType, so consumers must compare types structurally (see
// TypeMatched). A JSON null decodes to a nil CompositeData without error.
func UnmarshalCompositeData(data []byte) (CompositeData, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc recordDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	if doc.Type.Kind == "" {
		return nil, AppendIssues(nil, Root().Field("type").Issue(CodeRequired, i18n.T(CodeRequired, nil)))
	}
	t, iss := fromTypeDoc(Root().Field("type"), doc.Type)
	if len(iss) > 0 {
		return nil, iss
	}
	ct, ok := t.(*CompositeType)
	if !ok {
		return nil, singleIssue(CodeInvalidType, i18n.T(CodeInvalidType, map[string]string{"expected": kindComposite, "got": doc.Type.Kind}))
	}
	rec, iss := coerceRecord(Root(), ct, doc.Values)
	if len(iss) > 0 {
		return nil, iss
	}
	return rec, nil
}

func fromTypeDoc(at PathRef, d typeDoc) (OpenType, Issues) {
	switch d.Kind {
	case kindSimple:
		st, ok := LookupSimpleType(d.Name)
		if !ok {
			return nil, AppendIssues(nil, at.Field("name").Issue(CodeInvalidValue,
				i18n.T(CodeInvalidValue, nil), "simpleType", d.Name))
		}
		return st, nil
	case kindComposite:
		names := make([]string, len(d.Items))
		descs := make([]string, len(d.Items))
		types := make([]OpenType, len(d.Items))
		var iss Issues
		for i, it := range d.Items {
			t, sub := fromTypeDoc(at.Field("items").Field(it.Name), it.Type)
			iss = append(iss, sub...)
			names[i], descs[i], types[i] = it.Name, it.Description, t
		}
		if len(iss) > 0 {
			return nil, iss
		}
		ct, err := NewCompositeType(d.Name, d.Description, names, descs, types)
		if err != nil {
			return nil, AppendIssues(nil, at.Issue(CodeInvalidValue, err.Error()))
		}
		return ct, nil
	}
	return nil, AppendIssues(nil, at.Field("kind").Issue(CodeInvalidValue,
		i18n.T(CodeInvalidValue, nil), "kind", d.Kind))
}

func coerceRecord(at PathRef, ct *CompositeType, values map[string]any) (*Record, Issues) {
	if values == nil {
		return nil, AppendIssues(nil, at.Issue(CodeInvalidType,
			i18n.T(CodeInvalidType, map[string]string{"expected": kindComposite})))
	}
	var iss Issues
	names := make([]string, 0, len(values))
	vals := make([]any, 0, len(values))
	for _, it := range ct.items {
		raw, ok := values[it.name]
		if !ok {
			iss = AppendIssues(iss, at.Field(it.name).Issue(CodeRequired, i18n.T(CodeRequired, nil)))
			continue
		}
		v, sub := coerceValue(at.Field(it.name), it.typ, raw)
		iss = append(iss, sub...)
		names = append(names, it.name)
		vals = append(vals, v)
	}
	for k := range values {
		if !ct.ContainsKey(k) {
			iss = AppendIssues(iss, at.Field(k).Issue(CodeUnknownKey, i18n.T(CodeUnknownKey, nil)))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	rec, err := NewRecord(ct, names, vals)
	if err != nil {
		sub, _ := AsIssues(err)
		return nil, sub
	}
	return rec, nil
}

func coerceValue(at PathRef, t OpenType, raw any) (any, Issues) {
	if raw == nil {
		return nil, nil
	}
	mismatch := func() Issues {
		return AppendIssues(nil, at.Issue(CodeInvalidType,
			i18n.T(CodeInvalidType, map[string]string{"expected": t.TypeName()}), "expected", t.TypeName()))
	}
	if ct, ok := t.(*CompositeType); ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, mismatch()
		}
		rec, iss := coerceRecord(at, ct, m)
		if len(iss) > 0 {
			return nil, iss
		}
		return rec, nil
	}
	switch t {
	case String:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case Boolean:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case Integer, Long:
		n, ok := raw.(json.Number)
		if !ok {
			return nil, mismatch()
		}
		i, err := n.Int64()
		if err != nil {
			return nil, mismatch()
		}
		if t == Long {
			return i, nil
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return nil, AppendIssues(nil, at.Issue(CodeInvalidValue, i18n.T(CodeInvalidValue, nil), "overflow", n.String()))
		}
		return int32(i), nil
	case Double:
		if n, ok := raw.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	}
	return nil, mismatch()
}
