package opendata

import (
	"gopkg.in/yaml.v3"

	js "github.com/reoring/opendata/jsonschema"
)

// JSONSchema projects an open type onto the values object of the wire form.
// Composite attributes are nullable, since nil is the no-value marker.
func JSONSchema(t OpenType) *js.Schema {
	switch tt := t.(type) {
	case *CompositeType:
		s := &js.Schema{
			Title:                tt.name,
			Description:          tt.description,
			Type:                 "object",
			Properties:           make(map[string]*js.Schema, len(tt.items)),
			Required:             tt.Keys(),
			AdditionalProperties: false,
		}
		for _, it := range tt.items {
			p := JSONSchema(it.typ)
			if _, nested := it.typ.(*CompositeType); nested {
				p = &js.Schema{Description: it.description, OneOf: []*js.Schema{p, {Type: "null"}}}
			} else {
				p.Description = it.description
			}
			s.Properties[it.name] = p
		}
		return s
	case *SimpleType:
		switch tt {
		case Integer:
			return &js.Schema{Type: "integer", Format: "int32"}
		case Long:
			return &js.Schema{Type: "integer", Format: "int64"}
		case Double:
			return &js.Schema{Type: "number", Format: "double"}
		case Boolean:
			return &js.Schema{Type: "boolean"}
		default:
			return &js.Schema{Type: "string"}
		}
	}
	return &js.Schema{}
}

type yamlItem struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Type        *yamlType `yaml:"type"`
}

type yamlType struct {
	Kind        string     `yaml:"kind"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Items       []yamlItem `yaml:"items,omitempty"`
}

func toYAMLType(t OpenType) *yamlType {
	d := toTypeDoc(t)
	return fromDoc(d)
}

func fromDoc(d typeDoc) *yamlType {
	y := &yamlType{Kind: d.Kind, Name: d.Name, Description: d.Description}
	for _, it := range d.Items {
		y.Items = append(y.Items, yamlItem{Name: it.Name, Description: it.Description, Type: fromDoc(it.Type)})
	}
	return y
}

// MarshalTypeYAML renders a type descriptor as YAML, in declaration order.
func MarshalTypeYAML(t OpenType) ([]byte, error) {
	return yaml.Marshal(toYAMLType(t))
}
