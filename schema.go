package fieldcodec

import "fmt"

// FieldType is the storage type of a field as reported by the host.
type FieldType string

const (
	TypeBool     FieldType = "bool"
	TypeByte     FieldType = "byte"
	TypeInt16    FieldType = "int16"
	TypeInt32    FieldType = "int32"
	TypeInt64    FieldType = "int64"
	TypeFloat    FieldType = "float"
	TypeDouble   FieldType = "double"
	TypeString   FieldType = "string"
	TypeWString  FieldType = "wstring"
	TypeVString  FieldType = "v_string"
	TypeVWString FieldType = "v_wstring"
	TypeBlob     FieldType = "blob"
	TypeDate     FieldType = "date"
	TypeDateTime FieldType = "datetime"
)

// MaxVWStringSize is the size reported for unbounded wide-string fields.
const MaxVWStringSize = 1073741823

// FieldInfo describes one field of a schema.
type FieldInfo struct {
	Name        string    `json:"name" yaml:"name" msgpack:"name" bson:"name"`
	Type        FieldType `json:"type" yaml:"type" msgpack:"type" bson:"type"`
	Size        int       `json:"size,omitempty" yaml:"size,omitempty" msgpack:"size,omitempty" bson:"size,omitempty"`
	Scale       int       `json:"scale,omitempty" yaml:"scale,omitempty" msgpack:"scale,omitempty" bson:"scale,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty" bson:"source,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty" bson:"description,omitempty"`
}

// Schema is an ordered sequence of field descriptors.
type Schema struct {
	Fields []FieldInfo `json:"fields" yaml:"fields" msgpack:"fields" bson:"fields"`
}

// NewSchema builds a schema from field descriptors.
// Returns an error if two fields share a name.
func NewSchema(fields ...FieldInfo) (Schema, error) {
	var s Schema
	for _, f := range fields {
		if err := s.AddField(f); err != nil {
			return Schema{}, err
		}
	}
	return s, nil
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Index returns the position of the named field.
func (s Schema) Index(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// FieldNames returns the field names in order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// AddField appends a field. Names must be unique within a schema.
func (s *Schema) AddField(f FieldInfo) error {
	if _, exists := s.Index(f.Name); exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
	}
	s.Fields = append(s.Fields, f)
	return nil
}

// Validate reports the first duplicate or empty field name.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d has no name", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Clone implements Cloner[Schema].
func (s Schema) Clone() Schema {
	if s.Fields == nil {
		return Schema{}
	}
	fields := make([]FieldInfo, len(s.Fields))
	copy(fields, s.Fields)
	return Schema{Fields: fields}
}
