package fieldcodec

import "fmt"

// FieldHandle is a field position resolved once against a schema.
// Records are then read and written by index, with no name lookup.
type FieldHandle struct {
	index int
	name  string
}

// Resolve binds a field name to its position in schema.
func Resolve(schema Schema, name string) (FieldHandle, error) {
	i, ok := schema.Index(name)
	if !ok {
		return FieldHandle{}, newConfigError(ErrFieldNotFound, "", name)
	}
	return FieldHandle{index: i, name: name}, nil
}

// Index returns the resolved position.
func (h FieldHandle) Index() int { return h.index }

// Name returns the field name.
func (h FieldHandle) Name() string { return h.name }

// Value returns the raw value of the field in r.
func (h FieldHandle) Value(r Record) (any, error) {
	if h.index < 0 || h.index >= len(r.Values) {
		return nil, fmt.Errorf("%w: field %s at index %d, record has %d values",
			ErrRecordShape, h.name, h.index, len(r.Values))
	}
	return r.Values[h.index], nil
}

// String returns the value of the field in r rendered as text.
func (h FieldHandle) String(r Record) (string, error) {
	v, err := h.Value(r)
	if err != nil {
		return "", err
	}
	return FormatValue(v), nil
}

// Set writes v into the field of r.
func (h FieldHandle) Set(r *Record, v any) error {
	if h.index < 0 || h.index >= len(r.Values) {
		return fmt.Errorf("%w: field %s at index %d, record has %d values",
			ErrRecordShape, h.name, h.index, len(r.Values))
	}
	r.Values[h.index] = v
	return nil
}

// fieldMapping maps one input position to one output position.
type fieldMapping struct {
	src int
	dst int
}

// copier clones input values into output records using a table built once
// at negotiation.
type copier struct {
	mappings []fieldMapping
	inLen    int
	outLen   int
}

// newCopier maps every input field to the output field of the same name.
func newCopier(in, out Schema) (*copier, error) {
	c := &copier{
		mappings: make([]fieldMapping, 0, in.Len()),
		inLen:    in.Len(),
		outLen:   out.Len(),
	}
	for i, f := range in.Fields {
		j, ok := out.Index(f.Name)
		if !ok {
			return nil, newConfigError(ErrFieldNotFound, "", f.Name)
		}
		c.mappings = append(c.mappings, fieldMapping{src: i, dst: j})
	}
	return c, nil
}

// newRecord returns an empty record shaped for the output schema.
func (c *copier) newRecord() Record {
	return Record{Values: make([]any, c.outLen)}
}

// copy clones every mapped value of src into dst.
func (c *copier) copy(dst *Record, src Record) error {
	if len(src.Values) != c.inLen {
		return fmt.Errorf("%w: got %d values, want %d", ErrRecordShape, len(src.Values), c.inLen)
	}
	for _, m := range c.mappings {
		dst.Values[m.dst] = cloneValue(src.Values[m.src])
	}
	return nil
}
