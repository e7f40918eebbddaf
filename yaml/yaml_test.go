package yaml

import (
	"strings"
	"testing"

	"github.com/zoobzio/fieldcodec"
)

func TestNew(t *testing.T) {
	f := New()
	if f == nil {
		t.Error("New() should return non-nil format")
	}
}

func TestContentType(t *testing.T) {
	f := New()
	if f.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", f.ContentType(), "application/yaml")
	}
}

func TestMarshalUnmarshal_Schema(t *testing.T) {
	f := New()

	original := fieldcodec.Schema{Fields: []fieldcodec.FieldInfo{
		{Name: "ID", Type: fieldcodec.TypeInt64},
		{Name: "Name", Type: fieldcodec.TypeVWString, Size: 255},
	}}

	data, err := f.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored fieldcodec.Schema
	if err := f.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Len() != 2 || restored.Fields[1] != original.Fields[1] {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshal_EncodedTextStaysString(t *testing.T) {
	f := New()

	// Base16 output looks numeric and must not come back as an int
	rec := fieldcodec.NewRecord("4142", "true", "MZXW6YTBOI======")
	data, err := f.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored fieldcodec.Record
	if err := f.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	for i, v := range rec.Values {
		if restored.Values[i] != v {
			t.Errorf("values[%d] = %#v, want %#v", i, restored.Values[i], v)
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	f := New()

	var v fieldcodec.Schema
	err := f.Unmarshal([]byte("fields: [invalid"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestMarshalNil(t *testing.T) {
	f := New()

	data, err := f.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	// YAML represents nil as "null\n"
	if string(data) != "null\n" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null\n")
	}
}

func TestUnmarshal_EmptyInput(t *testing.T) {
	f := New()

	var v fieldcodec.Schema
	// Empty input should not error in YAML (results in zero value)
	if err := f.Unmarshal([]byte{}, &v); err != nil {
		t.Errorf("Unmarshal(empty) error: %v", err)
	}
	if v.Len() != 0 {
		t.Errorf("Unmarshal(empty) Len() = %d, want 0", v.Len())
	}
}

func TestUnmarshal_TypeMismatch(t *testing.T) {
	f := New()

	testCases := []struct {
		name  string
		input string
	}{
		{"string for size", "fields:\n  - name: ID\n    size: wide"},
		{"map for fields", "fields:\n  nested: true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var v fieldcodec.Schema
			if err := f.Unmarshal([]byte(tc.input), &v); err == nil {
				t.Errorf("Unmarshal(%q) should return error for type mismatch", tc.input)
			}
		})
	}
}

func TestMarshal_SpecialCharacters(t *testing.T) {
	f := New()

	rec := fieldcodec.NewRecord("héllo: wörld ✓", "line1\nline2")
	data, err := f.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "values:") {
		t.Errorf("Marshal() = %q, want values key", data)
	}

	var restored fieldcodec.Record
	if err := f.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored.Values[0] != rec.Values[0] || restored.Values[1] != rec.Values[1] {
		t.Errorf("round-trip failed: got %v, want %v", restored.Values, rec.Values)
	}
}

func TestMarshal_TwoSpaceIndent(t *testing.T) {
	f := New()

	data, err := f.Marshal(fieldcodec.Schema{Fields: []fieldcodec.FieldInfo{{Name: "ID", Type: fieldcodec.TypeInt64}}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "\n  - name: ID\n") {
		t.Errorf("Marshal() = %q, want two-space indented fields", data)
	}
}

func TestUnmarshal_MultipleDocuments(t *testing.T) {
	f := New()

	var v fieldcodec.Schema
	err := f.Unmarshal([]byte("fields:\n  - name: ID\n---\nfields:\n  - name: Name\n"), &v)
	if err == nil {
		t.Error("Unmarshal() should reject a second document")
	}
}
