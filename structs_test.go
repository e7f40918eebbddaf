package fieldcodec

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type customer struct {
	ID      int64
	Name    string `field:"customer_name"`
	Secret  string `field:"-"`
	Active  bool
	Balance float64
	Joined  time.Time
	Avatar  []byte
	Tags    []string
	Meta    map[string]string
	private string
}

func TestSchemaFor(t *testing.T) {
	s, err := SchemaFor[customer]()
	if err != nil {
		t.Fatalf("SchemaFor() error: %v", err)
	}

	want := []string{"ID", "customer_name", "Active", "Balance", "Joined", "Avatar"}
	if diff := cmp.Diff(want, s.FieldNames()); diff != "" {
		t.Errorf("field names mismatch (-want +got):\n%s", diff)
	}

	types := map[string]FieldType{
		"ID":            TypeInt64,
		"customer_name": TypeVWString,
		"Active":        TypeBool,
		"Balance":       TypeDouble,
		"Joined":        TypeDateTime,
		"Avatar":        TypeBlob,
	}
	for _, f := range s.Fields {
		if f.Type != types[f.Name] {
			t.Errorf("field %s type = %s, want %s", f.Name, f.Type, types[f.Name])
		}
	}

	i, _ := s.Index("customer_name")
	if s.Fields[i].Source != "customer.Name" {
		t.Errorf("Source = %q, want customer.Name", s.Fields[i].Source)
	}
}

func TestSchemaFor_Cached(t *testing.T) {
	a, err := SchemaFor[customer]()
	if err != nil {
		t.Fatalf("SchemaFor() error: %v", err)
	}
	a.Fields[0].Name = "mutated"

	b, err := SchemaFor[customer]()
	if err != nil {
		t.Fatalf("SchemaFor() error: %v", err)
	}
	if b.Fields[0].Name != "ID" {
		t.Error("SchemaFor() should return a copy of the cached schema")
	}
}

func TestSchemaFor_NotStruct(t *testing.T) {
	if _, err := SchemaFor[string](); err == nil {
		t.Error("SchemaFor[string]() should fail")
	}
	if _, err := RecordOf(42); err == nil {
		t.Error("RecordOf(int) should fail")
	}
}

func TestSchemaFor_DuplicateTag(t *testing.T) {
	type clash struct {
		A string `field:"name"`
		B string `field:"name"`
	}
	_, err := SchemaFor[clash]()
	if !errors.Is(err, ErrDuplicateField) {
		t.Errorf("SchemaFor() error = %v, want ErrDuplicateField", err)
	}
}

func TestRecordOf(t *testing.T) {
	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	avatar := []byte{0x01, 0x02}
	c := customer{
		ID:      7,
		Name:    "Alteryx",
		Secret:  "hidden",
		Active:  true,
		Balance: 12.5,
		Joined:  joined,
		Avatar:  avatar,
	}

	rec, err := RecordOf(c)
	if err != nil {
		t.Fatalf("RecordOf() error: %v", err)
	}

	want := NewRecord(int64(7), "Alteryx", true, 12.5, joined, []byte{0x01, 0x02})
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("RecordOf() mismatch (-want +got):\n%s", diff)
	}

	rec.Values[5].([]byte)[0] = 0xFF
	if avatar[0] != 0x01 {
		t.Error("RecordOf() should copy byte slices")
	}
}

func TestRecordOf_FeedsPipeline(t *testing.T) {
	s, err := SchemaFor[customer]()
	if err != nil {
		t.Fatalf("SchemaFor() error: %v", err)
	}
	rec, err := RecordOf(customer{ID: 1, Name: "AB"})
	if err != nil {
		t.Fatalf("RecordOf() error: %v", err)
	}
	if rec.Len() != s.Len() {
		t.Fatalf("record Len() = %d, schema Len() = %d", rec.Len(), s.Len())
	}

	h, err := Resolve(s, "customer_name")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	got, err := h.String(rec)
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if got != "AB" {
		t.Errorf("String() = %q, want AB", got)
	}
}
