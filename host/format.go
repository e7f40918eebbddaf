package host

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zoobzio/fieldcodec"
	"github.com/zoobzio/fieldcodec/bson"
	"github.com/zoobzio/fieldcodec/json"
	"github.com/zoobzio/fieldcodec/msgpack"
	"github.com/zoobzio/fieldcodec/yaml"
)

// ErrUnknownFormat indicates no format is registered under a name.
var ErrUnknownFormat = errors.New("unknown format")

// Format marshals table documents.
type Format = fieldcodec.Format

var formats = map[string]func() Format{
	"json":    json.New,
	"yaml":    yaml.New,
	"msgpack": msgpack.New,
	"bson":    bson.New,
	"csv":     NewCSV,
}

// FormatFor returns the format registered under name.
// "yml" is accepted as an alias for "yaml".
func FormatFor(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "yml" {
		name = "yaml"
	}
	newFormat, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return newFormat(), nil
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// csvFormat reads and writes tables as RFC 4180 CSV with a header row.
//
// Every column is read as a v_wstring field and every cell as a string.
// Only Table and *Table values can be marshaled.
type csvFormat struct{}

// NewCSV returns a CSV format.
func NewCSV() Format {
	return &csvFormat{}
}

// ContentType returns the MIME type for CSV.
func (f *csvFormat) ContentType() string {
	return "text/csv"
}

// Marshal writes the header row then one line per row.
func (f *csvFormat) Marshal(v any) ([]byte, error) {
	var t Table
	switch tv := v.(type) {
	case Table:
		t = tv
	case *Table:
		if tv == nil {
			return nil, errors.New("csv: nil table")
		}
		t = *tv
	default:
		return nil, fmt.Errorf("csv: cannot marshal %T", v)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := make([]string, len(t.Fields))
	for i, fi := range t.Fields {
		header[i] = fi.Name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	line := make([]string, len(header))
	for n, row := range t.Rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("csv: row %d has %d values, want %d", n, len(row), len(header))
		}
		for i, cell := range row {
			line[i] = fieldcodec.FormatValue(cell)
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reads CSV into a *Table. The first record is the header.
// Empty input yields an empty table.
func (f *csvFormat) Unmarshal(data []byte, v any) error {
	t, ok := v.(*Table)
	if !ok {
		return fmt.Errorf("csv: cannot unmarshal into %T", v)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.ReuseRecord = false
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("csv: %w", err)
	}

	*t = Table{}
	if len(records) == 0 {
		return nil
	}

	header := records[0]
	var schema fieldcodec.Schema
	for _, name := range header {
		if err := schema.AddField(fieldcodec.FieldInfo{Name: name, Type: fieldcodec.TypeVWString}); err != nil {
			return fmt.Errorf("csv: malformed header: %w", err)
		}
	}

	t.Fields = schema.Fields
	t.Rows = make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return nil
}
