package host

import (
	"context"
	"errors"
	"sync"

	"github.com/zoobzio/fieldcodec"
)

// ErrLimitReached is returned by a TableSink that has accepted Limit rows.
var ErrLimitReached = errors.New("row limit reached")

// Table is the document exchanged with the host: a schema and its rows.
type Table struct {
	Fields []fieldcodec.FieldInfo `json:"fields" yaml:"fields" msgpack:"fields" bson:"fields"`
	Rows   [][]any                `json:"rows" yaml:"rows" msgpack:"rows" bson:"rows"`
}

// Schema returns the table's fields as a schema.
func (t Table) Schema() fieldcodec.Schema {
	return fieldcodec.Schema{Fields: t.Fields}.Clone()
}

// Records returns the table's rows as records.
func (t Table) Records() []fieldcodec.Record {
	recs := make([]fieldcodec.Record, len(t.Rows))
	for i, row := range t.Rows {
		recs[i] = fieldcodec.Record{Values: row}
	}
	return recs
}

// TableSink collects pipeline output into a Table.
//
// A positive Limit makes the sink refuse rows beyond the first Limit, which
// ends the stream with fieldcodec.ErrDownstreamRejected.
type TableSink struct {
	Limit int

	mu       sync.Mutex
	schema   fieldcodec.Schema
	rows     [][]any
	progress float64
	closed   bool
}

// NewTableSink creates a sink that accepts at most limit rows.
// A limit of zero or less means no limit.
func NewTableSink(limit int) *TableSink {
	return &TableSink{Limit: limit}
}

// Init records the output schema.
func (s *TableSink) Init(_ context.Context, schema fieldcodec.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("table sink is closed")
	}
	s.schema = schema.Clone()
	return nil
}

// Push appends one output row.
func (s *TableSink) Push(_ context.Context, rec fieldcodec.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("table sink is closed")
	}
	if s.Limit > 0 && len(s.rows) >= s.Limit {
		return ErrLimitReached
	}
	s.rows = append(s.rows, rec.Clone().Values)
	return nil
}

// Progress records the latest progress value.
func (s *TableSink) Progress(_ context.Context, pct float64) {
	s.mu.Lock()
	s.progress = pct
	s.mu.Unlock()
}

// Close marks the table complete.
func (s *TableSink) Close(_ context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Table returns the collected output.
func (s *TableSink) Table() Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]any, len(s.rows))
	copy(rows, s.rows)
	return Table{Fields: s.schema.Clone().Fields, Rows: rows}
}

// LastProgress returns the most recent progress value.
func (s *TableSink) LastProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Closed reports whether Close was called.
func (s *TableSink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

var _ fieldcodec.Sink = (*TableSink)(nil)
