// Package testing provides test utilities for fieldcodec.
package testing

import (
	"context"
	"errors"
	"sync"

	"github.com/zoobzio/fieldcodec"
)

// ErrLimitReached is returned by a RecordingSink that has accepted Limit records.
var ErrLimitReached = errors.New("sink limit reached")

// UserSchema returns a three-field schema used across tests.
func UserSchema() fieldcodec.Schema {
	return fieldcodec.Schema{Fields: []fieldcodec.FieldInfo{
		{Name: "ID", Type: fieldcodec.TypeInt64, Size: 8},
		{Name: "Name", Type: fieldcodec.TypeVWString, Size: 256},
		{Name: "Note", Type: fieldcodec.TypeVString, Size: 1024},
	}}
}

// UserRecords returns records conforming to UserSchema.
func UserRecords() []fieldcodec.Record {
	return []fieldcodec.Record{
		fieldcodec.NewRecord(int64(1), "Alteryx", "first"),
		fieldcodec.NewRecord(int64(2), "AB", nil),
		fieldcodec.NewRecord(int64(3), "", "empty name"),
		fieldcodec.NewRecord(int64(4), "héllo wörld ✓", []byte("raw")),
	}
}

// EncodeConfig returns a config encoding the Name field with the given scheme.
func EncodeConfig(s fieldcodec.Scheme) fieldcodec.Config {
	return fieldcodec.Config{Field: "Name", Mode: fieldcodec.ModeEncode, Scheme: s}
}

// DecodeConfig returns a config decoding the given field with the given scheme.
func DecodeConfig(field string, s fieldcodec.Scheme) fieldcodec.Config {
	return fieldcodec.Config{Field: field, Mode: fieldcodec.ModeDecode, Scheme: s}
}

// RecordingSink collects everything a pipeline emits.
// A positive Limit makes Push refuse records beyond that count.
type RecordingSink struct {
	Limit    int
	InitErr  error
	CloseErr error

	mu       sync.Mutex
	schema   fieldcodec.Schema
	records  []fieldcodec.Record
	progress []float64
	inits    int
	closes   int
}

// NewRecordingSink returns an unlimited sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Init implements fieldcodec.Sink.
func (s *RecordingSink) Init(_ context.Context, schema fieldcodec.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inits++
	if s.InitErr != nil {
		return s.InitErr
	}
	s.schema = schema
	return nil
}

// Push implements fieldcodec.Sink.
func (s *RecordingSink) Push(_ context.Context, rec fieldcodec.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Limit > 0 && len(s.records) >= s.Limit {
		return ErrLimitReached
	}
	s.records = append(s.records, rec)
	return nil
}

// Progress implements fieldcodec.Sink.
func (s *RecordingSink) Progress(_ context.Context, pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, pct)
}

// Close implements fieldcodec.Sink.
func (s *RecordingSink) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return s.CloseErr
}

// Schema returns the schema received by Init.
func (s *RecordingSink) Schema() fieldcodec.Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schema
}

// Records returns the accepted records in arrival order.
func (s *RecordingSink) Records() []fieldcodec.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]fieldcodec.Record, len(s.records))
	copy(out, s.records)
	return out
}

// ProgressReports returns every forwarded progress value.
func (s *RecordingSink) ProgressReports() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.progress))
	copy(out, s.progress)
	return out
}

// Inits returns how many times Init was called.
func (s *RecordingSink) Inits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inits
}

// Closes returns how many times Close was called.
func (s *RecordingSink) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

var _ fieldcodec.Sink = (*RecordingSink)(nil)
