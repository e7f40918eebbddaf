// Package host drives a fieldcodec pipeline over a table document.
//
// Run plays the part of the hosting engine: it reads one table in a wire
// format, announces its schema, pushes each row in order, reports progress,
// and writes the collected output table back in the same format.
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/zoobzio/fieldcodec"
)

// ErrNoInput indicates there is no input table to process.
var ErrNoInput = errors.New("missing incoming connection")

// RowError reports a row that could not be transformed.
type RowError struct {
	Row int   // Zero-based row index
	Err error // Underlying error, usually a *fieldcodec.CodecError
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Result summarizes a run.
type Result struct {
	PipelineID string
	Schema     fieldcodec.Schema // Output schema
	Rows       int               // Rows read from the input
	Records    int               // Records accepted downstream
	Rejected   bool              // Downstream stopped the stream early
}

// RunOption configures Run.
type RunOption func(*runOptions)

type runOptions struct {
	limit    int
	pipeline []fieldcodec.Option
}

// WithLimit caps the number of output rows. Rows beyond the limit are
// refused downstream and end the run early.
func WithLimit(n int) RunOption {
	return func(o *runOptions) {
		o.limit = n
	}
}

// WithPipelineOptions passes options through to fieldcodec.NewPipeline.
func WithPipelineOptions(opts ...fieldcodec.Option) RunOption {
	return func(o *runOptions) {
		o.pipeline = append(o.pipeline, opts...)
	}
}

// Run reads a table from r, transforms it with a pipeline built from cfg, and
// writes the output table to w. Both tables use format.
//
// Configuration errors stop the run before any row is read. A row that fails
// to transform stops the run with a *RowError and nothing is written. When the
// downstream limit is reached the run ends normally with Result.Rejected set.
func Run(ctx context.Context, cfg fieldcodec.Config, format Format, r io.Reader, w io.Writer, opts ...RunOption) (Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	if format == nil {
		return Result{}, errors.New("host: format must not be nil")
	}

	in, err := readTable(format, r)
	if err != nil {
		return Result{}, err
	}

	sink := NewTableSink(o.limit)
	p, err := fieldcodec.NewPipeline(cfg, sink, o.pipeline...)
	if err != nil {
		return Result{}, err
	}

	res := Result{PipelineID: p.ID(), Rows: len(in.Rows)}
	if err := stream(ctx, p, in, &res); err != nil {
		_ = p.Close(ctx)
		return res, err
	}
	if err := p.Close(ctx); err != nil {
		return res, err
	}
	res.Records = p.Count()

	out := sink.Table()
	res.Schema = fieldcodec.Schema{Fields: out.Fields}
	data, err := format.Marshal(out)
	if err != nil {
		return res, fmt.Errorf("encode %s output: %w", format.ContentType(), err)
	}
	if _, err := w.Write(data); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}

// stream negotiates and pushes every row of in.
func stream(ctx context.Context, p *fieldcodec.Pipeline, in Table, res *Result) error {
	if _, err := p.Negotiate(ctx, in.Schema()); err != nil {
		return err
	}

	total := len(in.Rows)
	for i, rec := range in.Records() {
		err := p.Push(ctx, rec)
		if errors.Is(err, fieldcodec.ErrDownstreamRejected) {
			res.Rejected = true
			return nil
		}
		if err != nil {
			return &RowError{Row: i, Err: err}
		}
		p.Progress(ctx, float64(i+1)/float64(total))
	}
	if total == 0 {
		p.Progress(ctx, 1)
	}
	return nil
}

// readTable decodes the input document. An absent or empty document, or one
// without fields, is ErrNoInput.
func readTable(format Format, r io.Reader) (Table, error) {
	if r == nil {
		return Table{}, ErrNoInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Table{}, ErrNoInput
	}

	var t Table
	if err := format.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("decode %s input: %w", format.ContentType(), err)
	}
	if len(t.Fields) == 0 {
		return Table{}, ErrNoInput
	}
	return t, nil
}
