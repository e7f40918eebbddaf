package fieldcodec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is a pipeline lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateNegotiated
	StateStreaming
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateNegotiated:
		return "negotiated"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config selects the field, direction, and scheme of a pipeline.
// It is fixed for the lifetime of a pipeline.
type Config struct {
	Field  string `json:"field" yaml:"field"`
	Mode   Mode   `json:"mode" yaml:"mode"`
	Scheme Scheme `json:"scheme" yaml:"scheme"`
}

// Validate checks the mode and scheme against the built-in sets.
// An empty Field is not checked here; it fails negotiation instead.
func (c Config) Validate() error {
	if !IsValidMode(c.Mode) {
		return newConfigError(ErrInvalidMode, string(c.Mode), c.Field)
	}
	if !IsValidScheme(c.Scheme) {
		return newConfigError(ErrUnknownScheme, string(c.Scheme), c.Field)
	}
	return nil
}

// OutputField returns the name of the appended field: "{field}_{mode}".
func (c Config) OutputField() string {
	return c.Field + "_" + string(c.Mode)
}

// OutputDescription returns the description of the appended field: "{scheme} {mode}".
// SchemeNone is rendered as "none".
func (c Config) OutputDescription() string {
	scheme := string(c.Scheme)
	if c.Scheme == SchemeNone {
		scheme = "none"
	}
	return scheme + " " + string(c.Mode)
}

// Sink receives the output of a pipeline, in order.
type Sink interface {
	// Init announces the output schema before any record is pushed.
	Init(ctx context.Context, schema Schema) error

	// Push hands over one completed record. A non-nil error means the
	// record was refused and no further records should be sent.
	Push(ctx context.Context, rec Record) error

	// Progress forwards upstream progress, a value in [0, 1].
	Progress(ctx context.Context, pct float64)

	// Close terminates the output.
	Close(ctx context.Context) error
}

// Stage is the capability a host adapter drives.
type Stage interface {
	Negotiate(ctx context.Context, in Schema) (Schema, error)
	Transform(ctx context.Context, in Record) (Record, error)
	Close(ctx context.Context) error
}

var _ Stage = (*Pipeline)(nil)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistry sets the codec registry. Defaults to DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithID sets the pipeline identifier reported in signals.
// Defaults to a random UUID.
func WithID(id string) Option {
	return func(p *Pipeline) {
		if id != "" {
			p.id = id
		}
	}
}

// Pipeline appends an encoded or decoded copy of one field to every record.
//
// The lifecycle is Negotiate, then any number of Push or Transform calls,
// then Close. Schema-derived state (output schema, field handles, copy
// table) is built once by Negotiate and read-only afterwards.
//
// A Pipeline is driven by a single caller and is not safe for concurrent use.
type Pipeline struct {
	id       string
	cfg      Config
	registry *Registry
	sink     Sink

	state    State
	failed   error // terminal negotiation error
	rejected bool  // sink refused a record
	count    int   // records accepted by the sink

	// Built by Negotiate, released by Close.
	in       Schema
	out      Schema
	inField  FieldHandle
	outField FieldHandle
	copier   *copier
}

// NewPipeline creates a pipeline that emits to sink.
//
// The mode must be valid and the scheme must be registered. An empty field
// is accepted here and reported by Negotiate.
func NewPipeline(cfg Config, sink Sink, opts ...Option) (*Pipeline, error) {
	if sink == nil {
		return nil, errors.New("fieldcodec: sink must not be nil")
	}
	if !IsValidMode(cfg.Mode) {
		return nil, newConfigError(ErrInvalidMode, string(cfg.Mode), cfg.Field)
	}

	p := &Pipeline{
		id:   uuid.NewString(),
		cfg:  cfg,
		sink: sink,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	if !p.registry.Has(cfg.Scheme) {
		return nil, newConfigError(ErrUnknownScheme, string(cfg.Scheme), cfg.Field)
	}

	emitPipelineCreated(context.Background(), p.id, cfg)
	return p, nil
}

// ID returns the pipeline identifier.
func (p *Pipeline) ID() string { return p.id }

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// State returns the current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Count returns the number of records accepted by the sink.
func (p *Pipeline) Count() int { return p.count }

// InputSchema returns a copy of the negotiated input schema.
func (p *Pipeline) InputSchema() Schema { return p.in.Clone() }

// OutputSchema returns a copy of the negotiated output schema.
func (p *Pipeline) OutputSchema() Schema { return p.out.Clone() }

// Negotiate derives the output schema from the input schema, announces it to
// the sink, and caches the field handles and copy table used for every record.
//
// A missing or unknown field is a *ConfigError and is terminal: every later
// Negotiate, Transform, or Push returns the same error.
func (p *Pipeline) Negotiate(ctx context.Context, in Schema) (Schema, error) {
	if p.failed != nil {
		return Schema{}, p.failed
	}
	if p.state != StateUninitialized {
		return Schema{}, stateError("negotiate", p.state)
	}

	out, err := p.negotiate(ctx, in)
	emitNegotiated(ctx, p.id, p.cfg.OutputField(), out.Len(), err)
	if err != nil {
		p.failed = err
		return Schema{}, err
	}
	return out.Clone(), nil
}

func (p *Pipeline) negotiate(ctx context.Context, in Schema) (Schema, error) {
	if p.cfg.Field == "" {
		return Schema{}, newConfigError(ErrNoField, "", "")
	}

	if err := in.Validate(); err != nil {
		return Schema{}, fmt.Errorf("input schema: %w", err)
	}

	inField, err := Resolve(in, p.cfg.Field)
	if err != nil {
		return Schema{}, err
	}

	name := p.cfg.OutputField()
	out := in.Clone()
	if err := out.AddField(FieldInfo{
		Name:        name,
		Type:        TypeVWString,
		Size:        MaxVWStringSize,
		Description: p.cfg.OutputDescription(),
	}); err != nil {
		return Schema{}, newConfigError(ErrDuplicateField, "", name)
	}

	cp, err := newCopier(in, out)
	if err != nil {
		return Schema{}, err
	}
	outField, err := Resolve(out, name)
	if err != nil {
		return Schema{}, err
	}

	if err := p.sink.Init(ctx, out.Clone()); err != nil {
		return Schema{}, fmt.Errorf("init sink: %w", err)
	}

	p.in = in.Clone()
	p.out = out
	p.inField = inField
	p.outField = outField
	p.copier = cp
	p.state = StateNegotiated
	return out, nil
}

// Transform builds the output record for in without emitting it.
//
// The input record is never modified. A value the scheme cannot decode is a
// *CodecError; the untransformed value is never substituted.
func (p *Pipeline) Transform(ctx context.Context, in Record) (Record, error) {
	if err := p.ready(ctx, "transform"); err != nil {
		return Record{}, err
	}
	p.state = StateStreaming

	start := time.Now()
	out, err := p.transform(in)
	emitRecordComplete(ctx, p.id, p.count, time.Since(start), err)
	if err != nil {
		return Record{}, err
	}
	return out, nil
}

func (p *Pipeline) transform(in Record) (Record, error) {
	out := p.copier.newRecord()
	if err := p.copier.copy(&out, in); err != nil {
		return Record{}, err
	}

	text, err := p.inField.String(in)
	if err != nil {
		return Record{}, err
	}

	result, err := p.registry.Apply(p.cfg.Mode, p.cfg.Scheme, text)
	if err != nil {
		var codecErr *CodecError
		if errors.As(err, &codecErr) {
			codecErr.Field = p.cfg.Field
		}
		return Record{}, err
	}

	if err := p.outField.Set(&out, result); err != nil {
		return Record{}, err
	}
	return out, nil
}

// Push transforms in and emits the result to the sink.
//
// If the sink refuses the record, the error wraps ErrDownstreamRejected and
// every later Push returns ErrDownstreamRejected without doing any work.
// Refusal is an orderly end of stream, not a failure of the pipeline.
func (p *Pipeline) Push(ctx context.Context, in Record) error {
	if p.rejected {
		return ErrDownstreamRejected
	}

	out, err := p.Transform(ctx, in)
	if err != nil {
		return err
	}

	if err := p.sink.Push(ctx, out); err != nil {
		p.rejected = true
		err = fmt.Errorf("%w: %w", ErrDownstreamRejected, err)
		emitRejected(ctx, p.id, p.count, err)
		return err
	}
	p.count++
	return nil
}

// Progress forwards upstream progress to the sink unchanged.
// It has no effect after Close.
func (p *Pipeline) Progress(ctx context.Context, pct float64) {
	if p.state == StateClosed {
		return
	}
	p.sink.Progress(ctx, pct)
	emitProgress(ctx, p.id, pct)
}

// Close terminates the sink and releases the negotiated state.
// Calling Close more than once is safe; only the first call closes the sink.
func (p *Pipeline) Close(ctx context.Context) error {
	if p.state == StateClosed {
		return nil
	}

	err := p.sink.Close(ctx)
	if err != nil {
		err = fmt.Errorf("close sink: %w", err)
	}

	p.in = Schema{}
	p.out = Schema{}
	p.inField = FieldHandle{}
	p.outField = FieldHandle{}
	p.copier = nil
	p.state = StateClosed

	emitClosed(ctx, p.id, p.count, err)
	return err
}

// ready checks that records may flow.
func (p *Pipeline) ready(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.failed != nil {
		return p.failed
	}
	if p.state != StateNegotiated && p.state != StateStreaming {
		return stateError(op, p.state)
	}
	return nil
}
