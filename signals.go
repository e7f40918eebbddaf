package fieldcodec

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for pipeline events.
var (
	SignalPipelineCreated = capitan.NewSignal("fieldcodec.pipeline.created", "Pipeline instantiated")
	SignalNegotiated      = capitan.NewSignal("fieldcodec.pipeline.negotiated", "Output schema derived")
	SignalRecordComplete  = capitan.NewSignal("fieldcodec.record.complete", "Record transform finished")
	SignalRejected        = capitan.NewSignal("fieldcodec.pipeline.rejected", "Downstream refused a record")
	SignalProgress        = capitan.NewSignal("fieldcodec.pipeline.progress", "Upstream progress forwarded")
	SignalClosed          = capitan.NewSignal("fieldcodec.pipeline.closed", "Pipeline closed")
)

// Keys for typed event data.
var (
	KeyPipelineID  = capitan.NewStringKey("pipeline_id")
	KeyField       = capitan.NewStringKey("field")
	KeyOutputField = capitan.NewStringKey("output_field")
	KeyMode        = capitan.NewStringKey("mode")
	KeyScheme      = capitan.NewStringKey("scheme")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeyRecordCount = capitan.NewIntKey("record_count")
	KeyPercent     = capitan.NewIntKey("percent")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

func emitPipelineCreated(ctx context.Context, id string, cfg Config) {
	capitan.Emit(ctx, SignalPipelineCreated,
		KeyPipelineID.Field(id),
		KeyField.Field(cfg.Field),
		KeyMode.Field(string(cfg.Mode)),
		KeyScheme.Field(string(cfg.Scheme)),
	)
}

func emitNegotiated(ctx context.Context, id, outputField string, fieldCount int, err error) {
	fields := []capitan.Field{
		KeyPipelineID.Field(id),
		KeyOutputField.Field(outputField),
		KeyFieldCount.Field(fieldCount),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalNegotiated, fields...)
	} else {
		capitan.Emit(ctx, SignalNegotiated, fields...)
	}
}

// emitRecordComplete emits an event when a record transform finishes.
// Codec failures are emitted at error level so they are never silent.
func emitRecordComplete(ctx context.Context, id string, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPipelineID.Field(id),
		KeyRecordCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRecordComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalRecordComplete, fields...)
	}
}

func emitRejected(ctx context.Context, id string, count int, err error) {
	capitan.Emit(ctx, SignalRejected,
		KeyPipelineID.Field(id),
		KeyRecordCount.Field(count),
		KeyError.Field(err),
	)
}

func emitProgress(ctx context.Context, id string, pct float64) {
	capitan.Emit(ctx, SignalProgress,
		KeyPipelineID.Field(id),
		KeyPercent.Field(int(pct*100)),
	)
}

func emitClosed(ctx context.Context, id string, count int, err error) {
	fields := []capitan.Field{
		KeyPipelineID.Field(id),
		KeyRecordCount.Field(count),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalClosed, fields...)
	} else {
		capitan.Emit(ctx, SignalClosed, fields...)
	}
}
