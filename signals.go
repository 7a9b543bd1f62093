package dolly

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for clone events.
var (
	SignalCloneStart    = capitan.NewSignal("dolly.clone.start", "Clone pass beginning")
	SignalCloneComplete = capitan.NewSignal("dolly.clone.complete", "Clone pass finished")
	SignalCloneFallback = capitan.NewSignal("dolly.clone.fallback", "Error fallback applied to an instance")
)

// Keys for typed event data.
var (
	KeyTypeName  = capitan.NewStringKey("type_name")
	KeyStrategy  = capitan.NewStringKey("strategy")
	KeyFallback  = capitan.NewStringKey("fallback")
	KeyInstances = capitan.NewIntKey("instances")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyError     = capitan.NewErrorKey("error")
)

// emitCloneStart emits an event when a clone pass begins.
func emitCloneStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalCloneStart,
		KeyTypeName.Field(typeName),
	)
}

// emitCloneComplete emits an event when a clone pass finishes.
func emitCloneComplete(ctx context.Context, typeName string, duration time.Duration, instances int, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyInstances.Field(instances),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalCloneComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCloneComplete, fields...)
	}
}

// emitCloneFallback emits an event when an instance's strategy failed and the fallback runs.
func emitCloneFallback(ctx context.Context, typeName string, primary, fallback Kind, cause error) {
	capitan.Emit(ctx, SignalCloneFallback,
		KeyTypeName.Field(typeName),
		KeyStrategy.Field(primary.String()),
		KeyFallback.Field(fallback.String()),
		KeyError.Field(cause),
	)
}
