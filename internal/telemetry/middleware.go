// Package tracing provides distributed tracing infrastructure for the Flux
// daemon's actor runtime.
// It integrates with OpenTelemetry to provide span creation, context
// propagation, and trace export capabilities around actor message handling.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ActorHandler processes one inbound message for an actor and reports
// whether handling succeeded.
type ActorHandler func(ctx context.Context) error

// WrapActorHandle wraps an actor's per-message handler with a span named
// "actor.handle.<actorName>.<msgType>". If tracer is nil the returned
// function is a pass-through with no tracing overhead, matching the
// no-op tracer provider returned when tracing is disabled in config.
func WrapActorHandle(tracer trace.Tracer, actorName, msgType string, attrs []attribute.KeyValue, handler ActorHandler) ActorHandler {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context) error {
		spanName := fmt.Sprintf("%s%s.%s", SpanPrefixActor, actorName, msgType)
		ctx, span := tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		span.SetAttributes(attribute.String(AttrActorName, actorName), attribute.String(AttrMsgType, msgType))
		span.SetAttributes(attrs...)

		err := handler(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}

// StartTick starts a span for one periodic tick of an actor (the Timer's
// 1-second tick or the App Tracker's 5-second sample). Callers must call
// the returned end function when the tick's bookkeeping is complete.
func StartTick(ctx context.Context, tracer trace.Tracer, actorName string) (context.Context, func(err error)) {
	if tracer == nil {
		return ctx, func(error) {}
	}
	ctx, span := tracer.Start(ctx, SpanPrefixTick+actorName, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
