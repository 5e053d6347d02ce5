package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/projeval-api/internal/observability"
)

const tracerName = "github.com/noah-isme/projeval-api/internal/service"

// Store operation names used for metrics, audit actions and change events.
const (
	opList      = "list"
	opGet       = "get"
	opCreate    = "create"
	opUpdate    = "update"
	opDelete    = "delete"
	opRecompute = "recompute"
	opImport    = "import"
)

// ChangeHooks are the side effects run after a mutation commits. Both are
// optional and neither can fail the mutation.
type ChangeHooks struct {
	Activity  ActivityRecorder
	Publisher ChangePublisher
}

// entityObserver wraps store calls of one entity with tracing, metrics and
// the post-commit hooks.
type entityObserver struct {
	entity string
	hooks  ChangeHooks
	tracer trace.Tracer
	logger zerolog.Logger
}

func newEntityObserver(entity string, hooks ChangeHooks, logger zerolog.Logger) entityObserver {
	return entityObserver{
		entity: entity,
		hooks:  hooks,
		tracer: otel.Tracer(tracerName),
		logger: logger,
	}
}

func (o entityObserver) start(ctx context.Context, operation string, key uint) (context.Context, trace.Span) {
	ctx, span := o.tracer.Start(ctx, o.entity+"."+operation)
	span.SetAttributes(attribute.String("store.entity", o.entity))
	if key > 0 {
		span.SetAttributes(attribute.Int64("store.key", int64(key)))
	}
	return ctx, span
}

// fail classifies err, records it on the span and counts the failed operation.
func (o entityObserver) fail(span trace.Span, operation string, key uint, err error) error {
	if key > 0 {
		err = fmt.Errorf("%s: %w", describeKey(o.entity, key), err)
	}
	classified := classify(err)
	kind := KindOf(classified)
	observability.StoreOperations().WithLabelValues(o.entity, operation, kind).Inc()
	span.RecordError(classified)
	span.SetStatus(codes.Error, kind)
	return classified
}

func (o entityObserver) succeeded(operation string) {
	observability.StoreOperations().WithLabelValues(o.entity, operation, KindOf(nil)).Inc()
}

// committed runs the post-commit hooks for a successful mutation.
func (o entityObserver) committed(ctx context.Context, operation string, key uint, metadata map[string]interface{}) {
	o.succeeded(operation)

	if o.hooks.Activity != nil {
		_, err := o.hooks.Activity.Record(ctx, ActivityEntry{
			Action:     o.entity + "." + operation,
			EntityType: o.entity,
			EntityKey:  key,
			Metadata:   metadata,
		})
		if err != nil {
			o.logger.Warn().Err(err).Str("operation", operation).Uint("key", key).Msg("failed to record activity")
		}
	}

	if o.hooks.Publisher != nil {
		err := o.hooks.Publisher.Publish(ctx, ChangeEvent{
			Entity:    o.entity,
			Operation: operation,
			Key:       key,
		})
		if err != nil {
			o.logger.Warn().Err(err).Str("operation", operation).Uint("key", key).Msg("failed to publish change event")
		}
	}
}

func fieldNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// trimFields trims each present optional string in place.
func trimFields(values ...*string) {
	for _, value := range values {
		if value != nil {
			*value = strings.TrimSpace(*value)
		}
	}
}
