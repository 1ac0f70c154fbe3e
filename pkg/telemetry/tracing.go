package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const UserIDKey contextKey = "userId"

// InitTracer initializes the OpenTelemetry tracer provider. Spans go to the
// OTLP collector at endpoint (host:port, gRPC); with no endpoint they are
// pretty-printed to stdout.
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx := context.Background()

	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	if endpoint != "" {
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(endpoint))
	} else {
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stdout), stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp.Shutdown, nil
}

// StartSpanFromSQSMessage extracts trace context from SQS message attributes and starts a new span.
func StartSpanFromSQSMessage(ctx context.Context, msg types.Message) (context.Context, trace.Span) {
	carrier := sqsCarrier{attrs: msg.MessageAttributes}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	attrs := []attribute.KeyValue{attribute.String("messaging.system", "aws_sqs")}
	if msg.MessageId != nil {
		attrs = append(attrs, attribute.String("messaging.message_id", *msg.MessageId))
	}

	tracer := otel.Tracer("sqs-worker")
	ctx, span := tracer.Start(ctx, "process_message",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attrs...),
	)

	// Attempt to extract the user id from the message body to enrich the trace
	if msg.Body != nil {
		var payload struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal([]byte(*msg.Body), &payload); err == nil && payload.UserID != "" {
			span.SetAttributes(attribute.String("app.user_id", payload.UserID))
			ctx = WithUserID(ctx, payload.UserID)
		}
	}
	return ctx, span
}

// WithUserID stores the acting user id in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID from the context.
func GetUserIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(UserIDKey).(string); ok {
		return val
	}
	return ""
}

// InjectTraceContext injects the current trace context into SQS message attributes.
func InjectTraceContext(ctx context.Context) map[string]types.MessageAttributeValue {
	attrs := make(map[string]types.MessageAttributeValue)
	carrier := sqsCarrier{attrs: attrs}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return attrs
}

// sqsCarrier implements propagation.TextMapCarrier over SQS message attributes.
type sqsCarrier struct {
	attrs map[string]types.MessageAttributeValue
}

func (c sqsCarrier) Get(key string) string {
	if attr, ok := c.attrs[key]; ok && attr.StringValue != nil {
		return *attr.StringValue
	}
	return ""
}

func (c sqsCarrier) Set(key string, value string) {
	c.attrs[key] = types.MessageAttributeValue{
		DataType:    aws.String("String"),
		StringValue: aws.String(value),
	}
}

func (c sqsCarrier) Keys() []string {
	keys := make([]string, 0, len(c.attrs))
	for k := range c.attrs {
		keys = append(keys, k)
	}
	return keys
}
