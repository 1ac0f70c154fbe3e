package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Producer publishes domain events as JSON through a MessageSender.
type Producer struct {
	sender          MessageSender
	summaryQueueURL string
}

func NewProducer(sender MessageSender, summaryQueueURL string) *Producer {
	return &Producer{
		sender:          sender,
		summaryQueueURL: summaryQueueURL,
	}
}

func NewSQSProducer(client SQSClient, summaryQueueURL string) *Producer {
	return NewProducer(NewSQSSender(client), summaryQueueURL)
}

func (p *Producer) PublishEntryRecorded(ctx context.Context, event EntryRecordedEvent) error {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() && event.UserID != "" {
		span.SetAttributes(
			attribute.String("app.user_id", event.UserID),
			attribute.String("app.entry_id", event.EntryID),
		)
	}
	return p.publish(ctx, p.summaryQueueURL, event)
}

func (p *Producer) publish(ctx context.Context, destination string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	if err := p.sender.SendMessage(ctx, destination, b); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
