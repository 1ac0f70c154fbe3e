package messaging

import (
	"context"
)

// EventPublisher defines the output port for publishing domain events.
type EventPublisher interface {
	PublishEntryRecorded(ctx context.Context, event EntryRecordedEvent) error
}

// MessageSender defines the interface for sending raw messages to a messaging system.
type MessageSender interface {
	SendMessage(ctx context.Context, destination string, body []byte) error
}
