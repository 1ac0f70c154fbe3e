package worker

import (
	"context"
	"math"
	"sync"
	"time"

	"timesheet.service/pkg/logger"
	"timesheet.service/pkg/telemetry"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
)

type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
}

// Processor is a generic interface for any type that can process a message from SQS.
type Processor interface {
	Process(ctx context.Context, msg types.Message) (shouldRetry bool, retryDelay int32, err error)
}

// Worker is our generic SQS message consumer. It polls a queue and passes
// messages off to a Processor.
type Worker struct {
	client    SQSClient
	queueURL  string
	processor Processor
	// Concurrency controls how many messages can be processed at the same time.
	Concurrency int
	// WaitTimeSeconds is the long-poll duration of each receive call.
	WaitTimeSeconds int32
	// ErrorPause is how long the poller waits after a failed receive.
	ErrorPause time.Duration
}

// NewWorker creates a new SQS worker, ready to be started.
func NewWorker(client SQSClient, url string, proc Processor) *Worker {
	return &Worker{
		client:          client,
		queueURL:        url,
		processor:       proc,
		Concurrency:     10,
		WaitTimeSeconds: 20,
		ErrorPause:      time.Second,
	}
}

// Start runs the poll loop until ctx is canceled, then waits for in-flight
// messages to finish.
func (w *Worker) Start(ctx context.Context) {
	log.Info().Int("concurrency", w.Concurrency).Str("queue", w.queueURL).Msg("SQS Worker started. Polling for messages...")

	messagesCh := make(chan types.Message, w.Concurrency)

	var wg sync.WaitGroup
	for i := 0; i < w.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.processMessages(ctx, messagesCh)
		}()
	}

	w.pollMessages(ctx, messagesCh)
	wg.Wait()
	log.Info().Msg("SQS Worker stopped")
}

// pollMessages fetches messages from SQS and sends them to a channel.
func (w *Worker) pollMessages(ctx context.Context, messagesCh chan<- types.Message) {
	defer close(messagesCh) // Close channel to signal processors to stop

	for {
		if ctx.Err() != nil {
			log.Info().Msg("Poller shutting down...")
			return
		}

		output, err := w.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              &w.queueURL,
			MaxNumberOfMessages:   int32(min(w.Concurrency, 10)), // SQS caps a batch at 10
			WaitTimeSeconds:       w.WaitTimeSeconds,
			MessageAttributeNames: []string{"All"}, // Request attributes to get trace context
		})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Msg("Error receiving messages")
			select {
			case <-ctx.Done():
			case <-time.After(w.ErrorPause):
			}
			continue
		}

		if len(output.Messages) > 0 {
			log.Debug().Int("count", len(output.Messages)).Msg("Received messages")
		}
		for _, msg := range output.Messages {
			messagesCh <- msg
		}
	}
}

func (w *Worker) processMessages(ctx context.Context, messagesCh <-chan types.Message) {
	for msg := range messagesCh {
		w.handleSingleMessage(ctx, msg)
	}
}

// handleSingleMessage calls the processor and then deletes the message or
// changes its visibility for a retry.
func (w *Worker) handleSingleMessage(ctx context.Context, msg types.Message) {
	// Cleanup calls must go through even while shutting down.
	ctx = context.WithoutCancel(ctx)

	ctx, span := telemetry.StartSpanFromSQSMessage(ctx, msg)
	defer span.End()

	ctx = logger.EnrichContextWithLogger(ctx)

	shouldRetry, retryDelay, err := w.processor.Process(ctx, msg)

	if err != nil && shouldRetry {
		log.Ctx(ctx).Warn().Err(err).Int32("retry_delay", retryDelay).Msg("Processing failed, will retry")

		_, verr := w.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
			QueueUrl:          &w.queueURL,
			ReceiptHandle:     msg.ReceiptHandle,
			VisibilityTimeout: retryDelay,
		})
		if verr != nil {
			log.Ctx(ctx).Error().Err(verr).Msg("Failed to change message visibility")
		}
		return
	}

	if err != nil {
		// Unrecoverable (e.g. bad message format); SQS redrive takes it from here.
		log.Ctx(ctx).Error().Err(err).Msg("Unrecoverable error processing message, will not retry")
		return
	}

	// Only delete on total success
	if _, err := w.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	}); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to delete message")
	}
}

// Backoff determines how long (in seconds) to hide a message before the next
// attempt: 10s doubled per retry, capped at one hour.
func Backoff(retryCount int) int32 {
	backoff := math.Pow(2, float64(retryCount)) * 10
	if backoff > 3600 {
		return 3600
	}
	return int32(backoff)
}
