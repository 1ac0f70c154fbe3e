package messaging

import (
	"context"

	"timesheet.service/pkg/telemetry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSClient sendMessage interface based on aws sdk
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSender implements MessageSender for AWS SQS.
type SQSSender struct {
	client SQSClient
}

func NewSQSSender(client SQSClient) *SQSSender {
	return &SQSSender{client: client}
}

func (s *SQSSender) SendMessage(ctx context.Context, destination string, body []byte) error {
	// Inject trace context into message attributes
	attributes := telemetry.InjectTraceContext(ctx)

	_, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(destination),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: attributes,
	})
	return err
}
