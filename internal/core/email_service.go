package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timesheet.service/internal/core/model"
	"timesheet.service/internal/core/timesheet"
	"timesheet.service/pkg/telemetry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type EmailService interface {
	SendEntrySummary(ctx context.Context, to string, entry model.TimesheetEntry) error
}

// SESClient is the part of the SES API the email service uses.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESEmailService struct {
	client SESClient
	sender string
}

func NewSESEmailService(client SESClient, sender string) *SESEmailService {
	return &SESEmailService{client: client, sender: sender}
}

func (s *SESEmailService) SendEntrySummary(ctx context.Context, to string, entry model.TimesheetEntry) error {
	tracer := otel.Tracer("ses-email-service")
	ctx, span := tracer.Start(ctx, "send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if userID := telemetry.GetUserIDFromContext(ctx); userID != "" {
		span.SetAttributes(attribute.String("app.user_id", userID))
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Timesheet entry summary for " + entry.CheckIn.UTC().Format("2006-01-02")),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(SummaryText(entry)),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}

// SummaryText renders the plain-text body of the summary email. Hours are
// in hh.mm form.
func SummaryText(entry model.TimesheetEntry) string {
	var b strings.Builder
	b.WriteString("Hello,\n\nYour timesheet entry was recorded.\n\n")
	fmt.Fprintf(&b, "Check-in:  %s\n", entry.CheckIn.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Check-out: %s\n", entry.CheckOut.UTC().Format(time.RFC3339))
	if entry.IsHoliday {
		b.WriteString("Holiday:   yes\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total:     %s\n", timesheet.FormatCentesimal(entry.TotalHours))
	fmt.Fprintf(&b, "Lunch:     %s\n", timesheet.FormatCentesimal(entry.LunchHours))
	fmt.Fprintf(&b, "Normal:    %s\n", timesheet.FormatCentesimal(entry.NormalHours))
	fmt.Fprintf(&b, "Overtime:  %s\n", timesheet.FormatCentesimal(entry.OvertimeHours))
	fmt.Fprintf(&b, "Time bank: %s\n", timesheet.FormatCentesimal(entry.BankHours))
	return b.String()
}
