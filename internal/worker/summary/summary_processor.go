package summary

import (
	"context"
	"encoding/json"
	"fmt"

	"timesheet.service/internal/core"
	"timesheet.service/internal/core/model"
	"timesheet.service/internal/ports/messaging"
	"timesheet.service/internal/ports/repository"
	"timesheet.service/internal/worker"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
)

// MaxEmailRetries is the number of failed sends after which an entry's
// summary is marked FAILED and no longer retried.
const MaxEmailRetries = 10

// Processor emails the hour summary of an entry after it is recorded.
type Processor struct {
	emailService core.EmailService
	repo         repository.Repository
	emailDomain  string
}

// NewProcessor sets up a new processor for the summary queue. Recipients
// are addressed as <userId>@emailDomain.
func NewProcessor(emailService core.EmailService, repo repository.Repository, emailDomain string) *Processor {
	return &Processor{
		emailService: emailService,
		repo:         repo,
		emailDomain:  emailDomain,
	}
}

// Process handles one EntryRecordedEvent.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	if msg.Body == nil {
		return false, 0, fmt.Errorf("empty message body")
	}

	var event messaging.EntryRecordedEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal entry recorded event")
		return false, 0, err // Do not retry on malformed message
	}

	entry, err := p.repo.GetEntry(ctx, event.EntryID)
	if err != nil {
		return true, worker.Backoff(0), fmt.Errorf("failed to get entry from db for summary email: %w", err)
	}

	if entry == nil {
		log.Ctx(ctx).Info().Str("entry_id", event.EntryID).Msg("Entry no longer exists. Skipping.")
		return false, 0, nil
	}

	switch entry.EmailStatus {
	case model.StatusEmailCompleted:
		log.Ctx(ctx).Info().Str("entry_id", event.EntryID).Msg("Summary already sent. Skipping.")
		return false, 0, nil
	case model.StatusEmailFailed:
		log.Ctx(ctx).Info().Str("entry_id", event.EntryID).Msg("Summary gave up earlier. Skipping.")
		return false, 0, nil
	}

	if err := p.repo.UpdateEmailStatus(ctx, entry.ID, model.StatusEmailProcessing, entry.EmailRetryCount); err != nil {
		return true, worker.Backoff(0), fmt.Errorf("failed to mark summary email processing: %w", err)
	}

	err = p.emailService.SendEntrySummary(ctx, entry.UserID+"@"+p.emailDomain, *entry)
	if err != nil {
		newCount := entry.EmailRetryCount + 1
		if newCount >= MaxEmailRetries {
			if uerr := p.repo.UpdateEmailStatus(ctx, entry.ID, model.StatusEmailFailed, newCount); uerr != nil {
				log.Ctx(ctx).Error().Err(uerr).Str("entry_id", entry.ID).Msg("Failed to mark summary email failed")
			}
			log.Ctx(ctx).Error().Err(err).Str("entry_id", entry.ID).Int("retries", newCount).Msg("Giving up on summary email")
			return false, 0, err
		}
		if uerr := p.repo.UpdateEmailStatus(ctx, entry.ID, model.StatusEmailPending, newCount); uerr != nil {
			log.Ctx(ctx).Error().Err(uerr).Str("entry_id", entry.ID).Msg("Failed to record email retry")
		}
		return true, worker.Backoff(newCount), err
	}

	err = p.repo.UpdateEmailStatus(ctx, entry.ID, model.StatusEmailCompleted, 0)
	return false, 0, err
}
