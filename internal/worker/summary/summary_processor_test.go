package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"timesheet.service/internal/core/model"
	"timesheet.service/internal/core/timesheet"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	entry      *model.TimesheetEntry
	getErr     error
	status     model.EmailStatus
	retryCount int
	updates    int
	history    []model.EmailStatus
}

func (r *stubRepo) CreateEntry(context.Context, *model.TimesheetEntry) error { return nil }
func (r *stubRepo) UpdateEntry(context.Context, *model.TimesheetEntry) error { return nil }
func (r *stubRepo) ListEntriesByUser(context.Context, string) ([]model.TimesheetEntry, error) {
	return nil, nil
}
func (r *stubRepo) DeleteEntry(context.Context, string) error { return nil }

func (r *stubRepo) GetEntry(context.Context, string) (*model.TimesheetEntry, error) {
	return r.entry, r.getErr
}

func (r *stubRepo) UpdateEmailStatus(_ context.Context, _ string, status model.EmailStatus, retryCount int) error {
	r.history = append(r.history, status)
	r.status = status
	r.retryCount = retryCount
	r.updates++
	return nil
}

type stubEmail struct {
	to   string
	sent int
	err  error
}

func (e *stubEmail) SendEntrySummary(_ context.Context, to string, _ model.TimesheetEntry) error {
	e.to = to
	e.sent++
	return e.err
}

func storedEntry(status model.EmailStatus, retries int) *model.TimesheetEntry {
	in := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)
	return &model.TimesheetEntry{
		ID:              "e1",
		UserID:          "alice",
		CheckIn:         in,
		CheckOut:        out,
		Hours:           timesheet.Classify(in, out, false),
		EmailStatus:     status,
		EmailRetryCount: retries,
	}
}

func message(body string) types.Message {
	return types.Message{MessageId: aws.String("m1"), Body: aws.String(body)}
}

const eventBody = `{"entryId":"e1","userId":"alice","totalHours":9}`

func TestProcessSendsSummary(t *testing.T) {
	repo := &stubRepo{entry: storedEntry(model.StatusEmailPending, 0)}
	email := &stubEmail{}
	p := NewProcessor(email, repo, "company.com")

	retry, delay, err := p.Process(context.Background(), message(eventBody))
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, int32(0), delay)
	assert.Equal(t, "alice@company.com", email.to)
	assert.Equal(t, []model.EmailStatus{model.StatusEmailProcessing, model.StatusEmailCompleted}, repo.history)
}

func TestProcessSkipsCompleted(t *testing.T) {
	repo := &stubRepo{entry: storedEntry(model.StatusEmailCompleted, 0)}
	email := &stubEmail{}
	p := NewProcessor(email, repo, "company.com")

	retry, _, err := p.Process(context.Background(), message(eventBody))
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, 0, email.sent)
	assert.Equal(t, 0, repo.updates)
}

func TestProcessSkipsDeletedEntry(t *testing.T) {
	email := &stubEmail{}
	p := NewProcessor(email, &stubRepo{}, "company.com")

	retry, _, err := p.Process(context.Background(), message(eventBody))
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, 0, email.sent)
}

func TestProcessRetriesFailedSend(t *testing.T) {
	repo := &stubRepo{entry: storedEntry(model.StatusEmailPending, 2)}
	email := &stubEmail{err: errors.New("ses throttled")}
	p := NewProcessor(email, repo, "company.com")

	retry, delay, err := p.Process(context.Background(), message(eventBody))
	assert.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(80), delay)
	assert.Equal(t, model.StatusEmailPending, repo.status)
	assert.Equal(t, 3, repo.retryCount)
}

func TestProcessRetriesDatabaseError(t *testing.T) {
	p := NewProcessor(&stubEmail{}, &stubRepo{getErr: errors.New("db down")}, "company.com")

	retry, delay, err := p.Process(context.Background(), message(eventBody))
	assert.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(10), delay)
}

func TestProcessDropsMalformedMessage(t *testing.T) {
	p := NewProcessor(&stubEmail{}, &stubRepo{}, "company.com")

	retry, _, err := p.Process(context.Background(), message("{not json"))
	assert.Error(t, err)
	assert.False(t, retry)

	retry, _, err = p.Process(context.Background(), types.Message{})
	assert.Error(t, err)
	assert.False(t, retry)
}

func TestProcessGivesUpAfterMaxRetries(t *testing.T) {
	repo := &stubRepo{entry: storedEntry(model.StatusEmailPending, MaxEmailRetries-1)}
	email := &stubEmail{err: errors.New("ses rejected")}
	p := NewProcessor(email, repo, "company.com")

	retry, _, err := p.Process(context.Background(), message(eventBody))
	assert.Error(t, err)
	assert.False(t, retry)
	assert.Equal(t, model.StatusEmailFailed, repo.status)
	assert.Equal(t, MaxEmailRetries, repo.retryCount)
}

func TestProcessSkipsFailed(t *testing.T) {
	repo := &stubRepo{entry: storedEntry(model.StatusEmailFailed, MaxEmailRetries)}
	email := &stubEmail{}
	p := NewProcessor(email, repo, "company.com")

	retry, _, err := p.Process(context.Background(), message(eventBody))
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, 0, email.sent)
}
