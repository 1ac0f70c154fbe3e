package messaging

import "time"

// EntryRecordedEvent is the JSON payload sent via SQS on the summary queue
// whenever an entry is created or recomputed.
type EntryRecordedEvent struct {
	EntryID       string    `json:"entryId"`
	UserID        string    `json:"userId"`
	TotalHours    float64   `json:"totalHours"`
	OvertimeHours float64   `json:"overtimeHours"`
	BankHours     float64   `json:"bankHours"`
	OccurredAt    time.Time `json:"occurredAt"`
}
