package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OperationRecorded struct {
	EventID    uuid.UUID       `json:"event_id"`
	AccountID  uuid.UUID       `json:"account_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	OccurredAt time.Time       `json:"occurred_at"`
}
