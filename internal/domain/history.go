package domain

import (
	"encoding/json"
	"time"
)

type HistoryAction string

const (
	HistoryAddShift    HistoryAction = "add_shift"
	HistoryUpdateShift HistoryAction = "update_shift"
	HistoryRemoveShift HistoryAction = "remove_shift"
	HistoryDeleteShift HistoryAction = "delete_shift"
	HistoryAutoAssign  HistoryAction = "auto_assign"
	HistoryApproveSwap HistoryAction = "approve_swap"
	HistoryRejectSwap  HistoryAction = "reject_swap"
)

// HistoryMessage is what the API publishes to the history queue after a
// successful mutation. The audit worker persists it as a History row.
type HistoryMessage struct {
	Action     HistoryAction `json:"action"`
	ActorID    int64         `json:"actorId"`
	ShopID     int64         `json:"shopId"`
	Payload    any           `json:"payload"`
	OccurredAt time.Time     `json:"occurredAt"`
}

type History struct {
	ID         int64           `json:"id"`
	Action     HistoryAction   `json:"action"`
	ActorID    int64           `json:"actorID"`
	ShopID     int64           `json:"shopID"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}
