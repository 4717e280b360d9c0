package domain

import "time"

type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapApproved SwapStatus = "approved"
	SwapRejected SwapStatus = "rejected"
)

// ShiftSwapRequest proposes moving one assignment from requester to requested.
// It transitions exactly once from pending to approved or rejected.
type ShiftSwapRequest struct {
	ID           int64      `json:"id"`
	ShopID       int64      `json:"shopID"`
	ShiftLabelID int64      `json:"shiftLabelID"`
	ShiftDate    string     `json:"shiftDate"`
	RequesterID  int64      `json:"requesterID"`
	RequestedID  int64      `json:"requestedID"`
	Status       SwapStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	Version      int32      `json:"-"`
}
