package domain

import "time"

type OffDayStatus string

const (
	OffDayPending  OffDayStatus = "pending"
	OffDayApproved OffDayStatus = "approved"
	OffDayRejected OffDayStatus = "rejected"
)

type OffDay struct {
	ID         int64        `json:"id"`
	EmployeeID int64        `json:"employeeID"`
	Date       string       `json:"date"`
	Reason     string       `json:"reason"`
	Status     OffDayStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	Version    int32        `json:"-"`
}
