package domain

import "time"

type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	MaxShiftsPerWeek int32     `json:"maxShiftsPerWeek"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}
