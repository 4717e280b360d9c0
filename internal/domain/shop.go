package domain

import "time"

type ShopRole string

const (
	ShopRoleOwner   ShopRole = "owner"
	ShopRoleManager ShopRole = "manager"
	ShopRoleMember  ShopRole = "member"
)

type Shop struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	OwnerID   int64     `json:"ownerID"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// ShopMember is one row of a shop's roster: the employee plus their
// membership role in this particular shop.
type ShopMember struct {
	User
	Role ShopRole `json:"role"`
}
