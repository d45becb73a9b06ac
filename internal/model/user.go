package model

import "time"

// Role names stored in the users table and carried in the JWT role claim.
const (
	RoleClient  = "CLIENT"
	RoleCashier = "CASHIER"
	RoleStaff   = "STAFF"
)

// User is an account that can browse, book tickets, finalize orders or
// manage the schedule depending on its role.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCashier reports whether the user may finalize orders.  Staff members
// double as cashiers so the panel can clear the queue without a role switch.
func (u *User) IsCashier() bool {
	return u.Role == RoleCashier || u.Role == RoleStaff
}

// IsStaff reports whether the user may manage movies, halls and showings.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
