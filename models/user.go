package models

import "time"

// Roles a user account can carry.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is a registered account, either a customer or a back-office admin.
// PasswordHash holds a bcrypt digest, never the raw password.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;not null"`
	Role         string `gorm:"not null;default:customer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
