package schema

import (
	"time"
)

// User represents the users table - wallets that have used the marketplace
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the wallet address, lowercased
	Address string `gorm:"column:address;not null;uniqueIndex;type:text"`
	// Username is an optional display name
	Username string `gorm:"column:username;type:text"`
	// Email is an optional contact address
	Email string `gorm:"column:email;type:text"`
	// CreatedAt is the timestamp when the user first appeared
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last profile change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
