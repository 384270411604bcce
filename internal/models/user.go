package models

import "time"

// UserType discriminates which dashboard a profile is routed to.
type UserType string

const (
	UserTypeConsumer UserType = "consumer"
	UserTypeMerchant UserType = "merchant"
	UserTypeAdmin    UserType = "admin"
)

// Account is the raw authentication identity. It is owned by the auth
// collaborator and kept apart from the application-level profile.
type Account struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Account) TableName() string { return "accounts" }

// UserProfile is the application-level user record.
type UserProfile struct {
	UserID      string    `json:"user_id" gorm:"column:user_id;primaryKey;type:varchar(36)"`
	Email       string    `json:"email" gorm:"type:varchar(255)"`
	FirstName   *string   `json:"first_name"`
	LastName    *string   `json:"last_name"`
	PhoneNumber *string   `json:"phone_number"`
	UserType    UserType  `json:"user_type" gorm:"type:varchar(16)"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserProfile) TableName() string { return "users" }

// IsConsumer reports whether the profile is routed to the consumer dashboard.
// Every other role, admin included, lands on the merchant dashboard.
func (p *UserProfile) IsConsumer() bool {
	return p.UserType == UserTypeConsumer
}
