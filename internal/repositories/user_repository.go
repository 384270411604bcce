package repositories

import (
	"context"

	"aroundyou/internal/models"
)

// UserRepository defines data access for accounts and the profiles attached to them.
type UserRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	// CreateAccountWithProfile inserts both rows or neither. The profile is
	// keyed by the account id.
	CreateAccountWithProfile(ctx context.Context, account *models.Account, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}
