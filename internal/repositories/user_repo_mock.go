package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aroundyou/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	accounts map[string]models.Account // keyed by email
	profiles map[string]models.UserProfile
	mu       sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		accounts: make(map[string]models.Account),
		profiles: make(map[string]models.UserProfile),
	}
}

// CreateAccount adds a new account. Emails are unique.
func (r *MockUserRepository) CreateAccount(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Email]; exists {
		return fmt.Errorf("failed to create account: email %s already exists", account.Email)
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()
	r.accounts[account.Email] = *account
	return nil
}

// GetAccountByEmail returns the account registered with email.
func (r *MockUserRepository) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, fmt.Errorf("account with email %s: %w", email, ErrNotFound)
	}
	return &account, nil
}

// CreateProfile adds the profile of an account.
func (r *MockUserRepository) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[profile.UserID]; exists {
		return fmt.Errorf("failed to create profile: profile %s already exists", profile.UserID)
	}
	profile.CreatedAt = time.Now()
	r.profiles[profile.UserID] = *profile
	return nil
}

// CreateAccountWithProfile adds the account and its profile, or neither.
func (r *MockUserRepository) CreateAccountWithProfile(_ context.Context, account *models.Account, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if _, exists := r.accounts[account.Email]; exists {
		return fmt.Errorf("failed to create account: email %s already exists", account.Email)
	}
	if _, exists := r.profiles[account.ID]; exists {
		return fmt.Errorf("failed to create profile: profile %s already exists", account.ID)
	}
	now := time.Now()
	account.CreatedAt = now
	profile.UserID = account.ID
	profile.CreatedAt = now
	r.accounts[account.Email] = *account
	r.profiles[profile.UserID] = *profile
	return nil
}

// GetProfile returns the profile keyed by userID.
func (r *MockUserRepository) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return &profile, nil
}
