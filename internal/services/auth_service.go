package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aroundyou/internal/events"
	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
	"aroundyou/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email twice.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidToken covers malformed, expired and revoked tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Registration is the sign-up payload of the auth collaborator.
type Registration struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=6"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	UserType    models.UserType `json:"user_type" validate:"required,oneof=consumer merchant admin"`
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// AuthService issues, validates and revokes session tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	revoked    session.RevocationStore
	publisher  events.Publisher
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, revoked session.RevocationStore, publisher events.Publisher, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		revoked:    revoked,
		publisher:  publisher,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: ttl,
	}
}

// Register creates the account and provisions its profile.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*models.UserProfile, error) {
	if _, err := s.userRepo.GetAccountByEmail(ctx, reg.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", reg.Email, ErrEmailTaken)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{Email: reg.Email, PasswordHash: string(hash)}
	profile := &models.UserProfile{
		Email:       reg.Email,
		FirstName:   optional(reg.FirstName),
		LastName:    optional(reg.LastName),
		PhoneNumber: optional(reg.PhoneNumber),
		UserType:    reg.UserType,
	}
	if err := s.userRepo.CreateAccountWithProfile(ctx, account, profile); err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	return profile, nil
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.userRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": account.ID,
		"email":   account.Email,
		"jti":     uuid.New().String(),
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	events.Emit(ctx, s.publisher, events.SessionEstablished, map[string]interface{}{
		"user_id": account.ID,
	})
	return signed, nil
}

// ValidateToken parses a token, checks its signature and expiry and makes sure
// it was not signed out.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	claims.UserID, _ = mc["user_id"].(string)
	claims.Email, _ = mc["email"].(string)
	claims.TokenID, _ = mc["jti"].(string)
	if exp, ok := mc["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if claims.UserID == "" || claims.TokenID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: signed out", ErrInvalidToken)
	}
	return claims, nil
}

// Logout revokes the session token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if err := s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	events.Emit(ctx, s.publisher, events.SessionCleared, map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
