package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("account is deactivated")
)

type AuthService struct {
	db         bun.IDB
	jwtService *JWTService
}

func NewAuthService(db bun.IDB, jwtService *JWTService) *AuthService {
	return &AuthService{
		db:         db,
		jwtService: jwtService,
	}
}

// HashPassword hashes a password using bcrypt
func (a *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password with a hash
func (a *AuthService) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateUser creates a new user with hashed password and a fresh API key.
func (a *AuthService) CreateUser(ctx context.Context, username, password, firstName, lastName string, email *string) (*models.User, error) {
	hash, err := a.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Active:       true,
		APIKey:       uuid.NewString(),
	}

	_, err = a.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username (case-insensitive)
func (a *AuthService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := new(models.User)
	err := a.db.NewSelect().
		Model(user).
		Where("LOWER(username) = LOWER(?)", username).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, maintains the login counters, and issues
// a fresh token which is persisted on the user row.
func (a *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := a.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !a.CheckPassword(password, user.PasswordHash) {
		if _, err := a.db.NewUpdate().
			Model((*models.User)(nil)).
			Set("fail_login_count = fail_login_count + 1").
			Where("id = ?", user.ID).
			Exec(ctx); err != nil {
			log.Printf("Failed to record failed login for %s: %v", username, err)
		}
		return nil, "", ErrInvalidCredentials
	}

	if !user.Active {
		return nil, "", ErrUserInactive
	}

	token, err := a.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	if _, err := a.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("login_count = login_count + 1").
		Set("last_login = NOW()").
		Where("id = ?", user.ID).
		Exec(ctx); err != nil {
		log.Printf("Failed to update login counters for %s: %v", username, err)
	}

	return user, token, nil
}

// issueToken generates and persists a new token for the user. The
// previous token is overwritten: one token per user, last write wins.
func (a *AuthService) issueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := a.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	_, err = a.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("token = ?", token).
		Set("token_last_update = ?", time.Now()).
		Where("id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

// RefreshAllTokens regenerates the token for every active user, one
// UPDATE per user. A crash mid-sweep leaves already-visited users on
// new tokens and the rest on old ones; the next sweep converges.
func (a *AuthService) RefreshAllTokens(ctx context.Context) (int, error) {
	var users []models.User
	err := a.db.NewSelect().
		Model(&users).
		Where("active = TRUE").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active users: %w", err)
	}

	refreshed := 0
	for i := range users {
		if _, err := a.issueToken(ctx, &users[i]); err != nil {
			return refreshed, fmt.Errorf("refresh stopped at user %s: %w", users[i].Username, err)
		}
		refreshed++
	}

	return refreshed, nil
}

// ValidateToken validates a bearer token and returns its claims.
func (a *AuthService) ValidateToken(token string) (*JWTClaims, error) {
	return a.jwtService.ValidateToken(token)
}
