package services

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-be/internal/apperr"
	"github.com/taskflow/taskflow-be/internal/models"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, username, password string) (int64, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByID(id int64) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user account and returns its id.
func (s *UserService) Register(email, username, password string) (int64, error) {
	if email == "" || username == "" || password == "" {
		return 0, apperr.Validation("All fields are required")
	}
	if len(password) < MinPasswordLength {
		return 0, apperr.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	var existingID int64
	err := s.db.QueryRow("SELECT id FROM users WHERE email = $1 OR username = $2", email, username).Scan(&existingID)
	if err == nil {
		return 0, apperr.ErrConflict
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	var userID int64
	err = s.db.QueryRow("INSERT INTO users (email, username, password_hash) VALUES ($1, $2, $3) RETURNING id",
		email, username, string(hashedPassword)).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// AuthenticateUser verifies a user's credentials. Unknown email and
// wrong password produce the same error so probes cannot tell which
// one failed.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, username, password_hash, created_at, updated_at FROM users WHERE email = $1", email)
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, username, created_at, updated_at FROM users WHERE id = $1", id)
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
