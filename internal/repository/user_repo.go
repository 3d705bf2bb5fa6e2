package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cardbook-api/internal/database"
	"github.com/cardbook-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, last_login, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.LastLogin, user.CreatedAt,
	)
	return err
}

// GetByID retrieves a user by id
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.queryOne(ctx, `SELECT id, email, password_hash, name, last_login, created_at FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.queryOne(ctx, `SELECT id, email, password_hash, name, last_login, created_at FROM users WHERE email = $1`, email)
}

// EmailExists checks whether an email is already registered
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// UpdateLastLogin records a successful login
func (r *userRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET last_login = $2 WHERE id = $1", id, at)
	return err
}

func (r *userRepo) queryOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	var lastLogin sql.NullTime

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &lastLogin, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return &user, nil
}
