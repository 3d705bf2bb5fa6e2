package repository

import (
	"context"
	"time"

	"github.com/cardbook-api/internal/database"
	"github.com/cardbook-api/internal/models"
)

// CardRepository defines the interface for card data operations.
// Every query is owner-scoped; a card is never visible outside its owner.
type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Card, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error)
	ListByOwnerAndCategory(ctx context.Context, ownerID string, category models.Category) ([]models.Card, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// Identity finders used by the import reconciler's matching cascade
	FindByNameAndMobile(ctx context.Context, ownerID, name, mobile string) (*models.Card, error)
	FindByNameAndEmail(ctx context.Context, ownerID, name, email string) (*models.Card, error)
	FindByMobile(ctx context.Context, ownerID, mobile string) (*models.Card, error)
	FindByNameAndCompany(ctx context.Context, ownerID, name, company string) (*models.Card, error)

	// Detail-view neighbors in creation order
	Previous(ctx context.Context, ownerID string, createdAt time.Time, id string) (*models.Card, error)
	Next(ctx context.Context, ownerID string, createdAt time.Time, id string) (*models.Card, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Card CardRepository
	User UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Card: NewCardRepo(db),
		User: NewUserRepo(db),
	}
}
