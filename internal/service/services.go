package service

import (
	"context"
	"errors"
	"io"

	"github.com/cardbook-api/internal/config"
	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/cardbook-api/internal/search"
	"github.com/rs/zerolog"
)

// Sentinel errors surfaced to the API layer
var (
	// ErrNotFound covers both a missing card and a card owned by another
	// user; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input (blank name, bad category,
	// duplicate registration email, password mismatch)
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials marks a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CardService defines card CRUD and search operations
type CardService interface {
	Create(ctx context.Context, ownerID string, in *models.CardInput) (*models.Card, error)
	Get(ctx context.Context, ownerID, id string) (*models.Card, error)
	Update(ctx context.Context, ownerID, id string, in *models.CardInput) (*models.Card, error)
	Delete(ctx context.Context, ownerID, id string) error
	Neighbors(ctx context.Context, ownerID, id string) (prev, next *models.Card, err error)
	Search(ctx context.Context, ownerID string, q search.Query) ([]models.Card, error)
	CategoryStats(ctx context.Context, ownerID string) (map[models.Category]int, error)
	RecentCards(ctx context.Context, ownerID string, limit int) ([]models.Card, error)
	TotalCount(ctx context.Context, ownerID string) (int, error)
}

// DedupService defines duplicate detection and cleanup
type DedupService interface {
	FindDuplicates(ctx context.Context, ownerID string) (map[string][]models.Card, error)
	CleanDuplicates(ctx context.Context, ownerID, strategy string) (int, error)
}

// ImportService defines the spreadsheet import operation
type ImportService interface {
	ImportSheet(ctx context.Context, file io.Reader, category models.Category, ownerID, duplicateAction string) (*models.UploadResult, error)
}

// ExportService defines the spreadsheet and email-list exports
type ExportService interface {
	ExportCards(ctx context.Context, ownerID string, q search.Query) ([]byte, error)
	ExportEmails(ctx context.Context, ownerID string, q search.Query, excludeCompanies string, semicolon bool) ([]byte, error)
}

// UserService defines account registration and login
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// Services holds all service interfaces
type Services struct {
	Card   CardService
	Dedup  DedupService
	Import ImportService
	Export ExportService
	User   UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	cardSvc := newCardService(repos.Card, log)
	return &Services{
		Card:   cardSvc,
		Dedup:  newDedupService(repos.Card, log),
		Import: newImportService(repos.Card, log),
		Export: newExportService(cardSvc, log),
		User:   newUserService(repos.User, cfg, log),
	}
}
