package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cardbook-api/internal/database"
	"github.com/cardbook-api/internal/models"
)

const cardColumns = `id, owner_id, name, company, department, position, address,
	office_phone, office_fax, mobile_phone, email, website, category, notes,
	created_at, updated_at`

// cardRepo is the concrete implementation of CardRepository
type cardRepo struct {
	db *database.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *database.DB) CardRepository {
	return &cardRepo{db: db}
}

// Create inserts a new card
func (r *cardRepo) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, owner_id, name, company, department, position, address,
			office_phone, office_fax, mobile_phone, email, website, category, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		card.ID, card.OwnerID, card.Name, card.Company, card.Department,
		card.Position, card.Address, card.OfficePhone, card.OfficeFax,
		card.MobilePhone, card.Email, card.Website, card.Category, card.Notes,
		card.CreatedAt, card.UpdatedAt,
	)
	return err
}

// Update rewrites every writable field of an existing card, owner-scoped
func (r *cardRepo) Update(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET name = $3, company = $4, department = $5, position = $6, address = $7,
			office_phone = $8, office_fax = $9, mobile_phone = $10, email = $11,
			website = $12, category = $13, notes = $14, updated_at = $15
		WHERE id = $1 AND owner_id = $2
	`
	_, err := r.db.ExecContext(ctx, query,
		card.ID, card.OwnerID, card.Name, card.Company, card.Department,
		card.Position, card.Address, card.OfficePhone, card.OfficeFax,
		card.MobilePhone, card.Email, card.Website, card.Category, card.Notes,
		card.UpdatedAt,
	)
	return err
}

// GetByID retrieves a card by id within one owner's set.
// A card owned by someone else is indistinguishable from a missing one.
func (r *cardRepo) GetByID(ctx context.Context, ownerID, id string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND owner_id = $2`
	return r.queryOne(ctx, query, id, ownerID)
}

// Delete removes a card, owner-scoped
func (r *cardRepo) Delete(ctx context.Context, ownerID, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}

// ListByOwner retrieves all cards of one owner in creation order
func (r *cardRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = $1 ORDER BY created_at, id`
	return r.queryMany(ctx, query, ownerID)
}

// ListByOwnerAndCategory retrieves one owner's cards in a single category
func (r *cardRepo) ListByOwnerAndCategory(ctx context.Context, ownerID string, category models.Category) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = $1 AND category = $2 ORDER BY created_at, id`
	return r.queryMany(ctx, query, ownerID, category)
}

// CountByOwner returns the number of cards one owner holds
func (r *cardRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE owner_id = $1", ownerID).Scan(&count)
	return count, err
}

// FindByNameAndMobile finds the earliest card matching name and mobile phone
func (r *cardRepo) FindByNameAndMobile(ctx context.Context, ownerID, name, mobile string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND name = $2 AND mobile_phone = $3
		ORDER BY created_at, id LIMIT 1`
	return r.queryOne(ctx, query, ownerID, name, mobile)
}

// FindByNameAndEmail finds the earliest card matching name and email
func (r *cardRepo) FindByNameAndEmail(ctx context.Context, ownerID, name, email string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND name = $2 AND email = $3
		ORDER BY created_at, id LIMIT 1`
	return r.queryOne(ctx, query, ownerID, name, email)
}

// FindByMobile finds the earliest card matching a mobile phone alone
func (r *cardRepo) FindByMobile(ctx context.Context, ownerID, mobile string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND mobile_phone = $2
		ORDER BY created_at, id LIMIT 1`
	return r.queryOne(ctx, query, ownerID, mobile)
}

// FindByNameAndCompany finds the earliest card matching name and company
func (r *cardRepo) FindByNameAndCompany(ctx context.Context, ownerID, name, company string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND name = $2 AND company = $3
		ORDER BY created_at, id LIMIT 1`
	return r.queryOne(ctx, query, ownerID, name, company)
}

// Previous returns the card created just before the given one
func (r *cardRepo) Previous(ctx context.Context, ownerID string, createdAt time.Time, id string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND (created_at, id) < ($2, $3)
		ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.queryOne(ctx, query, ownerID, createdAt, id)
}

// Next returns the card created just after the given one
func (r *cardRepo) Next(ctx context.Context, ownerID string, createdAt time.Time, id string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE owner_id = $1 AND (created_at, id) > ($2, $3)
		ORDER BY created_at, id LIMIT 1`
	return r.queryOne(ctx, query, ownerID, createdAt, id)
}

func (r *cardRepo) queryOne(ctx context.Context, query string, args ...interface{}) (*models.Card, error) {
	var card models.Card
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&card.ID, &card.OwnerID, &card.Name, &card.Company, &card.Department,
		&card.Position, &card.Address, &card.OfficePhone, &card.OfficeFax,
		&card.MobilePhone, &card.Email, &card.Website, &card.Category,
		&card.Notes, &card.CreatedAt, &card.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID, &card.OwnerID, &card.Name, &card.Company, &card.Department,
			&card.Position, &card.Address, &card.OfficePhone, &card.OfficeFax,
			&card.MobilePhone, &card.Email, &card.Website, &card.Category,
			&card.Notes, &card.CreatedAt, &card.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}
