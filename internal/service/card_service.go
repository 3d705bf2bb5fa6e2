package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/cardbook-api/internal/search"
	"github.com/cardbook-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cardService is the concrete implementation of CardService
type cardService struct {
	cards repository.CardRepository
	log   zerolog.Logger
}

func newCardService(cards repository.CardRepository, log zerolog.Logger) *cardService {
	return &cardService{
		cards: cards,
		log:   log.With().Str("service", "card").Logger(),
	}
}

// Create validates and stores a new card for the owner
func (s *cardService) Create(ctx context.Context, ownerID string, in *models.CardInput) (*models.Card, error) {
	if err := validation.ValidateCardInput(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now()
	card := &models.Card{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Company:     in.Company,
		Department:  in.Department,
		Position:    in.Position,
		Address:     in.Address,
		OfficePhone: in.OfficePhone,
		OfficeFax:   in.OfficeFax,
		MobilePhone: in.MobilePhone,
		Email:       in.Email,
		Website:     in.Website,
		Category:    in.Category,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	s.log.Info().Str("card_id", card.ID).Msg("Card created")
	return card, nil
}

// Get retrieves one card. A card that does not exist and a card owned by
// a different user produce the same ErrNotFound.
func (s *cardService) Get(ctx context.Context, ownerID, id string) (*models.Card, error) {
	card, err := s.cards.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrNotFound
	}
	return card, nil
}

// Update rewrites every writable field and refreshes updated_at
func (s *cardService) Update(ctx context.Context, ownerID, id string, in *models.CardInput) (*models.Card, error) {
	card, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCardInput(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	card.Name = strings.TrimSpace(in.Name)
	card.Company = in.Company
	card.Department = in.Department
	card.Position = in.Position
	card.Address = in.Address
	card.OfficePhone = in.OfficePhone
	card.OfficeFax = in.OfficeFax
	card.MobilePhone = in.MobilePhone
	card.Email = in.Email
	card.Website = in.Website
	card.Category = in.Category
	card.Notes = in.Notes
	card.UpdatedAt = time.Now()

	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Delete removes one card, owner-scoped
func (s *cardService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.cards.Delete(ctx, ownerID, id)
}

// Neighbors returns the cards created immediately before and after the
// given one, for detail-view navigation. Either may be nil.
func (s *cardService) Neighbors(ctx context.Context, ownerID, id string) (*models.Card, *models.Card, error) {
	card, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}
	prev, err := s.cards.Previous(ctx, ownerID, card.CreatedAt, card.ID)
	if err != nil {
		return nil, nil, err
	}
	next, err := s.cards.Next(ctx, ownerID, card.CreatedAt, card.ID)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

// Search computes the matching, ordered card set for one owner. The
// category filter runs at the store; keyword, field and sort resolution
// run in the search package over the owner-scoped set.
func (s *cardService) Search(ctx context.Context, ownerID string, q search.Query) ([]models.Card, error) {
	q = search.Normalize(q)

	var (
		cards []models.Card
		err   error
	)
	if q.Category != "" {
		if !models.ValidCategories[q.Category] {
			return nil, fmt.Errorf("%w: invalid category: %s", ErrValidation, q.Category)
		}
		cards, err = s.cards.ListByOwnerAndCategory(ctx, ownerID, q.Category)
	} else {
		cards, err = s.cards.ListByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}

	return search.Resolve(cards, q), nil
}

// CategoryStats counts one owner's cards per category
func (s *cardService) CategoryStats(ctx context.Context, ownerID string) (map[models.Category]int, error) {
	cards, err := s.cards.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats := make(map[models.Category]int)
	for _, c := range cards {
		stats[c.Category]++
	}
	return stats, nil
}

// RecentCards returns up to limit cards in descending creation order
func (s *cardService) RecentCards(ctx context.Context, ownerID string, limit int) ([]models.Card, error) {
	cards, err := s.Search(ctx, ownerID, search.Query{SortBy: search.OrderRecent})
	if err != nil {
		return nil, err
	}
	if len(cards) > limit {
		cards = cards[:limit]
	}
	return cards, nil
}

// TotalCount returns the number of cards one owner holds
func (s *cardService) TotalCount(ctx context.Context, ownerID string) (int, error) {
	return s.cards.CountByOwner(ctx, ownerID)
}
