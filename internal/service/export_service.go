package service

import (
	"context"

	"github.com/cardbook-api/internal/search"
	"github.com/cardbook-api/internal/spreadsheet"
	"github.com/rs/zerolog"
)

// exportService is the concrete implementation of ExportService.
// Exports operate on the same search selection as the card list, so a
// filtered view downloads exactly what it shows.
type exportService struct {
	cards CardService
	log   zerolog.Logger
}

func newExportService(cards CardService, log zerolog.Logger) *exportService {
	return &exportService{
		cards: cards,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// ExportCards renders the owner's matching cards as a CSV sheet
func (s *exportService) ExportCards(ctx context.Context, ownerID string, q search.Query) ([]byte, error) {
	cards, err := s.cards.Search(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	data, err := spreadsheet.Render(cards)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(cards)).Msg("Card export completed")
	return data, nil
}

// ExportEmails renders a deduplicated plain-text email list from the
// owner's matching cards
func (s *exportService) ExportEmails(ctx context.Context, ownerID string, q search.Query, excludeCompanies string, semicolon bool) ([]byte, error) {
	cards, err := s.cards.Search(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	data := spreadsheet.RenderEmailList(cards, excludeCompanies, semicolon)

	s.log.Info().Int("cards", len(cards)).Msg("Email list export completed")
	return data, nil
}
