package service

import (
	"context"

	"github.com/cardbook-api/internal/dedup"
	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/rs/zerolog"
)

// dedupService is the concrete implementation of DedupService
type dedupService struct {
	cards repository.CardRepository
	log   zerolog.Logger
}

func newDedupService(cards repository.CardRepository, log zerolog.Logger) *dedupService {
	return &dedupService{
		cards: cards,
		log:   log.With().Str("service", "dedup").Logger(),
	}
}

// FindDuplicates reports all identity-key groups with two or more members
// in one owner's card set. Read-only.
func (s *dedupService) FindDuplicates(ctx context.Context, ownerID string) (map[string][]models.Card, error) {
	cards, err := s.cards.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return dedup.GroupByIdentity(cards), nil
}

// CleanDuplicates deletes every group member except the one retained by
// the strategy ("oldest" keeps the earliest-created member, anything else
// the latest). Returns the total number of deleted cards.
func (s *dedupService) CleanDuplicates(ctx context.Context, ownerID, strategy string) (int, error) {
	groups, err := s.FindDuplicates(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, group := range groups {
		for _, victim := range dedup.Victims(group, strategy) {
			if err := s.cards.Delete(ctx, ownerID, victim.ID); err != nil {
				return deleted, err
			}
			deleted++
		}
	}

	s.log.Info().
		Int("groups", len(groups)).
		Int("deleted", deleted).
		Str("strategy", strategy).
		Msg("Duplicate cleanup completed")

	return deleted, nil
}
