package service

import (
	"context"
	"fmt"
	"io"

	"github.com/cardbook-api/internal/imports"
	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/cardbook-api/internal/spreadsheet"
	"github.com/rs/zerolog"
)

// importService is the concrete implementation of ImportService
type importService struct {
	reconciler *imports.Reconciler
	log        zerolog.Logger
}

func newImportService(cards repository.CardRepository, log zerolog.Logger) *importService {
	return &importService{
		reconciler: imports.NewReconciler(cards, log),
		log:        log.With().Str("service", "import").Logger(),
	}
}

// ImportSheet parses an uploaded CSV sheet and reconciles its rows into
// the owner's card set under the given category and duplicate policy.
// A parse failure aborts the whole call; row-level problems do not.
func (s *importService) ImportSheet(ctx context.Context, file io.Reader, category models.Category, ownerID, duplicateAction string) (*models.UploadResult, error) {
	if !models.ValidCategories[category] {
		return nil, fmt.Errorf("%w: invalid category: %s", ErrValidation, category)
	}
	if duplicateAction == "" {
		duplicateAction = imports.ActionSkip
	}

	rows, err := spreadsheet.Parse(file)
	if err != nil {
		return nil, err
	}

	return s.reconciler.ImportBatch(ctx, rows, category, ownerID, duplicateAction)
}
