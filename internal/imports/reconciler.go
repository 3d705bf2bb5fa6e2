// Package imports reconciles parsed spreadsheet rows against a user's
// existing cards, deciding insert, overwrite or skip per row.
package imports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/cardbook-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Duplicate actions for an import batch
const (
	ActionSkip      = "skip"
	ActionOverwrite = "overwrite"
)

// Reconciler matches incoming rows against existing cards through a
// priority-ordered identity cascade and applies the batch duplicate policy.
type Reconciler struct {
	cards repository.CardRepository
	log   zerolog.Logger
}

// NewReconciler creates a new Reconciler
func NewReconciler(cards repository.CardRepository, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		cards: cards,
		log:   log.With().Str("component", "import").Logger(),
	}
}

// ImportBatch processes rows in order, one store decision per row.
// Row-level problems are recorded in the result and never abort the batch.
// Display row numbers start at 2 to account for the sheet header.
func (r *Reconciler) ImportBatch(ctx context.Context, rows []models.CardRow, category models.Category, ownerID, duplicateAction string) (*models.UploadResult, error) {
	result := models.NewUploadResult()
	result.TotalRows = len(rows)

	for i := range rows {
		row := rows[i]
		rowNum := i + 2

		validation.NormalizeRow(&row)

		if row.Name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: name is missing", rowNum))
			continue
		}

		existing, err := r.findExisting(ctx, ownerID, &row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: lookup failed", rowNum))
			r.log.Error().Err(err).Int("row", rowNum).Msg("Identity lookup failed")
			continue
		}

		switch {
		case existing != nil && duplicateAction == ActionOverwrite:
			// Replace: the matched record is removed and the incoming row
			// inserted as a fresh card.
			if err := r.cards.Delete(ctx, ownerID, existing.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: overwrite failed", rowNum))
				r.log.Error().Err(err).Int("row", rowNum).Msg("Delete before overwrite failed")
				continue
			}
			if err := r.cards.Create(ctx, buildCard(&row, category, ownerID)); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: overwrite failed", rowNum))
				r.log.Error().Err(err).Int("row", rowNum).Msg("Insert after overwrite failed")
				continue
			}
			result.UpdateCount++

		case existing != nil:
			result.Duplicates = append(result.Duplicates, describeDuplicate(&row))
			result.SkipCount++

		default:
			if err := r.cards.Create(ctx, buildCard(&row, category, ownerID)); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: insert failed", rowNum))
				r.log.Error().Err(err).Int("row", rowNum).Msg("Insert failed")
				continue
			}
			result.SuccessCount++
		}
	}

	r.log.Info().
		Int("total", result.TotalRows).
		Int("inserted", result.SuccessCount).
		Int("updated", result.UpdateCount).
		Int("skipped", result.SkipCount).
		Int("errors", len(result.Errors)).
		Msg("Import batch processed")

	return result, nil
}

// findExisting runs the identity-matching cascade. First hit wins:
//  1. name + mobile phone
//  2. name + email
//  3. mobile phone alone
//  4. name + company, but only when mobile phone AND email are both absent
func (r *Reconciler) findExisting(ctx context.Context, ownerID string, row *models.CardRow) (*models.Card, error) {
	if row.MobilePhone != "" {
		found, err := r.cards.FindByNameAndMobile(ctx, ownerID, row.Name, row.MobilePhone)
		if err != nil || found != nil {
			return found, err
		}
	}

	if row.Email != "" {
		found, err := r.cards.FindByNameAndEmail(ctx, ownerID, row.Name, row.Email)
		if err != nil || found != nil {
			return found, err
		}
	}

	if row.MobilePhone != "" {
		found, err := r.cards.FindByMobile(ctx, ownerID, row.MobilePhone)
		if err != nil || found != nil {
			return found, err
		}
	}

	if row.Company != "" && row.MobilePhone == "" && row.Email == "" {
		found, err := r.cards.FindByNameAndCompany(ctx, ownerID, row.Name, row.Company)
		if err != nil || found != nil {
			return found, err
		}
	}

	return nil, nil
}

// describeDuplicate formats a human-readable description of a skipped row:
// the name plus whichever identifying fields were present.
func describeDuplicate(row *models.CardRow) string {
	var sb strings.Builder
	sb.WriteString(row.Name)

	var infos []string
	if row.MobilePhone != "" {
		infos = append(infos, "mobile: "+row.MobilePhone)
	}
	if row.Company != "" {
		infos = append(infos, "company: "+row.Company)
	}
	if row.Email != "" {
		infos = append(infos, "email: "+row.Email)
	}
	if row.OfficePhone != "" {
		infos = append(infos, "office: "+row.OfficePhone)
	}

	if len(infos) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(infos, ", "))
		sb.WriteString(")")
	}

	return sb.String()
}

func buildCard(row *models.CardRow, category models.Category, ownerID string) *models.Card {
	now := time.Now()
	return &models.Card{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        row.Name,
		Company:     row.Company,
		Department:  row.Department,
		Position:    row.Position,
		Address:     row.Address,
		OfficePhone: row.OfficePhone,
		OfficeFax:   row.OfficeFax,
		MobilePhone: row.MobilePhone,
		Email:       row.Email,
		Website:     row.Website,
		Category:    category,
		Notes:       row.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
