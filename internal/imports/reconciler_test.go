package imports_test

import (
	"context"
	"testing"
	"time"

	"github.com/cardbook-api/internal/imports"
	"github.com/cardbook-api/internal/mocks"
	"github.com/cardbook-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "owner-1"

func newReconciler() (*imports.Reconciler, *mocks.MockCardRepository) {
	repo := mocks.NewMockCardRepository()
	return imports.NewReconciler(repo, zerolog.Nop()), repo
}

func seed(repo *mocks.MockCardRepository, ownerID string, card models.Card) {
	if card.ID == "" {
		card.ID = "seed-" + card.Name + card.MobilePhone + card.Email + card.Company
	}
	card.OwnerID = ownerID
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().Add(-time.Hour)
	}
	repo.Cards[card.ID] = &card
}

func TestImportBatch_InsertsNewRows(t *testing.T) {
	r, repo := newReconciler()

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222"},
		{Name: "Lee", Email: "lee@x.com"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.SkipCount)
	assert.Len(t, repo.Cards, 2)

	for _, c := range repo.Cards {
		assert.Equal(t, owner, c.OwnerID)
		assert.Equal(t, models.CategoryCompany, c.Category)
		assert.NotEmpty(t, c.ID)
	}
}

func TestImportBatch_DuplicateWithinBatchIsSkipped(t *testing.T) {
	r, repo := newReconciler()

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222"},
		{Name: "Kim", MobilePhone: "010-1111-2222"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.SkipCount)
	assert.Len(t, repo.Cards, 1)
	require.Len(t, result.Duplicates, 1)
	assert.Contains(t, result.Duplicates[0], "Kim")
	assert.Contains(t, result.Duplicates[0], "010-1111-2222")
}

func TestImportBatch_DuplicateWithinBatchIsOverwritten(t *testing.T) {
	r, repo := newReconciler()

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222", Company: "Old Corp"},
		{Name: "Kim", MobilePhone: "010-1111-2222", Company: "New Corp"},
	}, models.CategoryCompany, owner, imports.ActionOverwrite)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.UpdateCount)
	require.Len(t, repo.Cards, 1)

	for _, c := range repo.Cards {
		assert.Equal(t, "New Corp", c.Company)
	}
}

func TestImportBatch_BlankNameIsRowError(t *testing.T) {
	r, repo := newReconciler()

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "   "},
		{Name: "Lee"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	// First data row displays as row 2 (header is row 1)
	assert.Contains(t, result.Errors[0], "row 2")
	assert.Len(t, repo.Cards, 1)
}

func TestImportBatch_EmailIsReExtracted(t *testing.T) {
	r, repo := newReconciler()

	_, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", Email: "old a@old.com / new B@New.com"},
	}, models.CategoryCompany, owner, imports.ActionSkip)
	require.NoError(t, err)

	for _, c := range repo.Cards {
		assert.Equal(t, "b@new.com", c.Email)
	}
}

func TestImportBatch_MatchByNameAndEmail(t *testing.T) {
	r, repo := newReconciler()
	seed(repo, owner, models.Card{Name: "Kim", Email: "kim@x.com"})

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", Email: "kim@x.com"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SkipCount)
}

func TestImportBatch_MatchByMobileAlone(t *testing.T) {
	r, repo := newReconciler()
	seed(repo, owner, models.Card{Name: "Completely Different", MobilePhone: "010-1111-2222"})

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SkipCount)
	assert.Equal(t, 0, result.SuccessCount)
}

func TestImportBatch_NameCompanyOnlyWhenPhoneAndEmailAbsent(t *testing.T) {
	r, repo := newReconciler()
	seed(repo, owner, models.Card{Name: "Kim", Company: "Acme"})

	// Row carries a phone, so the name+company rule must not fire even
	// though name and company match an existing card.
	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", Company: "Acme", MobilePhone: "010-9999-8888"},
	}, models.CategoryCompany, owner, imports.ActionSkip)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.SkipCount)

	// Without phone and email the rule applies.
	result, err = r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", Company: "Acme"},
	}, models.CategoryCompany, owner, imports.ActionSkip)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SkipCount)
}

func TestImportBatch_OverwriteReplacesExistingCard(t *testing.T) {
	r, repo := newReconciler()
	seed(repo, owner, models.Card{ID: "old", Name: "Kim", MobilePhone: "010-1111-2222", Company: "Old Corp"})

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222", Company: "New Corp"},
	}, models.CategoryCompany, owner, imports.ActionOverwrite)

	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdateCount)
	require.Len(t, repo.Cards, 1)

	_, oldStillThere := repo.Cards["old"]
	assert.False(t, oldStillThere)
}

func TestImportBatch_DoesNotMatchOtherOwnersCards(t *testing.T) {
	r, repo := newReconciler()
	seed(repo, "other-owner", models.Card{Name: "Kim", MobilePhone: "010-1111-2222"})

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.SkipCount)
	assert.Len(t, repo.Cards, 2)
}

func TestImportBatch_DuplicateDescriptionFieldOrder(t *testing.T) {
	r, repo := newReconciler()
	seed(repo, owner, models.Card{Name: "Kim", MobilePhone: "010-1111-2222"})

	result, err := r.ImportBatch(context.Background(), []models.CardRow{
		{Name: "Kim", MobilePhone: "010-1111-2222", Company: "Acme", Email: "kim@x.com", OfficePhone: "02-123"},
	}, models.CategoryCompany, owner, imports.ActionSkip)

	require.NoError(t, err)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "Kim (mobile: 010-1111-2222, company: Acme, email: kim@x.com, office: 02-123)", result.Duplicates[0])
}
