package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cardbook-api/internal/config"
	"github.com/cardbook-api/internal/mocks"
	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/cardbook-api/internal/search"
	"github.com/cardbook-api/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func newTestServices() (*service.Services, *mocks.MockCardRepository, *mocks.MockUserRepository) {
	cardRepo := mocks.NewMockCardRepository()
	userRepo := mocks.NewMockUserRepository()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
	}
	repos := &repository.Repositories{Card: cardRepo, User: userRepo}
	return service.NewServices(repos, cfg, zerolog.Nop()), cardRepo, userRepo
}

func seedCard(repo *mocks.MockCardRepository, ownerID, id, name, mobile, email string, createdAt time.Time) {
	repo.Cards[id] = &models.Card{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		MobilePhone: mobile,
		Email:       email,
		Category:    models.CategoryCompany,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestCardService_CreateAndGet(t *testing.T) {
	svcs, _, _ := newTestServices()
	ctx := context.Background()

	card, err := svcs.Card.Create(ctx, ownerA, &models.CardInput{
		Name:     "  Kim  ",
		Category: models.CategoryCompany,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kim", card.Name)
	assert.NotEmpty(t, card.ID)

	got, err := svcs.Card.Get(ctx, ownerA, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)
}

func TestCardService_CreateRejectsInvalidInput(t *testing.T) {
	svcs, _, _ := newTestServices()
	ctx := context.Background()

	_, err := svcs.Card.Create(ctx, ownerA, &models.CardInput{Name: "  ", Category: models.CategoryCompany})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svcs.Card.Create(ctx, ownerA, &models.CardInput{Name: "Kim", Category: "FRIENDS"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCardService_GetDoesNotCrossOwners(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	seedCard(repo, ownerB, "card-b", "Lee", "", "", time.Now())

	_, err := svcs.Card.Get(ctx, ownerA, "card-b")
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svcs.Card.Delete(ctx, ownerA, "card-b")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Contains(t, repo.Cards, "card-b")
}

func TestCardService_UpdateRewritesFields(t *testing.T) {
	svcs, _, _ := newTestServices()
	ctx := context.Background()

	card, err := svcs.Card.Create(ctx, ownerA, &models.CardInput{
		Name: "Kim", Company: "Acme", Category: models.CategoryCompany,
	})
	require.NoError(t, err)

	updated, err := svcs.Card.Update(ctx, ownerA, card.ID, &models.CardInput{
		Name: "Kim", Category: models.CategorySchool,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategorySchool, updated.Category)
	assert.Equal(t, "", updated.Company)
}

func TestCardService_SearchIsOwnerScoped(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "a1", "Kim", "", "", base)
	seedCard(repo, ownerB, "b1", "Kim", "", "", base)

	got, err := svcs.Card.Search(ctx, ownerA, search.Query{Keyword: "kim"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestCardService_SearchRejectsUnknownCategory(t *testing.T) {
	svcs, _, _ := newTestServices()

	_, err := svcs.Card.Search(context.Background(), ownerA, search.Query{Category: "FRIENDS"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCardService_NeighborsFollowCreationOrder(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "c1", "First", "", "", base)
	seedCard(repo, ownerA, "c2", "Middle", "", "", base.Add(time.Hour))
	seedCard(repo, ownerA, "c3", "Last", "", "", base.Add(2*time.Hour))

	prev, next, err := svcs.Card.Neighbors(ctx, ownerA, "c2")
	require.NoError(t, err)
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, "c1", prev.ID)
	assert.Equal(t, "c3", next.ID)

	prev, next, err = svcs.Card.Neighbors(ctx, ownerA, "c1")
	require.NoError(t, err)
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, "c2", next.ID)
}

func TestCardService_CategoryStatsAndRecent(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, cat := range []models.Category{models.CategoryCompany, models.CategoryCompany, models.CategorySchool} {
		id := "s" + string(rune('1'+i))
		repo.Cards[id] = &models.Card{ID: id, OwnerID: ownerA, Name: "N" + id, Category: cat, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
	}

	stats, err := svcs.Card.CategoryStats(ctx, ownerA)
	require.NoError(t, err)
	assert.Equal(t, 2, stats[models.CategoryCompany])
	assert.Equal(t, 1, stats[models.CategorySchool])

	recent, err := svcs.Card.RecentCards(ctx, ownerA, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "s3", recent[0].ID)

	total, err := svcs.Card.TotalCount(ctx, ownerA)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestDedupService_FindDuplicatesIsOwnerScoped(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "a1", "Kim", "010-1111-2222", "", base)
	seedCard(repo, ownerA, "a2", "Kim", "010-1111-2222", "", base.Add(time.Hour))
	seedCard(repo, ownerB, "b1", "Kim", "010-1111-2222", "", base)

	groups, err := svcs.Dedup.FindDuplicates(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups["Kim|010-1111-2222"], 2)
}

func TestDedupService_CleanKeepsOldest(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "a1", "Kim", "010-1111-2222", "", base)
	seedCard(repo, ownerA, "a2", "Kim", "010-1111-2222", "", base.Add(time.Hour))
	seedCard(repo, ownerA, "a3", "Kim", "010-1111-2222", "", base.Add(2*time.Hour))

	deleted, err := svcs.Dedup.CleanDuplicates(ctx, ownerA, "oldest")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	require.Len(t, repo.Cards, 1)
	assert.Contains(t, repo.Cards, "a1")
}

func TestDedupService_CleanDefaultKeepsNewest(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "a1", "Kim", "010-1111-2222", "", base)
	seedCard(repo, ownerA, "a2", "Kim", "010-1111-2222", "", base.Add(time.Hour))

	deleted, err := svcs.Dedup.CleanDuplicates(ctx, ownerA, "")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Contains(t, repo.Cards, "a2")
	assert.NotContains(t, repo.Cards, "a1")
}

func TestImportService_ParsesAndReconciles(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()

	sheet := strings.Join([]string{
		"name,company,department,position,address,office_phone,office_fax,mobile_phone,email,website,notes",
		"Kim,Acme,,,,,,010-1111-2222,kim@x.com,,",
		"Kim,Acme,,,,,,010-1111-2222,kim@x.com,,",
		",,,,,,,,,,",
	}, "\n")

	result, err := svcs.Import.ImportSheet(ctx, strings.NewReader(sheet), models.CategoryCompany, ownerA, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.SkipCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 4")
	assert.Len(t, repo.Cards, 1)
}

func TestImportService_RejectsInvalidCategory(t *testing.T) {
	svcs, _, _ := newTestServices()

	_, err := svcs.Import.ImportSheet(context.Background(), strings.NewReader("name\n"), "FRIENDS", ownerA, "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestExportService_CardsMatchSearchSelection(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "a1", "Kim", "", "kim@x.com", base)
	seedCard(repo, ownerA, "a2", "Lee", "", "lee@x.com", base.Add(time.Hour))

	data, err := svcs.Export.ExportCards(ctx, ownerA, search.Query{Keyword: "kim", SearchField: search.FieldName})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Kim")
	assert.NotContains(t, out, "Lee")
}

func TestExportService_EmailList(t *testing.T) {
	svcs, repo, _ := newTestServices()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedCard(repo, ownerA, "a1", "Kim", "", "kim@x.com", base)
	seedCard(repo, ownerA, "a2", "Lee", "", "lee@x.com", base.Add(time.Hour))

	data, err := svcs.Export.ExportEmails(ctx, ownerA, search.Query{}, "", true)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "kim@x.com;")
	assert.Contains(t, out, "lee@x.com;")
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svcs, _, userRepo := newTestServices()
	ctx := context.Background()

	user, err := svcs.User.Register(ctx, &models.RegisterRequest{
		Email:           "Kim@Example.com",
		Password:        "secret-pass",
		ConfirmPassword: "secret-pass",
		Name:            "Kim",
	})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)

	loggedIn, token, err := svcs.User.Login(ctx, "kim@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, loggedIn.LastLogin)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.Subject)

	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
}

func TestUserService_RegisterRejectsTakenEmail(t *testing.T) {
	svcs, _, _ := newTestServices()
	ctx := context.Background()

	req := &models.RegisterRequest{
		Email: "kim@example.com", Password: "secret-pass",
		ConfirmPassword: "secret-pass", Name: "Kim",
	}
	_, err := svcs.User.Register(ctx, req)
	require.NoError(t, err)

	_, err = svcs.User.Register(ctx, req)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUserService_LoginFailures(t *testing.T) {
	svcs, _, _ := newTestServices()
	ctx := context.Background()

	_, _, err := svcs.User.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svcs.User.Register(ctx, &models.RegisterRequest{
		Email: "kim@example.com", Password: "secret-pass",
		ConfirmPassword: "secret-pass", Name: "Kim",
	})
	require.NoError(t, err)

	_, _, err = svcs.User.Login(ctx, "kim@example.com", "wrong-pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
