package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/cardbook-api/internal/models"
)

// MockCardRepository is an in-memory implementation of CardRepository
type MockCardRepository struct {
	Cards       map[string]*models.Card
	CreateError error
	DeleteError error
	DeleteCalls int
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{
		Cards: make(map[string]*models.Card),
	}
}

func (m *MockCardRepository) Create(ctx context.Context, card *models.Card) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	cp := *card
	m.Cards[card.ID] = &cp
	return nil
}

func (m *MockCardRepository) Update(ctx context.Context, card *models.Card) error {
	if existing, ok := m.Cards[card.ID]; ok && existing.OwnerID == card.OwnerID {
		cp := *card
		m.Cards[card.ID] = &cp
	}
	return nil
}

func (m *MockCardRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Card, error) {
	if card, ok := m.Cards[id]; ok && card.OwnerID == ownerID {
		cp := *card
		return &cp, nil
	}
	return nil, nil
}

func (m *MockCardRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if card, ok := m.Cards[id]; ok && card.OwnerID == ownerID {
		delete(m.Cards, id)
		m.DeleteCalls++
	}
	return nil
}

func (m *MockCardRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	var cards []models.Card
	for _, c := range m.Cards {
		if c.OwnerID == ownerID {
			cards = append(cards, *c)
		}
	}
	sortByCreation(cards)
	return cards, nil
}

func (m *MockCardRepository) ListByOwnerAndCategory(ctx context.Context, ownerID string, category models.Category) ([]models.Card, error) {
	var cards []models.Card
	for _, c := range m.Cards {
		if c.OwnerID == ownerID && c.Category == category {
			cards = append(cards, *c)
		}
	}
	sortByCreation(cards)
	return cards, nil
}

func (m *MockCardRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	count := 0
	for _, c := range m.Cards {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (m *MockCardRepository) FindByNameAndMobile(ctx context.Context, ownerID, name, mobile string) (*models.Card, error) {
	return m.findFirst(ownerID, func(c *models.Card) bool {
		return c.Name == name && c.MobilePhone == mobile
	})
}

func (m *MockCardRepository) FindByNameAndEmail(ctx context.Context, ownerID, name, email string) (*models.Card, error) {
	return m.findFirst(ownerID, func(c *models.Card) bool {
		return c.Name == name && c.Email == email
	})
}

func (m *MockCardRepository) FindByMobile(ctx context.Context, ownerID, mobile string) (*models.Card, error) {
	return m.findFirst(ownerID, func(c *models.Card) bool {
		return c.MobilePhone == mobile
	})
}

func (m *MockCardRepository) FindByNameAndCompany(ctx context.Context, ownerID, name, company string) (*models.Card, error) {
	return m.findFirst(ownerID, func(c *models.Card) bool {
		return c.Name == name && c.Company == company
	})
}

func (m *MockCardRepository) Previous(ctx context.Context, ownerID string, createdAt time.Time, id string) (*models.Card, error) {
	cards, _ := m.ListByOwner(ctx, ownerID)
	var prev *models.Card
	for i := range cards {
		c := cards[i]
		if c.CreatedAt.Before(createdAt) || (c.CreatedAt.Equal(createdAt) && c.ID < id) {
			prev = &c
		}
	}
	if prev != nil {
		cp := *prev
		return &cp, nil
	}
	return nil, nil
}

func (m *MockCardRepository) Next(ctx context.Context, ownerID string, createdAt time.Time, id string) (*models.Card, error) {
	cards, _ := m.ListByOwner(ctx, ownerID)
	for i := range cards {
		c := cards[i]
		if c.CreatedAt.After(createdAt) || (c.CreatedAt.Equal(createdAt) && c.ID > id) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockCardRepository) findFirst(ownerID string, match func(*models.Card) bool) (*models.Card, error) {
	cards, _ := m.ListByOwner(context.Background(), ownerID)
	for i := range cards {
		if match(&cards[i]) {
			cp := cards[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func sortByCreation(cards []models.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
			return cards[i].ID < cards[j].ID
		}
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
}

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	cp := *user
	m.Users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.Users[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.Users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	user, _ := m.GetByEmail(ctx, email)
	return user != nil, nil
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if user, ok := m.Users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}
