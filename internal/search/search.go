package search

import (
	"sort"
	"strings"

	"github.com/cardbook-api/internal/models"
)

// Field selects which card field(s) a keyword is matched against
type Field string

const (
	FieldAll      Field = "all"
	FieldName     Field = "name"
	FieldCompany  Field = "company"
	FieldPosition Field = "position"
	FieldAddress  Field = "address"
)

// Order selects the result ordering
type Order string

const (
	OrderRecent Order = "recent"
	OrderOldest Order = "oldest"
	OrderName   Order = "name"
)

// Query is one resolved search selection. Category filtering happens at
// the store; keyword, field and order are applied here.
type Query struct {
	Category    models.Category `json:"category,omitempty"`
	Keyword     string          `json:"keyword,omitempty"`
	SearchField Field           `json:"search_field"`
	SortBy      Order           `json:"sort_by"`
}

// Normalize fills in the defaults for blank selectors: field "all",
// order "recent". Unknown values are left alone and fall through to the
// default branches during resolution, matching the original behavior.
func Normalize(q Query) Query {
	if strings.TrimSpace(string(q.SearchField)) == "" {
		q.SearchField = FieldAll
	}
	if strings.TrimSpace(string(q.SortBy)) == "" {
		q.SortBy = OrderRecent
	}
	q.Keyword = strings.TrimSpace(q.Keyword)
	return q
}

// Resolve filters and orders an owner-scoped card set according to the
// query. The input slice is not modified.
func Resolve(cards []models.Card, q Query) []models.Card {
	q = Normalize(q)

	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if q.Keyword == "" || matches(&c, q.SearchField, q.Keyword) {
			out = append(out, c)
		}
	}

	sortCards(out, q.SortBy)
	return out
}

// matches reports whether the keyword is a case-insensitive substring of
// the selected field, or of any searchable field for FieldAll.
func matches(c *models.Card, field Field, keyword string) bool {
	kw := strings.ToLower(keyword)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), kw)
	}

	switch field {
	case FieldName:
		return contains(c.Name)
	case FieldCompany:
		return contains(c.Company)
	case FieldPosition:
		return contains(c.Position)
	case FieldAddress:
		return contains(c.Address)
	default:
		return contains(c.Name) || contains(c.Company) || contains(c.Position) || contains(c.Address)
	}
}

func sortCards(cards []models.Card, order Order) {
	switch order {
	case OrderName:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Name < cards[j].Name
		})
	case OrderOldest:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreatedAt.Before(cards[j].CreatedAt)
		})
	default:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreatedAt.After(cards[j].CreatedAt)
		})
	}
}
