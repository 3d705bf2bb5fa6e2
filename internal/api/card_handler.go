package api

import (
	"net/http"
	"strconv"

	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/search"
	"github.com/cardbook-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const pageSize = 20

// CardHandler handles card CRUD, search and duplicate endpoints
type CardHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(services *service.Services, log zerolog.Logger) *CardHandler {
	return &CardHandler{
		services: services,
		log:      log.With().Str("handler", "card").Logger(),
	}
}

// queryFromRequest reads the search selection from query parameters
func queryFromRequest(c *gin.Context) search.Query {
	return search.Query{
		Category:    models.Category(c.Query("category")),
		Keyword:     c.Query("keyword"),
		SearchField: search.Field(c.Query("searchField")),
		SortBy:      search.Order(c.Query("sortBy")),
	}
}

// ListCards handles GET /v1/cards
// The resolved query is echoed back so clients can replay the selection
// when navigating away and back.
func (h *CardHandler) ListCards(c *gin.Context) {
	ctx := c.Request.Context()
	q := search.Normalize(queryFromRequest(c))

	cards, err := h.services.Card.Search(ctx, ownerID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	total := len(cards)
	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"cards":       cards[start:end],
		"total":       total,
		"page":        page,
		"total_pages": totalPages,
		"query":       q,
	})
}

// CreateCard handles POST /v1/cards
func (h *CardHandler) CreateCard(c *gin.Context) {
	var in models.CardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	card, err := h.services.Card.Create(c.Request.Context(), ownerID(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, card)
}

// GetCard handles GET /v1/cards/:id
// Includes the neighbor ids in creation order for detail-view navigation.
func (h *CardHandler) GetCard(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	card, err := h.services.Card.Get(ctx, ownerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	prev, next, err := h.services.Card.Neighbors(ctx, ownerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"card": card}
	if prev != nil {
		resp["previous_id"] = prev.ID
	}
	if next != nil {
		resp["next_id"] = next.ID
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateCard handles PUT /v1/cards/:id
func (h *CardHandler) UpdateCard(c *gin.Context) {
	var in models.CardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	card, err := h.services.Card.Update(c.Request.Context(), ownerID(c), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// DeleteCard handles DELETE /v1/cards/:id
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if err := h.services.Card.Delete(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /v1/cards/stats
func (h *CardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.services.Card.CategoryStats(ctx, ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.services.Card.TotalCount(ctx, ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	recent, err := h.services.Card.RecentCards(ctx, ownerID(c), 5)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"by_category": stats,
		"total":       total,
		"recent":      recent,
	})
}

// ListDuplicates handles GET /v1/duplicates
func (h *CardHandler) ListDuplicates(c *gin.Context) {
	groups, err := h.services.Dedup.FindDuplicates(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	totalCards := 0
	for _, group := range groups {
		totalCards += len(group)
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":      groups,
		"total_cards": totalCards,
	})
}

// CleanDuplicates handles POST /v1/duplicates/clean
func (h *CardHandler) CleanDuplicates(c *gin.Context) {
	strategy := c.Query("strategy")
	if strategy == "" {
		strategy = c.PostForm("strategy")
	}

	deleted, err := h.services.Dedup.CleanDuplicates(c.Request.Context(), ownerID(c), strategy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
