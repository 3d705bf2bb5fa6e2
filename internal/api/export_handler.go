package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cardbook-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles card and email-list downloads
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// DownloadCards handles GET /v1/exports/cards
// Accepts the same search parameters as the card list, so the download
// matches the current view.
func (h *ExportHandler) DownloadCards(c *gin.Context) {
	data, err := h.services.Export.ExportCards(c.Request.Context(), ownerID(c), queryFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("cards_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// DownloadEmails handles GET /v1/exports/emails
// Extra parameters: excludeCompanies (comma-separated), semicolon (bool)
func (h *ExportHandler) DownloadEmails(c *gin.Context) {
	semicolon := c.Query("semicolon") == "true"

	data, err := h.services.Export.ExportEmails(
		c.Request.Context(), ownerID(c), queryFromRequest(c),
		c.Query("excludeCompanies"), semicolon,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("emails_%s.txt", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}
