package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cardbook-api/internal/config"
	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ImportHandler handles the sheet upload endpoint
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// UploadSheet handles POST /v1/imports
// Multipart form: file (CSV sheet), category, duplicateAction (skip|overwrite)
func (h *ImportHandler) UploadSheet(c *gin.Context) {
	ctx := c.Request.Context()

	category := models.Category(c.PostForm("category"))
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category parameter is required"})
		return
	}

	duplicateAction := c.DefaultPostForm("duplicateAction", "skip")
	if duplicateAction != "skip" && duplicateAction != "overwrite" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicateAction must be skip or overwrite"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv files are supported"})
		return
	}

	result, err := h.services.Import.ImportSheet(ctx, file, category, ownerID(c), duplicateAction)
	if err != nil {
		h.log.Error().Err(err).Str("file", header.Filename).Msg("Import failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
