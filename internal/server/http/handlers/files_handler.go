package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
)

// FilesHandler redirects to presigned object storage URLs. Document bytes
// never pass through the API server.
type FilesHandler struct {
	facade FileFacade
}

// NewFilesHandler constructs FilesHandler.
func NewFilesHandler(facade FileFacade) *FilesHandler {
	return &FilesHandler{facade: facade}
}

// Invoice handles GET /api/orders/:id/invoice.
func (h *FilesHandler) Invoice(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	url, err := h.facade.InvoiceURL(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Artwork handles GET /api/orders/:id/artwork/:name.
func (h *FilesHandler) Artwork(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	url, err := h.facade.ArtworkURL(c.Request.Context(), userID, id, c.Param("name"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
