package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
)

// ProductHandler serves the mirrored supplier catalog.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	products, pagination, err := h.facade.Products(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products)), Pagination: pagination}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.ToProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/products/:sku.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("sku"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(*product))
}
