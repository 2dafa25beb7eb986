package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
)

// ShippingHandler purchases carrier labels for orders.
type ShippingHandler struct {
	facade ShippingFacade
}

// NewShippingHandler constructs ShippingHandler.
func NewShippingHandler(facade ShippingFacade) *ShippingHandler {
	return &ShippingHandler{facade: facade}
}

// CreateLabel handles POST /api/orders/:id/label. An empty body is
// allowed and means the standard parcel.
func (h *ShippingHandler) CreateLabel(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Status(http.StatusBadRequest)
		return
	}
	var parcel model.Parcel
	if req.Parcel != nil {
		parcel = model.Parcel{
			Length: req.Parcel.Length,
			Width:  req.Parcel.Width,
			Height: req.Parcel.Height,
			Weight: req.Parcel.Weight,
		}
	}

	label, order, err := h.facade.CreateShippingLabel(c.Request.Context(), userID, id, parcel)
	if err != nil {
		switch {
		case respondValidation(c, err):
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order is not ready to ship"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToShippingLabelResponse(*label, *order))
}
