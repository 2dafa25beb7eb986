package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

// OrderHandler manages order and timeline endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders. New orders always start as quotes.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	in := usecase.CreateQuoteInput{
		Nickname: req.Nickname,
		DueDate:  req.DueDate,
		Tax:      req.Tax,
		Shipping: req.Shipping,
		Discount: req.Discount,
		Fees:     req.Fees,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, model.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	if req.Address != nil {
		in.Address = &model.Address{
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
	}

	order, err := h.facade.CreateQuote(c.Request.Context(), userID, in)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)

	criteria, ok := listCriteria(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	orders, pagination, err := h.facade.Orders(c.Request.Context(), userID, criteria, page, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(orders)), Pagination: pagination}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Timeline handles GET /api/orders/:id/timeline.
func (h *OrderHandler) Timeline(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	order, projection, err := h.facade.OrderTimeline(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimelineResponse(*order, projection))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		switch {
		case respondValidation(c, err):
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "illegal status transition"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}
