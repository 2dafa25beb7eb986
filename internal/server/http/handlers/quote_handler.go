package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

// QuoteHandler manages the quote approval flow.
type QuoteHandler struct {
	facade QuoteFacade
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(facade QuoteFacade) *QuoteHandler {
	return &QuoteHandler{facade: facade}
}

// Approve handles POST /api/quotes/:id/approve.
func (h *QuoteHandler) Approve(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	var req dto.ApproveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	approval, err := h.facade.ApproveQuote(c.Request.Context(), userID, id, usecase.ApproveInput{
		Signature:     req.Signature,
		Name:          req.Name,
		Email:         req.Email,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponse(*approval))
}

// Reject handles POST /api/quotes/:id/reject.
func (h *QuoteHandler) Reject(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	var req dto.RejectQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	approval, err := h.facade.RejectQuote(c.Request.Context(), userID, id, usecase.RejectInput{
		Reason:   req.Reason,
		Comments: req.Comments,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponse(*approval))
}

// RequestChanges handles POST /api/quotes/:id/changes.
func (h *QuoteHandler) RequestChanges(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	var req dto.ChangeRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	approval, err := h.facade.RequestQuoteChanges(c.Request.Context(), userID, id, req.Comments)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponse(*approval))
}

// History handles GET /api/quotes/:id/approvals.
func (h *QuoteHandler) History(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := publicID(c)
	if !ok {
		return
	}

	approvals, err := h.facade.QuoteHistory(c.Request.Context(), userID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]dto.ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		resp = append(resp, dto.ToApprovalResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuoteHandler) respondError(c *gin.Context, err error) {
	switch {
	case respondValidation(c, err):
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNotAQuote):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order is past the quote stage"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
