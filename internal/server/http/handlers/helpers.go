package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// publicID parses the :id route parameter. A malformed identifier aborts
// with 404: route shapes are not leaked to probing clients.
func publicID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return uuid.UUID{}, false
	}
	return id, true
}

// respondValidation renders a 422 with the failing field if the error is
// a validation error, and reports whether it handled the error.
func respondValidation(c *gin.Context, err error) bool {
	if v, ok := domainErrors.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: v.Reason, Field: v.Field})
		return true
	}
	return false
}

// pageParams reads page/limit query parameters, tolerating absence.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

// listCriteria parses the order list filter parameters. It reports false
// after writing the error response when a parameter is malformed.
func listCriteria(c *gin.Context) (query.Criteria, bool) {
	var criteria query.Criteria

	// "all" is the status picker's explicit default and means no filter.
	if raw := c.Query("status"); raw != "" && raw != "all" {
		status, err := model.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown status", Field: "status"})
			return criteria, false
		}
		criteria.Status = status
	}

	for _, bound := range []struct {
		param string
		dest  **time.Time
	}{
		{"from", &criteria.From},
		{"to", &criteria.To},
	} {
		if raw := c.Query(bound.param); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "must be RFC 3339", Field: bound.param})
				return criteria, false
			}
			*bound.dest = &t
		}
	}

	criteria.Search = c.Query("q")

	switch key := query.SortKey(c.Query("sort")); key {
	case "", query.SortByCreated, query.SortByTotal, query.SortByNumber:
		criteria.Sort = key
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown sort key", Field: "sort"})
		return criteria, false
	}

	if c.Query("dir") == string(query.Asc) {
		criteria.Dir = query.Asc
	} else {
		criteria.Dir = query.Desc
	}

	return criteria, true
}
