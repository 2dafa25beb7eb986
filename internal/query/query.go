// Package query implements the collection view semantics shared by the
// list endpoints and the dashboard: status and date-range filters,
// free-text search, sorting and pagination. All functions are pure; the
// input slice is never mutated.
package query

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// SortKey selects the order list sort column.
type SortKey string

const (
	SortByCreated SortKey = "created"
	SortByTotal   SortKey = "total"
	SortByNumber  SortKey = "number"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Criteria describes one list request. A zero Status means "all"; nil
// date bounds are open; an empty search matches everything.
type Criteria struct {
	Status model.Status
	From   *time.Time
	To     *time.Time
	Search string
	Sort   SortKey
	Dir    Direction
}

// FilterStatus keeps records whose status equals the given one. An empty
// status returns the input unchanged, order preserved.
func FilterStatus(orders []model.Order, status model.Status) []model.Order {
	if status == "" {
		return orders
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// FilterDateRange keeps records created within [from, to]. Both bounds
// are inclusive; nil bounds are open.
func FilterDateRange(orders []model.Order, from, to *time.Time) []model.Order {
	if from == nil && to == nil {
		return orders
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && o.CreatedAt.After(*to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Search keeps records whose number or nickname contains the term,
// case-insensitively.
func Search(orders []model.Order, term string) []model.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Number), term) ||
			strings.Contains(strings.ToLower(o.Nickname), term) {
			out = append(out, o)
		}
	}
	return out
}

// Sort returns a sorted copy of the collection. The sort is stable so
// equal keys keep their incoming order.
func Sort(orders []model.Order, key SortKey, dir Direction) []model.Order {
	out := make([]model.Order, len(orders))
	copy(out, orders)

	less := func(a, b model.Order) bool {
		switch key {
		case SortByTotal:
			return a.Totals.Total < b.Totals.Total
		case SortByNumber:
			return numberLess(a.Number, b.Number)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// numberLess compares order numbers by their numeric suffix so that
// P-1999 sorts before P-10000. Numbers without a parseable suffix fall
// back to plain string comparison.
func numberLess(a, b string) bool {
	av, aok := numberValue(a)
	bv, bok := numberValue(b)
	if aok && bok {
		return av < bv
	}
	return a < b
}

func numberValue(number string) (int64, bool) {
	i := strings.IndexByte(number, '-')
	if i < 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(number[i+1:], 10, 64)
	return v, err == nil
}

// Apply runs the full criteria pipeline: filters, search, then sort.
func Apply(orders []model.Order, c Criteria) []model.Order {
	out := FilterStatus(orders, c.Status)
	out = FilterDateRange(out, c.From, c.To)
	out = Search(out, c.Search)
	if c.Sort != "" {
		out = Sort(out, c.Sort, c.Dir)
	}
	return out
}

// Pagination carries the metadata needed to render paging controls.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes pages = ceil(total/limit) and clamps the
// requested page to [1, pages]. Limit falls back to a sane default so a
// zero request can never divide by zero or fetch unbounded pages.
func NewPagination(page, limit, total int) Pagination {
	if limit <= 0 {
		limit = 20
	}
	if total < 0 {
		total = 0
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Offset returns the SQL offset of the clamped page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Slice cuts the clamped page out of an in-memory collection.
func (p Pagination) Slice(orders []model.Order) []model.Order {
	start := p.Offset()
	if start >= len(orders) {
		return nil
	}
	end := start + p.Limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}
