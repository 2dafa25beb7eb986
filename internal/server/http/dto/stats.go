package dto

// DashboardResponse summarizes the caller's recent orders.
type DashboardResponse struct {
	StatusCounts map[string]int `json:"status_counts"`
	OpenOrders   int            `json:"open_orders"`
	Outstanding  float64        `json:"outstanding"`
}

// ErrorResponse is the uniform error payload. Field is set for
// validation failures so clients can render inline errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
