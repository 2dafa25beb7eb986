// Package shipping buys carrier labels through an EasyPost-style REST
// API: a shipment is created with the destination and parcel, the
// carriers answer with rates, and the cheapest rate is purchased.
package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// ErrNoRates indicates no carrier offered a rate for the shipment.
var ErrNoRates = errors.New("no shipping rates available")

// InvalidAddressError reports a destination the carrier API rejected.
type InvalidAddressError struct {
	Message string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid shipping address: %s", e.Message)
}

// TooManyRequestsError represents a rate limiting signal from the
// carrier API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// LabelRequest describes one label purchase.
type LabelRequest struct {
	Reference string
	Recipient string
	To        model.Address
	Shipper   string
	From      model.Address
	Parcel    model.Parcel
}

// Client exposes label purchasing.
type Client interface {
	CreateLabel(ctx context.Context, req LabelRequest) (*model.ShippingLabel, error)
}

// HTTPClient implements Client against an EasyPost style REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the shipping client with a default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse shipping url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("shipping url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// addressPayload mirrors the carrier API address shape.
type addressPayload struct {
	Name    string `json:"name,omitempty"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type parcelPayload struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// rateResponse is one carrier quote. The API serializes the amount as a
// decimal string.
type rateResponse struct {
	ID       string `json:"id"`
	Carrier  string `json:"carrier"`
	Service  string `json:"service"`
	Rate     string `json:"rate"`
	Currency string `json:"currency"`
}

type postageLabelResponse struct {
	LabelURL string `json:"label_url"`
}

type shipmentResponse struct {
	ID           string                `json:"id"`
	TrackingCode string                `json:"tracking_code"`
	Rates        []rateResponse        `json:"rates"`
	SelectedRate *rateResponse         `json:"selected_rate"`
	PostageLabel *postageLabelResponse `json:"postage_label"`
}

// CreateLabel creates a shipment, picks the lowest offered rate and buys
// it, returning the purchased label with its tracking code.
func (c *HTTPClient) CreateLabel(ctx context.Context, req LabelRequest) (*model.ShippingLabel, error) {
	shipment, err := c.post(ctx, "/v2/shipments", map[string]any{
		"shipment": map[string]any{
			"reference":    req.Reference,
			"to_address":   toAddressPayload(req.Recipient, req.To),
			"from_address": toAddressPayload(req.Shipper, req.From),
			"parcel": parcelPayload{
				Length: req.Parcel.Length,
				Width:  req.Parcel.Width,
				Height: req.Parcel.Height,
				Weight: req.Parcel.Weight,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	rate := lowestRate(shipment.Rates)
	if rate == nil {
		return nil, ErrNoRates
	}

	bought, err := c.post(ctx, path.Join("/v2/shipments/", shipment.ID, "/buy"), map[string]any{
		"rate": map[string]string{"id": rate.ID},
	})
	if err != nil {
		return nil, err
	}

	selected := bought.SelectedRate
	if selected == nil {
		selected = rate
	}
	amount, _ := strconv.ParseFloat(selected.Rate, 64)

	label := &model.ShippingLabel{
		ShipmentID:   bought.ID,
		TrackingCode: bought.TrackingCode,
		Carrier:      selected.Carrier,
		Service:      selected.Service,
		Rate:         amount,
		Currency:     selected.Currency,
	}
	if bought.PostageLabel != nil {
		label.LabelURL = bought.PostageLabel.LabelURL
	}
	return label, nil
}

func (c *HTTPClient) post(ctx context.Context, endpointPath string, payload any) (*shipmentResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// EasyPost style basic auth: the API key is the username.
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var shipment shipmentResponse
		if err := json.Unmarshal(data, &shipment); err != nil {
			return nil, err
		}
		return &shipment, nil
	case http.StatusUnprocessableEntity:
		data, _ := io.ReadAll(resp.Body)
		return nil, InvalidAddressError{Message: errorMessage(data)}
	case http.StatusTooManyRequests:
		retryAfter := 5 * time.Second
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		data, _ := io.ReadAll(resp.Body)
		c.logger.Error("shipping request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(data)))
		return nil, fmt.Errorf("shipping error: %s", resp.Status)
	}
}

func toAddressPayload(name string, a model.Address) addressPayload {
	return addressPayload{
		Name:    name,
		Street1: a.Line1,
		Street2: a.Line2,
		City:    a.City,
		State:   a.State,
		Zip:     a.PostalCode,
		Country: a.Country,
	}
}

// lowestRate picks the cheapest quote, mirroring the carrier API's own
// lowest-rate selection. Quotes with unparseable amounts are skipped.
func lowestRate(rates []rateResponse) *rateResponse {
	var best *rateResponse
	var bestAmount float64
	for i := range rates {
		amount, err := strconv.ParseFloat(rates[i].Rate, 64)
		if err != nil {
			continue
		}
		if best == nil || amount < bestAmount {
			best = &rates[i]
			bestAmount = amount
		}
	}
	return best
}

func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return "rejected by carrier API"
}
