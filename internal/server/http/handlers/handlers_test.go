package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/dto"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/middleware"
	testhelpers "github.com/hypnotizedent/printshop-os-sub005/internal/test"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomASCIIString(7, 14) + "@example.com"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Email: email, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotEmail, gotPassword string) (string, error) {
		if gotEmail != email || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotEmail, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "printshop_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named printshop_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"email":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"email":"a@b.c","password":"p"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"email":"a@b.c","password":"p"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Email: "user@example.com", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "wrong password", body: []byte(`{"email":"a@b.c","password":"p"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"email":"a@b.c","password":"p"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	body, _ := json.Marshal(dto.CreateOrderRequest{
		Nickname: "banquet shirts",
		Items:    []dto.LineItemRequest{{Description: "Heavy Cotton Tee", Quantity: 24, UnitPrice: 12.50}},
		Tax:      30,
	})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).Create, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Status != string(model.StatusQuote) {
		t.Fatalf("new orders must begin as quotes, got %q", decoded.Status)
	}
	if decoded.StatusLabel != "Quote" || decoded.StatusColor != string(model.ColorBlue) {
		t.Fatalf("unexpected status presentation: %q %q", decoded.StatusLabel, decoded.StatusColor)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
		field  string
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "no items", body: []byte(`{"nickname":"x","items":[]}`), facade: testhelpers.OrderFacadeStub{CreateFn: func(context.Context, int64, usecase.CreateQuoteInput) (*model.Order, error) {
			return nil, domainErrors.NewValidation("items", "at least one line item is required")
		}}, status: http.StatusUnprocessableEntity, field: "items"},
		{name: "internal", body: []byte(`{"nickname":"x","items":[{"description":"tee","quantity":1,"unit_price":1}]}`), facade: testhelpers.OrderFacadeStub{CreateFn: func(context.Context, int64, usecase.CreateQuoteInput) (*model.Order, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(tt.facade).Create, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.field != "" {
				var decoded dto.ErrorResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if decoded.Field != tt.field {
					t.Fatalf("expected failing field %q, got %q", tt.field, decoded.Field)
				}
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	var gotCriteria query.Criteria
	var gotPage, gotLimit int
	facade := testhelpers.OrderFacadeStub{ListFn: func(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
		gotCriteria, gotPage, gotLimit = c, page, limit
		orders := []model.Order{{PublicID: uuid.New(), Number: "P-1001", Status: model.StatusShipped}}
		return orders, query.NewPagination(page, limit, 45), nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=shipped&q=banquet&sort=total&dir=asc&page=2&limit=10", NewOrderHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotCriteria.Status != model.StatusShipped || gotCriteria.Search != "banquet" {
		t.Fatalf("unexpected criteria: %+v", gotCriteria)
	}
	if gotCriteria.Sort != query.SortByTotal || gotCriteria.Dir != query.Asc {
		t.Fatalf("unexpected ordering: %q %q", gotCriteria.Sort, gotCriteria.Dir)
	}
	if gotPage != 2 || gotLimit != 10 {
		t.Fatalf("unexpected paging: page=%d limit=%d", gotPage, gotLimit)
	}

	var decoded dto.OrderListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Pagination.Total != 45 || decoded.Pagination.Pages != 5 {
		t.Fatalf("unexpected pagination: %+v", decoded.Pagination)
	}
}

func TestOrderHandlerListStatusAll(t *testing.T) {
	var gotCriteria query.Criteria
	facade := testhelpers.OrderFacadeStub{ListFn: func(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
		gotCriteria = c
		return nil, query.NewPagination(page, limit, 0), nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=all", NewOrderHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotCriteria.Status != "" {
		t.Fatalf("expected no status filter, got %q", gotCriteria.Status)
	}
}

func TestOrderHandlerListBadParams(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		field string
	}{
		{name: "unknown status", path: "/orders?status=teleported", field: "status"},
		{name: "bad from", path: "/orders?from=yesterday", field: "from"},
		{name: "bad to", path: "/orders?to=tomorrow", field: "to"},
		{name: "unknown sort", path: "/orders?sort=rating", field: "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/orders", tt.path, NewOrderHandler(testhelpers.OrderFacadeStub{}).List, asUser(1), nil, nil)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.Code)
			}
			var decoded dto.ErrorResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if decoded.Field != tt.field {
				t.Fatalf("expected failing field %q, got %q", tt.field, decoded.Field)
			}
		})
	}
}

func TestOrderHandlerGet(t *testing.T) {
	id := uuid.New()
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/"+id.String(), NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != id.String() {
		t.Fatalf("expected order %s, got %s", id, decoded.ID)
	}
}

func TestOrderHandlerGetFailures(t *testing.T) {
	notFound := testhelpers.OrderFacadeStub{GetFn: func(context.Context, int64, uuid.UUID) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}

	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		path   string
		status int
	}{
		{name: "malformed id", path: "/orders/not-a-uuid", status: http.StatusNotFound},
		{name: "missing order", facade: notFound, path: "/orders/" + uuid.NewString(), status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/orders/:id", tt.path, NewOrderHandler(tt.facade).Get, asUser(1), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerTimeline(t *testing.T) {
	id := uuid.New()
	facade := testhelpers.OrderFacadeStub{TimelineFn: func(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, model.Projection, error) {
		order := &model.Order{PublicID: publicID, Number: "P-1001", Status: model.StatusShipped}
		return order, model.ProjectTimeline(order.Status), nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders/:id/timeline", "/orders/"+id.String()+"/timeline", NewOrderHandler(facade).Timeline, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.TimelineResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Cancelled {
		t.Fatal("shipped order must not project as cancelled")
	}
	if len(decoded.Steps) != 6 {
		t.Fatalf("expected 6 milestones, got %d", len(decoded.Steps))
	}
	if decoded.Steps[4].State != string(model.MilestoneActive) {
		t.Fatalf("expected shipped milestone to be active, got %q", decoded.Steps[4].State)
	}
	if decoded.Steps[3].State != string(model.MilestoneCompleted) || decoded.Steps[5].State != string(model.MilestonePending) {
		t.Fatalf("unexpected neighbor states: %q %q", decoded.Steps[3].State, decoded.Steps[5].State)
	}
}

func TestOrderHandlerTimelineCancelled(t *testing.T) {
	id := uuid.New()
	facade := testhelpers.OrderFacadeStub{TimelineFn: func(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, model.Projection, error) {
		order := &model.Order{PublicID: publicID, Number: "P-1001", Status: model.StatusCancelled}
		return order, model.ProjectTimeline(order.Status), nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders/:id/timeline", "/orders/"+id.String()+"/timeline", NewOrderHandler(facade).Timeline, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.TimelineResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !decoded.Cancelled {
		t.Fatal("expected cancelled flag")
	}
	if len(decoded.Steps) != 0 {
		t.Fatalf("cancelled orders carry no milestones, got %d", len(decoded.Steps))
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	id := uuid.New()
	body := []byte(`{"status":"shipped"}`)
	resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/"+id.String()+"/status", NewOrderHandler(testhelpers.OrderFacadeStub{}).UpdateStatus, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Status != string(model.StatusShipped) {
		t.Fatalf("expected shipped, got %q", decoded.Status)
	}
}

func TestOrderHandlerUpdateStatusFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "unknown status", body: []byte(`{"status":"teleported"}`), facade: testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, int64, uuid.UUID, string) (*model.Order, error) {
			return nil, domainErrors.NewValidation("status", "unknown status")
		}}, status: http.StatusUnprocessableEntity},
		{name: "illegal transition", body: []byte(`{"status":"pending"}`), facade: testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, int64, uuid.UUID, string) (*model.Order, error) {
			return nil, domainErrors.ErrInvalidTransition
		}}, status: http.StatusConflict},
		{name: "missing", body: []byte(`{"status":"shipped"}`), facade: testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, int64, uuid.UUID, string) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "internal", body: []byte(`{"status":"shipped"}`), facade: testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, int64, uuid.UUID, string) (*model.Order, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/"+uuid.NewString()+"/status", NewOrderHandler(tt.facade).UpdateStatus, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestShippingHandlerCreateLabel(t *testing.T) {
	id := uuid.New()
	var gotParcel model.Parcel
	facade := testhelpers.ShippingFacadeStub{CreateLabelFn: func(ctx context.Context, userID int64, publicID uuid.UUID, parcel model.Parcel) (*model.ShippingLabel, *model.Order, error) {
		gotParcel = parcel
		label := &model.ShippingLabel{ShipmentID: "shp_1", TrackingCode: "9400111899562539802544", Carrier: "USPS", Service: "Priority", Rate: 7.33, LabelURL: "https://labels.example.com/shp_1.png"}
		order := &model.Order{PublicID: publicID, UserID: userID, Number: "P-1042", Status: model.StatusShipped}
		return label, order, nil
	}}

	body := []byte(`{"parcel":{"length":12,"width":9,"height":3,"weight":22}}`)
	resp := performRequest(t, http.MethodPost, "/orders/:id/label", "/orders/"+id.String()+"/label", NewShippingHandler(facade).CreateLabel, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotParcel.Length != 12 || gotParcel.Weight != 22 {
		t.Fatalf("unexpected parcel passed to facade: %+v", gotParcel)
	}

	var decoded dto.ShippingLabelResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.TrackingCode != "9400111899562539802544" || decoded.LabelURL != "https://labels.example.com/shp_1.png" {
		t.Fatalf("unexpected label: %+v", decoded)
	}
	if decoded.Order.Status != string(model.StatusShipped) {
		t.Fatalf("expected shipped order in response, got %q", decoded.Order.Status)
	}
}

func TestShippingHandlerCreateLabelEmptyBody(t *testing.T) {
	id := uuid.New()
	var gotParcel model.Parcel
	facade := testhelpers.ShippingFacadeStub{CreateLabelFn: func(ctx context.Context, userID int64, publicID uuid.UUID, parcel model.Parcel) (*model.ShippingLabel, *model.Order, error) {
		gotParcel = parcel
		return testhelpers.ShippingFacadeStub{}.CreateShippingLabel(ctx, userID, publicID, parcel)
	}}

	resp := performRequest(t, http.MethodPost, "/orders/:id/label", "/orders/"+id.String()+"/label", NewShippingHandler(facade).CreateLabel, asUser(1), nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for empty body, got %d", resp.Code)
	}
	if gotParcel != (model.Parcel{}) {
		t.Fatalf("expected zero parcel for empty body, got %+v", gotParcel)
	}
}

func TestShippingHandlerCreateLabelFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.ShippingFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "no address", facade: testhelpers.ShippingFacadeStub{CreateLabelFn: func(context.Context, int64, uuid.UUID, model.Parcel) (*model.ShippingLabel, *model.Order, error) {
			return nil, nil, domainErrors.NewValidation("address", "order has no shipping address")
		}}, status: http.StatusUnprocessableEntity},
		{name: "not ready to ship", facade: testhelpers.ShippingFacadeStub{CreateLabelFn: func(context.Context, int64, uuid.UUID, model.Parcel) (*model.ShippingLabel, *model.Order, error) {
			return nil, nil, domainErrors.ErrInvalidTransition
		}}, status: http.StatusConflict},
		{name: "missing", facade: testhelpers.ShippingFacadeStub{CreateLabelFn: func(context.Context, int64, uuid.UUID, model.Parcel) (*model.ShippingLabel, *model.Order, error) {
			return nil, nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "internal", facade: testhelpers.ShippingFacadeStub{CreateLabelFn: func(context.Context, int64, uuid.UUID, model.Parcel) (*model.ShippingLabel, *model.Order, error) {
			return nil, nil, errors.New("carrier down")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders/:id/label", "/orders/"+uuid.NewString()+"/label", NewShippingHandler(tt.facade).CreateLabel, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestQuoteHandlerApprove(t *testing.T) {
	id := uuid.New()
	body, _ := json.Marshal(dto.ApproveQuoteRequest{Signature: "Jamie Rivera", Name: "Jamie Rivera", Email: "jamie@example.com", TermsAccepted: true})
	resp := performRequest(t, http.MethodPost, "/quotes/:id/approve", "/quotes/"+id.String()+"/approve", NewQuoteHandler(testhelpers.QuoteFacadeStub{}).Approve, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ApprovalResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Kind != string(model.ApprovalKindApprove) || decoded.Signature != "Jamie Rivera" {
		t.Fatalf("unexpected approval: %+v", decoded)
	}
}

func TestQuoteHandlerApproveFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.QuoteFacadeStub
		body   []byte
		status int
		field  string
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "missing signature", body: []byte(`{"name":"Jamie","email":"jamie@example.com","terms_accepted":true}`), facade: testhelpers.QuoteFacadeStub{ApproveFn: func(context.Context, int64, uuid.UUID, usecase.ApproveInput) (*model.Approval, error) {
			return nil, domainErrors.NewValidation("signature", "signature is required")
		}}, status: http.StatusUnprocessableEntity, field: "signature"},
		{name: "not a quote", body: []byte(`{"signature":"J","name":"J","email":"j@example.com","terms_accepted":true}`), facade: testhelpers.QuoteFacadeStub{ApproveFn: func(context.Context, int64, uuid.UUID, usecase.ApproveInput) (*model.Approval, error) {
			return nil, domainErrors.ErrNotAQuote
		}}, status: http.StatusConflict},
		{name: "missing", body: []byte(`{"signature":"J","name":"J","email":"j@example.com","terms_accepted":true}`), facade: testhelpers.QuoteFacadeStub{ApproveFn: func(context.Context, int64, uuid.UUID, usecase.ApproveInput) (*model.Approval, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/quotes/:id/approve", "/quotes/"+uuid.NewString()+"/approve", NewQuoteHandler(tt.facade).Approve, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.field != "" {
				var decoded dto.ErrorResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if decoded.Field != tt.field {
					t.Fatalf("expected failing field %q, got %q", tt.field, decoded.Field)
				}
			}
		})
	}
}

func TestQuoteHandlerReject(t *testing.T) {
	body, _ := json.Marshal(dto.RejectQuoteRequest{Reason: "price too high"})
	resp := performRequest(t, http.MethodPost, "/quotes/:id/reject", "/quotes/"+uuid.NewString()+"/reject", NewQuoteHandler(testhelpers.QuoteFacadeStub{}).Reject, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ApprovalResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Kind != string(model.ApprovalKindReject) || decoded.Reason != "price too high" {
		t.Fatalf("unexpected rejection: %+v", decoded)
	}
}

func TestQuoteHandlerRequestChanges(t *testing.T) {
	body, _ := json.Marshal(dto.ChangeRequestPayload{Comments: "swap the front print for the back"})
	resp := performRequest(t, http.MethodPost, "/quotes/:id/changes", "/quotes/"+uuid.NewString()+"/changes", NewQuoteHandler(testhelpers.QuoteFacadeStub{}).RequestChanges, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestQuoteHandlerHistory(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/quotes/:id/approvals", "/quotes/"+uuid.NewString()+"/approvals", NewQuoteHandler(testhelpers.QuoteFacadeStub{}).History, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.ApprovalResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one approval, got %d", len(decoded))
	}
}

func TestProductHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products", "/products?q=tee", NewProductHandler(testhelpers.ProductFacadeStub{}).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ProductListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Products) != 1 || decoded.Products[0].SKU != "G500-BLK-L" {
		t.Fatalf("unexpected products: %+v", decoded.Products)
	}
}

func TestProductHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products/:sku", "/products/G500-BLK-L", NewProductHandler(testhelpers.ProductFacadeStub{}).Get, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	missing := testhelpers.ProductFacadeStub{GetFn: func(context.Context, string) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/products/:sku", "/products/NOPE", NewProductHandler(missing).Get, asUser(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDashboardHandlerStats(t *testing.T) {
	facade := testhelpers.StatsFacadeStub{DashboardFn: func(context.Context, int64) (*usecase.DashboardStats, error) {
		return &usecase.DashboardStats{
			StatusCounts: map[model.Status]int{model.StatusQuote: 2, model.StatusCancelled: 1},
			OpenOrders:   3,
			Outstanding:  350,
		}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/dashboard/stats", "/dashboard/stats", NewDashboardHandler(facade).Stats, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.DashboardResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.StatusCounts["quote"] != 2 || decoded.OpenOrders != 3 || decoded.Outstanding != 350 {
		t.Fatalf("unexpected dashboard payload: %+v", decoded)
	}
}

func TestFilesHandlerInvoice(t *testing.T) {
	id := uuid.New()
	resp := performRequest(t, http.MethodGet, "/orders/:id/invoice", "/orders/"+id.String()+"/invoice", NewFilesHandler(&testhelpers.FileFacadeStub{}).Invoice, asUser(1), nil, nil)
	if resp.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status 307, got %d", resp.Code)
	}
	location := resp.Header().Get("Location")
	want := "https://files.example.com/invoices/" + id.String() + ".pdf"
	if location != want {
		t.Fatalf("expected redirect to %q, got %q", want, location)
	}
}

func TestFilesHandlerArtwork(t *testing.T) {
	id := uuid.New()
	resp := performRequest(t, http.MethodGet, "/orders/:id/artwork/:name", "/orders/"+id.String()+"/artwork/front.png", NewFilesHandler(&testhelpers.FileFacadeStub{}).Artwork, asUser(1), nil, nil)
	if resp.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status 307, got %d", resp.Code)
	}
	location := resp.Header().Get("Location")
	want := "https://files.example.com/artwork/" + id.String() + "/front.png"
	if location != want {
		t.Fatalf("expected redirect to %q, got %q", want, location)
	}
}

func TestFilesHandlerMissingDocument(t *testing.T) {
	facade := &testhelpers.FileFacadeStub{InvoiceFn: func(context.Context, int64, uuid.UUID) (string, error) {
		return "", domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id/invoice", "/orders/"+uuid.NewString()+"/invoice", NewFilesHandler(facade).Invoice, asUser(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	degraded := testhelpers.HealthFacadeStub{Err: errors.New("database unreachable")}
	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(degraded).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
	var decoded map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded["status"] != "degraded" {
		t.Fatalf("unexpected health payload: %+v", decoded)
	}
}
