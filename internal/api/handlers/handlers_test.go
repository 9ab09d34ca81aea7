package handlers

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/api/presenters"
	"FoodSaver-Backend/pkg/session"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID = "7f8a2c4e-1111-4c3b-9d2e-5a6b7c8d9e0f"

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// newTestApp mimics AuthMiddleware by putting the caller into Locals.
func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", testUserID)
		c.Locals("session", domain.SessionClaims{UserID: testUserID, Role: domain.RoleUser, TokenID: "jti-1"})
		return c.Next()
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, presenters.Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var res presenters.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp.StatusCode, res
}

type stubFoodService struct {
	created   domain.CreateFoodItemRequest
	createdBy string
	nearby    domain.GetNearbyFoodItemsRequest
	deleteErr error
	getErr    error
}

func (s *stubFoodService) CreateFoodItem(_ context.Context, req domain.CreateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	s.created = req
	s.createdBy = userID
	return domain.FoodItemResponse{ID: "item-1", UserID: userID, Title: req.Title, Status: "available"}, nil
}

func (s *stubFoodService) GetAvailableFoodItems(context.Context) ([]domain.FoodItemResponse, error) {
	return []domain.FoodItemResponse{{ID: "item-1"}, {ID: "item-2"}}, nil
}

func (s *stubFoodService) GetNearbyFoodItems(_ context.Context, req domain.GetNearbyFoodItemsRequest) ([]domain.FoodItemResponse, error) {
	s.nearby = req
	return []domain.FoodItemResponse{}, nil
}

func (s *stubFoodService) GetFoodItemByID(_ context.Context, id string) (domain.FoodItemResponse, error) {
	if s.getErr != nil {
		return domain.FoodItemResponse{}, s.getErr
	}
	return domain.FoodItemResponse{ID: id}, nil
}

func (s *stubFoodService) GetUserFoodItems(_ context.Context, userID string) ([]domain.FoodItemResponse, error) {
	return []domain.FoodItemResponse{{ID: "item-1", UserID: userID}}, nil
}

func (s *stubFoodService) UploadFoodImage(_ context.Context, req domain.UploadFoodImageRequest, _ string) (domain.FoodItemResponse, error) {
	return domain.FoodItemResponse{ID: req.FoodItemID}, nil
}

func (s *stubFoodService) DeleteFoodItem(context.Context, string, string) error {
	return s.deleteErr
}

func TestCreateFoodItemUsesCaller(t *testing.T) {
	service := &stubFoodService{}
	app := newTestApp()
	app.Post("/food-items", NewFoodHandler(service, testValidator()).CreateFoodItem)

	status, res := doRequest(t, app, http.MethodPost, "/food-items",
		`{"title":"Bread","description":"Two loaves","expiry_date":"2026-10-21","address":"Jl. Merdeka 1","latitude":-6.2,"longitude":106.8}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, res.Status)
	assert.Equal(t, domain.MessageSuccessCreateFoodItem, res.Message)
	assert.Equal(t, testUserID, service.createdBy)
	assert.Equal(t, "Bread", service.created.Title)
}

func TestCreateFoodItemRejectsMissingFields(t *testing.T) {
	app := newTestApp()
	app.Post("/food-items", NewFoodHandler(&stubFoodService{}, testValidator()).CreateFoodItem)

	status, res := doRequest(t, app, http.MethodPost, "/food-items", `{"title":"Bread"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, res.Status)
	assert.Equal(t, domain.MessageFailedCreateFoodItem, res.Message)
}

func TestGetNearbyFoodItemsParsesQuery(t *testing.T) {
	service := &stubFoodService{}
	app := newTestApp()
	app.Get("/food-items/nearby", NewFoodHandler(service, testValidator()).GetNearbyFoodItems)

	status, _ := doRequest(t, app, http.MethodGet, "/food-items/nearby?lat=-6.2&lng=106.8&radius=5", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, -6.2, service.nearby.Latitude)
	assert.Equal(t, 106.8, service.nearby.Longitude)
	assert.Equal(t, 5.0, service.nearby.Radius)
}

func TestGetNearbyFoodItemsRequiresRadius(t *testing.T) {
	app := newTestApp()
	app.Get("/food-items/nearby", NewFoodHandler(&stubFoodService{}, testValidator()).GetNearbyFoodItems)

	status, _ := doRequest(t, app, http.MethodGet, "/food-items/nearby?lat=-6.2&lng=106.8", "")

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFoodHandlerMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		svc    *stubFoodService
		status int
	}{
		{"not found", http.MethodGet, "/food-items/abc", &stubFoodService{getErr: domain.ErrFoodItemNotFound}, fiber.StatusNotFound},
		{"not owner", http.MethodDelete, "/food-items/abc", &stubFoodService{deleteErr: domain.ErrUnauthorizedAccess}, fiber.StatusForbidden},
		{"reserved", http.MethodDelete, "/food-items/abc", &stubFoodService{deleteErr: domain.ErrFoodItemNotAvailable}, fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFoodHandler(tt.svc, testValidator())
			app := newTestApp()
			app.Get("/food-items/:id", h.GetFoodItemDetails)
			app.Delete("/food-items/:id", h.DeleteFoodItem)

			status, res := doRequest(t, app, tt.method, tt.target, "")
			assert.Equal(t, tt.status, status)
			assert.False(t, res.Status)
		})
	}
}

type stubTransactionService struct {
	createErr error
	updated   domain.UpdateTransactionStatusRequest
	updatedID string
}

func (s *stubTransactionService) CreateTransaction(_ context.Context, req domain.CreateTransactionRequest, userID string) (domain.TransactionResponse, error) {
	if s.createErr != nil {
		return domain.TransactionResponse{}, s.createErr
	}
	return domain.TransactionResponse{ID: "tx-1", FoodItemID: req.FoodItemID, ReceiverID: userID, Status: "pending"}, nil
}

func (s *stubTransactionService) GetUserTransactions(context.Context, string) ([]domain.TransactionResponse, error) {
	return nil, nil
}

func (s *stubTransactionService) UpdateTransactionStatus(_ context.Context, id string, req domain.UpdateTransactionStatusRequest, _ string) (domain.TransactionResponse, error) {
	s.updatedID = id
	s.updated = req
	return domain.TransactionResponse{ID: id, Status: req.Status}, nil
}

func (s *stubTransactionService) CancelStaleReservations(context.Context, time.Time) (int, error) {
	return 0, nil
}

func TestCreateTransactionConflict(t *testing.T) {
	app := newTestApp()
	app.Post("/transactions", NewTransactionHandler(&stubTransactionService{createErr: domain.ErrFoodItemNotAvailable}, testValidator()).CreateTransaction)

	status, res := doRequest(t, app, http.MethodPost, "/transactions", `{"food_item_id":"0b7e6f2a-3c1d-4e5f-8a9b-0c1d2e3f4a5b"}`)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, domain.ErrFoodItemNotAvailable.Error(), res.Error)
}

func TestCreateTransactionRejectsInvalidItemID(t *testing.T) {
	app := newTestApp()
	app.Post("/transactions", NewTransactionHandler(&stubTransactionService{}, testValidator()).CreateTransaction)

	status, _ := doRequest(t, app, http.MethodPost, "/transactions", `{"food_item_id":"not-a-uuid"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateTransactionStatus(t *testing.T) {
	service := &stubTransactionService{}
	app := newTestApp()
	app.Patch("/transactions/:id", NewTransactionHandler(service, testValidator()).UpdateTransactionStatus)

	status, _ := doRequest(t, app, http.MethodPatch, "/transactions/tx-9", `{"status":"accepted"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "tx-9", service.updatedID)
	assert.Equal(t, "accepted", service.updated.Status)

	status, _ = doRequest(t, app, http.MethodPatch, "/transactions/tx-9", `{"status":"pending"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

type stubTipService struct{ category string }

func (s *stubTipService) GetTips(_ context.Context, category string) ([]domain.TipResponse, error) {
	s.category = category
	return []domain.TipResponse{{ID: "tip-1", Category: "storage"}}, nil
}

func TestGetTipsPassesCategory(t *testing.T) {
	service := &stubTipService{}
	app := fiber.New()
	app.Get("/tips", NewTipsHandler(service).GetTips)

	status, res := doRequest(t, app, http.MethodGet, "/tips?category=storage", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "storage", service.category)
	assert.Len(t, res.Data, 1)
}

type stubAuthService struct {
	signInErr  error
	signedOut  domain.SessionClaims
	signOutErr error
}

func (s *stubAuthService) SignInWithIDToken(_ context.Context, idToken string) (domain.SignInResponse, error) {
	if s.signInErr != nil {
		return domain.SignInResponse{}, s.signInErr
	}
	return domain.SignInResponse{Token: "token-for-" + idToken}, nil
}

func (s *stubAuthService) AuthURL(context.Context) (domain.AuthURLResponse, error) {
	return domain.AuthURLResponse{}, domain.ErrOAuthNotConfigured
}

func (s *stubAuthService) SignInWithCode(context.Context, string, string) (domain.SignInResponse, error) {
	return domain.SignInResponse{}, domain.ErrInvalidOAuthState
}

func (s *stubAuthService) SignOut(_ context.Context, claims domain.SessionClaims) error {
	s.signedOut = claims
	return s.signOutErr
}

func (s *stubAuthService) Session(_ context.Context, userID string) (domain.SessionUser, error) {
	return domain.SessionUser{UID: userID}, nil
}

type stubSubscriber struct {
	events    chan session.Event
	cancelled chan struct{}
}

func (s *stubSubscriber) Subscribe(string) (<-chan session.Event, func()) {
	return s.events, func() { close(s.cancelled) }
}

func TestGoogleSignIn(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/google", NewAuthHandler(&stubAuthService{}, nil, testValidator()).GoogleSignIn)

	status, res := doRequest(t, app, http.MethodPost, "/auth/google", `{"id_token":"abc"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "token-for-abc", res.Data.(map[string]any)["token"])

	status, _ = doRequest(t, app, http.MethodPost, "/auth/google", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAuthErrorsMapToStatus(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signInErr: domain.ErrInvalidIDToken}, nil, testValidator())
	app := fiber.New()
	app.Post("/auth/google", h.GoogleSignIn)
	app.Get("/auth/google/url", h.GoogleAuthURL)
	app.Post("/auth/google/callback", h.GoogleCallback)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/google", `{"id_token":"forged"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doRequest(t, app, http.MethodGet, "/auth/google/url", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/google/callback", `{"code":"c","state":"s"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestSignOutRevokesCurrentSession(t *testing.T) {
	service := &stubAuthService{}
	app := newTestApp()
	app.Post("/auth/signout", NewAuthHandler(service, nil, testValidator()).SignOut)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signout", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "jti-1", service.signedOut.TokenID)
}

func TestSessionEventsStreamsUntilSignedOut(t *testing.T) {
	events := make(chan session.Event, 2)
	events <- session.Event{Type: session.EventProfileUpdated, UserID: testUserID}
	events <- session.Event{Type: session.EventSignedOut, UserID: testUserID}
	sub := &stubSubscriber{events: events, cancelled: make(chan struct{})}

	app := newTestApp()
	app.Get("/auth/events", NewAuthHandler(&stubAuthService{}, sub, testValidator()).SessionEvents)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/events", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "text/event-stream", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "event: profile_updated")
	assert.Contains(t, string(body), "event: signed_out")

	select {
	case <-sub.cancelled:
	case <-time.After(time.Second):
		t.Fatal("subscription was not cancelled")
	}
}

func TestErrorStatusDefaultsToBadRequest(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, errorStatus(errors.New("boom")))
	assert.Equal(t, fiber.StatusNotFound, errorStatus(domain.ErrTransactionNotFound))
}

func TestDeleteFoodItemForeignKeyConflict(t *testing.T) {
	app := newTestApp()
	app.Delete("/food-items/:id", NewFoodHandler(&stubFoodService{deleteErr: gorm.ErrForeignKeyViolated}, testValidator()).DeleteFoodItem)

	status, res := doRequest(t, app, http.MethodDelete, "/food-items/abc", "")

	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, res.Status)
}
