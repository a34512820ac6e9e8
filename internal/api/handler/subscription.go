package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cityair/cityair/internal/api/models"
	"github.com/cityair/cityair/internal/api/response"
	"github.com/cityair/cityair/internal/subscription"
)

// SubscriptionHandler handles alert subscription endpoints.
type SubscriptionHandler struct {
	subscriptions *subscription.Service
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: svc}
}

// CreateSubscription handles POST /v1/subscriptions. Subscribing the same
// email to the same city twice returns the existing subscription with 200.
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req models.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	created, err := h.subscriptions.Subscribe(r.Context(), req.Email, req.City)
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	sub := models.Subscription{
		Email:     req.Email,
		City:      req.City,
		CreatedAt: models.Timestamp(time.Now()),
	}

	if created {
		response.Created(w, r, "", sub)
		return
	}
	response.JSON(w, r, http.StatusOK, sub)
}

// DeleteSubscription handles DELETE /v1/subscriptions?email=<email>&city=<city>.
func (h *SubscriptionHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	city := r.URL.Query().Get("city")

	if err := h.subscriptions.Unsubscribe(r.Context(), email, city); err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			response.NotFound(w, r, "subscription not found")
			return
		}
		writeValidationError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, subscription.ErrInvalidEmail):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "email", Message: "must be a valid email address", Code: "invalid"},
		})
	case errors.Is(err, subscription.ErrInvalidCity):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "city", Message: "must be between 1 and 100 characters", Code: "invalid"},
		})
	default:
		response.InternalError(w, r, "failed to store subscription")
	}
}
