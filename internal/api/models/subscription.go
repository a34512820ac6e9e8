package models

// SubscriptionRequest is the request body for creating a subscription.
type SubscriptionRequest struct {
	Email string `json:"email"`
	City  string `json:"city"`
}

// Subscription is the API representation of an alert subscription.
type Subscription struct {
	Email     string    `json:"email"`
	City      string    `json:"city"`
	CreatedAt Timestamp `json:"createdAt"`
}
