package domain

import "time"

// Donation statuses.
const (
	DonationOpen      = "open"
	DonationClaimed   = "claimed"
	DonationFulfilled = "fulfilled"
)

// Donation is a need posted by an NGO and shown on the NGO dashboard.
// ImageKey is the stored object key; ImageURL is the presigned, time-limited
// link resolved from it on every read and is never persisted.
type Donation struct {
	DonationID  string    `json:"id" dynamodbav:"donation_id"`
	NGOEmail    string    `json:"ngo_email" dynamodbav:"ngo_email"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	Category    string    `json:"category" dynamodbav:"category"`
	Quantity    int       `json:"quantity" dynamodbav:"quantity"`
	ImageKey    string    `json:"-" dynamodbav:"image_key"`
	ImageURL    string    `json:"image_url,omitempty" dynamodbav:"-"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateDonationRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateDonationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open claimed fulfilled"`
}

// ValidDonationTransition reports whether a status change is allowed.
// Donations only move forward: open -> claimed -> fulfilled.
func ValidDonationTransition(from, to string) bool {
	switch from {
	case DonationOpen:
		return to == DonationClaimed
	case DonationClaimed:
		return to == DonationFulfilled
	default:
		return false
	}
}
