package domain

import "time"

// OTPRecord is the pending-verification record for one email address.
// PK: email (case-sensitive). At most one live record exists per email;
// issuing a new code replaces the record wholesale. The record is immutable
// once stored and is removed on first successful verification or when an
// expiry check finds it stale.
// ExpiresAt is a Unix timestamp usable as a DynamoDB TTL attribute.
type OTPRecord struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"code" dynamodbav:"code"`
	Role      string `json:"role" dynamodbav:"role"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the record is stale at the given instant.
func (r *OTPRecord) Expired(now time.Time) bool {
	return r.ExpiresAt < now.Unix()
}

// SendOTPRequest is the body of POST /send-otp. Email only has to be
// non-empty; the role is stored verbatim, including values outside the
// known set, so a new panel can ship without a backend release.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role"`
}

// VerifyOTPRequest is the body of POST /verify-otp. The code arrives as an
// opaque string (the front-end concatenates its input cells); the verifier
// never assumes a cell count.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// CreateProfileRequest is the body of POST /create-profile.
type CreateProfileRequest struct {
	Username string `json:"username" validate:"required"`
}
