package http

import (
	"github.com/vastrado/vastrado-api/internal/application/donation"
	"github.com/vastrado/vastrado-api/internal/application/login"
	jwtinfra "github.com/vastrado/vastrado-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router. Store and repo
// fields are interfaces so the memory and DynamoDB backends plug in
// interchangeably; Announcer and JWTProvider may be nil (graceful fallback).
type Deps struct {
	OTPStore     login.OTPStore
	Mailer       login.Mailer
	DonationRepo donation.Repository
	ImageStore   donation.ImageStore
	Announcer    donation.Announcer
	JWTProvider  *jwtinfra.Provider
}
