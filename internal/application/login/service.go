package login

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vastrado/vastrado-api/internal/domain"
	"github.com/vastrado/vastrado-api/internal/pkg/otp"
)

// OTPStore is the pending-verification store the service works against.
// Implementations must make Put an unconditional overwrite so reissuing a
// code invalidates the previous one.
type OTPStore interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	Get(ctx context.Context, email string) (*domain.OTPRecord, error)
	Delete(ctx context.Context, email string) error
}

// Mailer dispatches the one-time code to the user.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// TokenSigner mints the login token returned on successful verification.
type TokenSigner interface {
	Sign(email, role string) (string, error)
}

// VerifyResult carries everything the client needs after a successful
// verification: the authoritative role, the dashboard it routes to, and
// (when signing keys are configured) a bearer token.
type VerifyResult struct {
	Role     string
	Redirect string
	Token    string
}

type Service interface {
	// Issue generates and stores a fresh code for email and mails it out.
	// Success means the record is stored AND the mail was accepted by the
	// transport; a delivery failure removes the record again and reports
	// domain.ErrDelivery.
	Issue(ctx context.Context, email, role string) error
	// Verify checks a submitted code. The record is consumed on success
	// (single use) or purged when found expired; a mismatch leaves it in
	// place so the user can retry.
	Verify(ctx context.Context, email, submitted string) (*VerifyResult, error)
}

// ServiceDeps bundles the service's collaborators. Signer may be nil; the
// verify result then carries no token.
type ServiceDeps struct {
	Store       OTPStore
	Mailer      Mailer
	Signer      TokenSigner
	TTL         time.Duration
	MailTimeout time.Duration
}

type service struct {
	store       OTPStore
	mailer      Mailer
	signer      TokenSigner
	ttl         time.Duration
	mailTimeout time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:       deps.Store,
		mailer:      deps.Mailer,
		signer:      deps.Signer,
		ttl:         deps.TTL,
		mailTimeout: deps.MailTimeout,
	}
}

func (s *service) Issue(ctx context.Context, email, role string) error {
	if email == "" {
		return fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	rec := &domain.OTPRecord{
		Email:     email,
		Code:      code,
		Role:      role,
		ExpiresAt: time.Now().Add(s.ttl).Unix(),
	}
	// Store first, then send. Any previously pending code for this email is
	// gone from this point on, even if the send below fails.
	if err := s.store.Put(ctx, rec); err != nil {
		return err
	}

	mailCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()
	if err := s.mailer.SendEmail(mailCtx, email, "Your Vastrado login code", otpMailBody(code)); err != nil {
		slog.Warn("otp mail dispatch failed", "email", email, "err", err)
		// Drop the record so a code the user never received cannot linger.
		if delErr := s.store.Delete(ctx, email); delErr != nil {
			slog.Warn("failed to remove otp record after send failure", "email", email, "err", delErr)
		}
		return fmt.Errorf("dispatch otp mail: %w", domain.ErrDelivery)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, email, submitted string) (*VerifyResult, error) {
	rec, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no pending otp for %q: %w", email, domain.ErrNotFound)
		}
		// A store outage must stay distinguishable from "never issued" in
		// the logs even though the endpoint answers uniformly.
		slog.Error("otp store lookup failed", "email", email, "err", err)
		return nil, fmt.Errorf("otp lookup for %q: %w", email, err)
	}
	if rec.Expired(time.Now()) {
		if delErr := s.store.Delete(ctx, email); delErr != nil {
			slog.Warn("failed to purge expired otp record", "email", email, "err", delErr)
		}
		return nil, fmt.Errorf("otp for %q: %w", email, domain.ErrExpired)
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(submitted)) != 1 {
		// Record stays put so the user can retype the code.
		return nil, fmt.Errorf("otp for %q: %w", email, domain.ErrMismatch)
	}

	// Single use: consume before answering.
	if err := s.store.Delete(ctx, email); err != nil {
		slog.Warn("failed to consume otp record", "email", email, "err", err)
	}

	res := &VerifyResult{
		Role:     rec.Role,
		Redirect: domain.DashboardPath(rec.Role),
	}
	if s.signer != nil {
		token, err := s.signer.Sign(email, rec.Role)
		if err != nil {
			slog.Warn("failed to sign login token", "email", email, "err", err)
		} else {
			res.Token = token
		}
	}
	return res, nil
}

func otpMailBody(code string) string {
	return fmt.Sprintf(`
		<h2>Your Vastrado login code</h2>
		<p>Enter the following code to sign in:</p>
		<p style="font-size:28px;letter-spacing:6px;"><strong>%s</strong></p>
		<p>The code expires shortly. If you did not request it, you can ignore this email.</p>
	`, code)
}
