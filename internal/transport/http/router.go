package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vastrado/vastrado-api/internal/application/donation"
	"github.com/vastrado/vastrado-api/internal/application/login"
	"github.com/vastrado/vastrado-api/internal/config"
	"github.com/vastrado/vastrado-api/internal/domain"
	"github.com/vastrado/vastrado-api/internal/transport/http/handler"
	appmiddleware "github.com/vastrado/vastrado-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	loginSvc := login.NewService(login.ServiceDeps{
		Store:       deps.OTPStore,
		Mailer:      deps.Mailer,
		Signer:      signerOrNil(deps),
		TTL:         cfg.OTPTTL,
		MailTimeout: cfg.MailTimeout,
	})
	donationSvc := donation.NewService(deps.DonationRepo, deps.ImageStore, deps.Announcer)

	otpH := handler.NewOTPHandler(loginSvc)
	profileH := handler.NewProfileHandler()
	donationH := handler.NewDonationHandler(donationSvc)
	healthH := handler.NewHealthHandler()

	// OTP endpoints are the abuse surface: the protocol has no attempt cap,
	// so they sit behind a per-IP limiter.
	otpRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.OTPRateRPS), cfg.OTPRateBurst)

	r.Get("/health-check/{action}", healthH.Ping)

	r.With(otpRL.Limit).Post("/send-otp", otpH.Send)
	r.With(otpRL.Limit).Post("/verify-otp", otpH.Verify)
	r.Post("/create-profile", profileH.Create)

	r.Get("/ngo-donations", donationH.List)

	// Donation mutations need a verified NGO login token. Without signing
	// keys there are no tokens, so the routes answer 503 instead of being
	// silently open.
	if deps.JWTProvider != nil {
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))
			r.Use(appmiddleware.RequireRole(domain.RoleNGO))

			r.Post("/donations", donationH.Create)
			r.Post("/donations/{id}/image", donationH.AttachImage)
			r.Put("/donations/{id}/status", donationH.UpdateStatus)
		})
	} else {
		unavailable := func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"login tokens not configured"}`, http.StatusServiceUnavailable)
		}
		r.Post("/donations", unavailable)
		r.Post("/donations/{id}/image", unavailable)
		r.Put("/donations/{id}/status", unavailable)
	}

	// Everything else is the static front-end; the landing page lives at /.
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	return r
}

func signerOrNil(deps *Deps) login.TokenSigner {
	// A typed nil pointer inside a non-nil interface would defeat the
	// signer == nil check in the login service.
	if deps.JWTProvider == nil {
		return nil
	}
	return deps.JWTProvider
}
