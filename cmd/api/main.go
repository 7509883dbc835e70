package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vastrado/vastrado-api/internal/application/donation"
	"github.com/vastrado/vastrado-api/internal/application/login"
	"github.com/vastrado/vastrado-api/internal/config"
	"github.com/vastrado/vastrado-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/vastrado/vastrado-api/internal/infrastructure/jwt"
	"github.com/vastrado/vastrado-api/internal/infrastructure/mail"
	"github.com/vastrado/vastrado-api/internal/infrastructure/memstore"
	s3infra "github.com/vastrado/vastrado-api/internal/infrastructure/s3"
	"github.com/vastrado/vastrado-api/internal/infrastructure/sns"
	transporthttp "github.com/vastrado/vastrado-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Storage backends. The in-memory store is the default: OTP records are
	// short-lived, so losing them on restart is acceptable. DynamoDB is the
	// drop-in persistent alternative.
	var otpStore login.OTPStore
	var donationRepo donation.Repository
	switch cfg.StorageBackend {
	case config.BackendDynamo:
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTables)
		otpStore = dynamo.NewOTPStore(client, cfg.DynamoTables.OTPs)
		donationRepo = dynamo.NewDonationRepo(client, cfg.DynamoTables.Donations)
	default:
		otpStore = memstore.NewOTPStore()
		donationRepo = memstore.NewDonationRepo()
	}

	// JWT provider (optional, graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SNS donation announcer (optional, graceful fallback).
	var announcer donation.Announcer
	if a, err := sns.NewAnnouncer(cfg); err == nil {
		announcer = a
	} else {
		log.Printf("WARN: SNS announcer not available: %v", err)
	}

	// S3 image store.
	s3Client := s3infra.NewClient(cfg)
	imageStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	deps := &transporthttp.Deps{
		OTPStore:     otpStore,
		Mailer:       mail.NewMailer(cfg),
		DonationRepo: donationRepo,
		ImageStore:   imageStore,
		Announcer:    announcer,
		JWTProvider:  jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, storage=%s)", cfg.AppPort, cfg.AppEnv, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
