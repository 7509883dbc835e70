package donation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vastrado/vastrado-api/internal/domain"
	"github.com/vastrado/vastrado-api/internal/pkg/id"
)

// Repository is the donation store the service works against.
type Repository interface {
	Put(ctx context.Context, d *domain.Donation) error
	Get(ctx context.Context, donationID string) (*domain.Donation, error)
	List(ctx context.Context) ([]domain.Donation, error)
}

// ImageStore holds donation card images. Objects are private; reads go
// through time-limited presigned URLs.
type ImageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// donationImageURLTTL bounds how long a resolved image link stays valid.
const donationImageURLTTL = 15 * time.Minute

// Announcer broadcasts newly created donations. May be nil; creation then
// skips the announcement.
type Announcer interface {
	AnnounceDonation(ctx context.Context, d *domain.Donation) error
}

type Service interface {
	List(ctx context.Context) ([]domain.Donation, error)
	Create(ctx context.Context, ngoEmail string, req domain.CreateDonationRequest) (*domain.Donation, error)
	AttachImage(ctx context.Context, donationID, ngoEmail, filename, b64Data string) (*domain.Donation, error)
	UpdateStatus(ctx context.Context, donationID, ngoEmail, status string) (*domain.Donation, error)
}

type service struct {
	repo      Repository
	images    ImageStore
	announcer Announcer
}

func NewService(repo Repository, images ImageStore, announcer Announcer) Service {
	return &service{repo: repo, images: images, announcer: announcer}
}

func (s *service) List(ctx context.Context) ([]domain.Donation, error) {
	donations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range donations {
		s.resolveImage(ctx, &donations[i])
	}
	return donations, nil
}

func (s *service) Create(ctx context.Context, ngoEmail string, req domain.CreateDonationRequest) (*domain.Donation, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	now := time.Now().UTC()
	d := &domain.Donation{
		DonationID:  id.New(),
		NGOEmail:    ngoEmail,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    qty,
		Status:      domain.DonationOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	if s.announcer != nil {
		// Announcement is best effort; the donation exists either way.
		if err := s.announcer.AnnounceDonation(ctx, d); err != nil {
			slog.Warn("donation announcement failed", "donation_id", d.DonationID, "err", err)
		}
	}
	return d, nil
}

func (s *service) AttachImage(ctx context.Context, donationID, ngoEmail, filename, b64Data string) (*domain.Donation, error) {
	d, err := s.ownedDonation(ctx, donationID, ngoEmail)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("donations/%s/%s", d.DonationID, filename)
	if _, err := s.images.UploadBase64(ctx, key, b64Data); err != nil {
		return nil, err
	}
	if d.ImageKey != "" && d.ImageKey != key {
		// The replaced object would otherwise leak in the bucket.
		if err := s.images.Delete(ctx, d.ImageKey); err != nil {
			slog.Warn("failed to remove replaced donation image", "donation_id", d.DonationID, "key", d.ImageKey, "err", err)
		}
	}
	d.ImageKey = key
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	s.resolveImage(ctx, d)
	return d, nil
}

func (s *service) UpdateStatus(ctx context.Context, donationID, ngoEmail, status string) (*domain.Donation, error) {
	d, err := s.ownedDonation(ctx, donationID, ngoEmail)
	if err != nil {
		return nil, err
	}
	if !domain.ValidDonationTransition(d.Status, status) {
		return nil, fmt.Errorf("cannot move donation from %s to %s: %w", d.Status, status, domain.ErrBadRequest)
	}
	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	s.resolveImage(ctx, d)
	return d, nil
}

// resolveImage fills in a presigned link for the donation's image, if any.
// Best effort: a presign failure leaves the donation without a link rather
// than failing the read.
func (s *service) resolveImage(ctx context.Context, d *domain.Donation) {
	if d.ImageKey == "" || s.images == nil {
		return
	}
	url, err := s.images.PresignedURL(ctx, d.ImageKey, donationImageURLTTL)
	if err != nil {
		slog.Warn("failed to presign donation image", "donation_id", d.DonationID, "err", err)
		return
	}
	d.ImageURL = url
}

func (s *service) ownedDonation(ctx context.Context, donationID, ngoEmail string) (*domain.Donation, error) {
	d, err := s.repo.Get(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if d.NGOEmail != ngoEmail {
		return nil, fmt.Errorf("donation %s belongs to another account: %w", donationID, domain.ErrForbidden)
	}
	return d, nil
}
