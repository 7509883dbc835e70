package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vastrado/vastrado-api/internal/domain"
)

// DonationRepo keeps donations in memory. Used in development and tests;
// production deployments point STORAGE_BACKEND at DynamoDB instead.
type DonationRepo struct {
	mu        sync.RWMutex
	donations map[string]domain.Donation
}

func NewDonationRepo() *DonationRepo {
	return &DonationRepo{donations: make(map[string]domain.Donation)}
}

func (r *DonationRepo) Put(_ context.Context, d *domain.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.donations[d.DonationID] = *d
	return nil
}

func (r *DonationRepo) Get(_ context.Context, donationID string) (*domain.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.donations[donationID]
	if !ok {
		return nil, fmt.Errorf("donation %s: %w", donationID, domain.ErrNotFound)
	}
	return &d, nil
}

// List returns all donations, newest first. ULIDs sort by creation time, so
// a reverse ID sort is a reverse chronological sort.
func (r *DonationRepo) List(_ context.Context) ([]domain.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Donation, 0, len(r.donations))
	for _, d := range r.donations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DonationID > out[j].DonationID })
	return out, nil
}
