package donation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vastrado/vastrado-api/internal/domain"
)

// --- mocks ---

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Put(ctx context.Context, d *domain.Donation) error {
	return m.Called(ctx, d).Error(0)
}
func (m *mockRepo) Get(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if d, _ := args.Get(0).(*domain.Donation); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) List(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	if l, _ := args.Get(0).([]domain.Donation); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) UploadBase64(ctx context.Context, key, b64Data string) (string, error) {
	args := m.Called(ctx, key, b64Data)
	return args.String(0), args.Error(1)
}
func (m *mockImages) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockImages) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockAnnouncer struct{ mock.Mock }

func (m *mockAnnouncer) AnnounceDonation(ctx context.Context, d *domain.Donation) error {
	return m.Called(ctx, d).Error(0)
}

func openDonation(id, owner string) *domain.Donation {
	return &domain.Donation{
		DonationID: id,
		NGOEmail:   owner,
		Title:      "Winter blankets",
		Category:   "clothing",
		Quantity:   20,
		Status:     domain.DonationOpen,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

// --- Create ---

func TestCreate_OpensWithDefaults(t *testing.T) {
	repo := &mockRepo{}
	var stored *domain.Donation
	repo.On("Put", mock.Anything, mock.MatchedBy(func(d *domain.Donation) bool {
		stored = d
		return true
	})).Return(nil)

	svc := NewService(repo, nil, nil)
	d, err := svc.Create(context.Background(), "ngo@x.com", domain.CreateDonationRequest{
		Title:    "Rice bags",
		Category: "food",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DonationOpen, d.Status)
	assert.Equal(t, "ngo@x.com", d.NGOEmail)
	assert.Equal(t, 1, d.Quantity, "quantity defaults to 1")
	assert.NotEmpty(t, d.DonationID)
	assert.Same(t, stored, d)
}

func TestCreate_AnnouncesNewDonation(t *testing.T) {
	repo := &mockRepo{}
	ann := &mockAnnouncer{}
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	ann.On("AnnounceDonation", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, nil, ann)
	_, err := svc.Create(context.Background(), "ngo@x.com", domain.CreateDonationRequest{
		Title:    "Rice bags",
		Category: "food",
		Quantity: 5,
	})

	require.NoError(t, err)
	ann.AssertCalled(t, "AnnounceDonation", mock.Anything, mock.Anything)
}

func TestCreate_AnnouncementFailureDoesNotFailCreation(t *testing.T) {
	repo := &mockRepo{}
	ann := &mockAnnouncer{}
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	ann.On("AnnounceDonation", mock.Anything, mock.Anything).Return(errors.New("sns unavailable"))

	svc := NewService(repo, nil, ann)
	d, err := svc.Create(context.Background(), "ngo@x.com", domain.CreateDonationRequest{
		Title:    "Rice bags",
		Category: "food",
	})

	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestCreate_StoreFailure_NoAnnouncement(t *testing.T) {
	repo := &mockRepo{}
	ann := &mockAnnouncer{}
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("store down"))

	svc := NewService(repo, nil, ann)
	_, err := svc.Create(context.Background(), "ngo@x.com", domain.CreateDonationRequest{
		Title:    "Rice bags",
		Category: "food",
	})

	require.Error(t, err)
	ann.AssertNotCalled(t, "AnnounceDonation", mock.Anything, mock.Anything)
}

// --- List ---

func TestList_ResolvesPresignedImageURLs(t *testing.T) {
	repo := &mockRepo{}
	images := &mockImages{}
	withImage := *openDonation("d1", "ngo@x.com")
	withImage.ImageKey = "donations/d1/card.png"
	bare := *openDonation("d2", "ngo@x.com")
	repo.On("List", mock.Anything).Return([]domain.Donation{withImage, bare}, nil)
	images.On("PresignedURL", mock.Anything, "donations/d1/card.png", mock.Anything).
		Return("https://s3.example.com/donations/d1/card.png?sig=abc", nil)

	svc := NewService(repo, images, nil)
	list, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "https://s3.example.com/donations/d1/card.png?sig=abc", list[0].ImageURL)
	assert.Empty(t, list[1].ImageURL)
	images.AssertNumberOfCalls(t, "PresignedURL", 1)
}

// --- UpdateStatus ---

func TestUpdateStatus_OpenToClaimed(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything, "d1").Return(openDonation("d1", "ngo@x.com"), nil)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(d *domain.Donation) bool {
		return d.Status == domain.DonationClaimed
	})).Return(nil)

	svc := NewService(repo, nil, nil)
	d, err := svc.UpdateStatus(context.Background(), "d1", "ngo@x.com", domain.DonationClaimed)

	require.NoError(t, err)
	assert.Equal(t, domain.DonationClaimed, d.Status)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_SkippingClaimed_Rejected(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything, "d1").Return(openDonation("d1", "ngo@x.com"), nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "d1", "ngo@x.com", domain.DonationFulfilled)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdateStatus_OtherOwner_Forbidden(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything, "d1").Return(openDonation("d1", "owner@x.com"), nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "d1", "intruder@x.com", domain.DonationClaimed)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdateStatus_UnknownDonation(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "missing", "ngo@x.com", domain.DonationClaimed)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- AttachImage ---

func TestAttachImage_UploadsUnderDonationKey(t *testing.T) {
	repo := &mockRepo{}
	images := &mockImages{}
	repo.On("Get", mock.Anything, "d1").Return(openDonation("d1", "ngo@x.com"), nil)
	images.On("UploadBase64", mock.Anything, "donations/d1/card.png", "aGVsbG8=").
		Return("s3://vastrado-images/donations/d1/card.png", nil)
	images.On("PresignedURL", mock.Anything, "donations/d1/card.png", mock.Anything).
		Return("https://s3.example.com/donations/d1/card.png?sig=abc", nil)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(d *domain.Donation) bool {
		return d.ImageKey == "donations/d1/card.png" && d.ImageURL == ""
	})).Return(nil)

	svc := NewService(repo, images, nil)
	d, err := svc.AttachImage(context.Background(), "d1", "ngo@x.com", "card.png", "aGVsbG8=")

	require.NoError(t, err)
	assert.Equal(t, "donations/d1/card.png", d.ImageKey)
	assert.Equal(t, "https://s3.example.com/donations/d1/card.png?sig=abc", d.ImageURL)
	images.AssertExpectations(t)
}

func TestAttachImage_ReplacingImageDeletesOldObject(t *testing.T) {
	repo := &mockRepo{}
	images := &mockImages{}
	existing := openDonation("d1", "ngo@x.com")
	existing.ImageKey = "donations/d1/old.png"
	repo.On("Get", mock.Anything, "d1").Return(existing, nil)
	images.On("UploadBase64", mock.Anything, "donations/d1/new.png", "aGVsbG8=").Return("", nil)
	images.On("Delete", mock.Anything, "donations/d1/old.png").Return(nil)
	images.On("PresignedURL", mock.Anything, "donations/d1/new.png", mock.Anything).
		Return("https://s3.example.com/donations/d1/new.png?sig=abc", nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, images, nil)
	d, err := svc.AttachImage(context.Background(), "d1", "ngo@x.com", "new.png", "aGVsbG8=")

	require.NoError(t, err)
	assert.Equal(t, "donations/d1/new.png", d.ImageKey)
	images.AssertCalled(t, "Delete", mock.Anything, "donations/d1/old.png")
}

func TestAttachImage_PresignFailure_StillSucceedsWithoutURL(t *testing.T) {
	repo := &mockRepo{}
	images := &mockImages{}
	repo.On("Get", mock.Anything, "d1").Return(openDonation("d1", "ngo@x.com"), nil)
	images.On("UploadBase64", mock.Anything, "donations/d1/card.png", "aGVsbG8=").Return("", nil)
	images.On("PresignedURL", mock.Anything, "donations/d1/card.png", mock.Anything).
		Return("", errors.New("presign unavailable"))
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, images, nil)
	d, err := svc.AttachImage(context.Background(), "d1", "ngo@x.com", "card.png", "aGVsbG8=")

	require.NoError(t, err)
	assert.Equal(t, "donations/d1/card.png", d.ImageKey)
	assert.Empty(t, d.ImageURL)
}

func TestAttachImage_OtherOwner_NoUpload(t *testing.T) {
	repo := &mockRepo{}
	images := &mockImages{}
	repo.On("Get", mock.Anything, "d1").Return(openDonation("d1", "owner@x.com"), nil)

	svc := NewService(repo, images, nil)
	_, err := svc.AttachImage(context.Background(), "d1", "intruder@x.com", "card.png", "aGVsbG8=")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	images.AssertNotCalled(t, "UploadBase64", mock.Anything, mock.Anything, mock.Anything)
}
