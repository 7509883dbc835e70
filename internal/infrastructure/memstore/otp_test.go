package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrado/vastrado-api/internal/domain"
)

func rec(email, code string) *domain.OTPRecord {
	return &domain.OTPRecord{
		Email:     email,
		Code:      code,
		Role:      domain.RoleBuyer,
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}
}

func TestOTPStore_PutGetDelete(t *testing.T) {
	s := NewOTPStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, rec("a@x.com", "123456")))

	got, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)
	assert.Equal(t, domain.RoleBuyer, got.Role)

	require.NoError(t, s.Delete(ctx, "a@x.com"))
	_, err = s.Get(ctx, "a@x.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOTPStore_Get_Missing(t *testing.T) {
	s := NewOTPStore()
	_, err := s.Get(context.Background(), "never@x.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOTPStore_Put_OverwritesPendingRecord(t *testing.T) {
	s := NewOTPStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, rec("a@x.com", "111111")))
	require.NoError(t, s.Put(ctx, rec("a@x.com", "222222")))

	got, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
}

func TestOTPStore_EmailsAreCaseSensitiveKeys(t *testing.T) {
	s := NewOTPStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, rec("A@x.com", "111111")))
	_, err := s.Get(ctx, "a@x.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOTPStore_ConcurrentPuts_NoLostUpdate(t *testing.T) {
	s := NewOTPStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Put(ctx, rec("race@x.com", "654321"))
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "race@x.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", got.Code)
}
