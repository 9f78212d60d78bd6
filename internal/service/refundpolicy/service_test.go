package refundpolicy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/space-booking-service/internal/domain"
	policyStorage "github.com/deskhive/space-booking-service/internal/infra/storage/refundpolicy"
	"github.com/deskhive/space-booking-service/internal/service/refundpolicy/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakePolicyRepo хранит политики в памяти
type fakePolicyRepo struct {
	nextID   int64
	policies map[int64]*domain.RefundPolicy
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{policies: make(map[int64]*domain.RefundPolicy)}
}

func (f *fakePolicyRepo) Create(_ context.Context, policy *domain.RefundPolicy) (*domain.RefundPolicy, error) {
	f.nextID++
	created := *policy
	created.ID = f.nextID
	f.policies[created.ID] = &created
	return &created, nil
}

func (f *fakePolicyRepo) Update(_ context.Context, policy *domain.RefundPolicy) (*domain.RefundPolicy, error) {
	existing, ok := f.policies[policy.ID]
	if !ok || existing.PartnerID != policy.PartnerID {
		return nil, policyStorage.ErrPolicyNotFound
	}
	updated := *policy
	f.policies[policy.ID] = &updated
	return &updated, nil
}

func (f *fakePolicyRepo) GetByID(_ context.Context, id int64) (*domain.RefundPolicy, error) {
	policy, ok := f.policies[id]
	if !ok {
		return nil, policyStorage.ErrPolicyNotFound
	}
	return policy, nil
}

func (f *fakePolicyRepo) GetDefaultByPartner(_ context.Context, partnerID int64) (*domain.RefundPolicy, error) {
	for _, policy := range f.policies {
		if policy.PartnerID == partnerID && policy.IsDefault && policy.IsActive {
			return policy, nil
		}
	}
	return nil, policyStorage.ErrPolicyNotFound
}

func (f *fakePolicyRepo) ListByPartner(_ context.Context, partnerID int64) ([]*domain.RefundPolicy, error) {
	var result []*domain.RefundPolicy
	for _, policy := range f.policies {
		if policy.PartnerID == partnerID {
			result = append(result, policy)
		}
	}
	return result, nil
}

func (f *fakePolicyRepo) ClearDefault(_ context.Context, partnerID int64) error {
	for _, policy := range f.policies {
		if policy.PartnerID == partnerID && policy.IsDefault {
			policy.IsDefault = false
		}
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func validUpsertRequest(partnerID int64) *models.UpsertPolicyRequest {
	return &models.UpsertPolicyRequest{
		PartnerID:               partnerID,
		Name:                    "Standard",
		CalculationType:         "percentage",
		DefaultRefundPercentage: 80,
		NoRefundHours:           2,
		AllowSameDayRefund:      true,
		IsActive:                true,
	}
}

func TestUpsert_Create(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Upsert(context.Background(), validUpsertRequest(10))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.PartnerID)
	assert.Equal(t, "percentage", resp.CalculationType)
}

func TestUpsert_ValidationFailure(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	req := validUpsertRequest(10)
	req.DefaultRefundPercentage = 150

	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.policies)
}

func TestUpsert_DefaultFlagIsExclusive(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	first := validUpsertRequest(10)
	first.IsDefault = true
	firstResp, err := svc.Upsert(context.Background(), first)
	require.NoError(t, err)

	second := validUpsertRequest(10)
	second.Name = "Flexible"
	second.IsDefault = true
	secondResp, err := svc.Upsert(context.Background(), second)
	require.NoError(t, err)

	// Дефолт переехал на новую политику, у старой флаг снят
	assert.False(t, repo.policies[firstResp.ID].IsDefault)
	assert.True(t, repo.policies[secondResp.ID].IsDefault)
}

func TestUpsert_UpdateOwnership(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	created, err := svc.Upsert(context.Background(), validUpsertRequest(10))
	require.NoError(t, err)

	t.Run("owner updates the policy", func(t *testing.T) {
		req := validUpsertRequest(10)
		req.PolicyID = &created.ID
		req.Name = "Updated"

		resp, err := svc.Upsert(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Updated", resp.Name)
	})

	t.Run("foreign partner is rejected", func(t *testing.T) {
		req := validUpsertRequest(99)
		req.PolicyID = &created.ID

		_, err := svc.Upsert(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown policy id", func(t *testing.T) {
		missing := int64(404)
		req := validUpsertRequest(10)
		req.PolicyID = &missing

		_, err := svc.Upsert(context.Background(), req)
		assert.ErrorIs(t, err, ErrPolicyNotFound)
	})
}

func TestGetByID_Ownership(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	created, err := svc.Upsert(context.Background(), validUpsertRequest(10))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID, 10)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByPartner(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Upsert(context.Background(), validUpsertRequest(10))
	require.NoError(t, err)

	other := validUpsertRequest(20)
	_, err = svc.Upsert(context.Background(), other)
	require.NoError(t, err)

	resp, err := svc.ListByPartner(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, resp.Policies, 1)
}
