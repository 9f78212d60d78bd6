package refundpolicy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/deskhive/space-booking-service/internal/domain"
	"github.com/deskhive/space-booking-service/pkg/dbmetrics"
	"github.com/deskhive/space-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для политик возврата
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик возврата
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую политику возврата
func (r *Repository) Create(ctx context.Context, policy *domain.RefundPolicy) (*domain.RefundPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	tiersJSON, err := encodeTiers(policy.Tiers)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("refund_policies").
		Columns(
			"partner_id",
			"name",
			"calculation_type",
			"default_refund_percentage",
			"fixed_cancellation_fee_minor",
			"no_refund_hours",
			"minimum_notice_hours",
			"allow_same_day_refund",
			"tiers",
			"force_majeure_full_refund",
			"is_active",
			"is_default",
		).
		Values(
			policy.PartnerID,
			policy.Name,
			policy.CalculationType,
			policy.DefaultRefundPercentage,
			policy.FixedCancellationFeeMinor,
			policy.NoRefundHours,
			policy.MinimumNoticeHours,
			policy.AllowSameDayRefund,
			tiersJSON,
			policy.ForceMajeureFullRefund,
			policy.IsActive,
			policy.IsDefault,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// Update обновляет существующую политику возврата целиком
func (r *Repository) Update(ctx context.Context, policy *domain.RefundPolicy) (*domain.RefundPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	tiersJSON, err := encodeTiers(policy.Tiers)
	if err != nil {
		return nil, fmt.Errorf("%w: Update: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("refund_policies").
		Set("name", policy.Name).
		Set("calculation_type", policy.CalculationType).
		Set("default_refund_percentage", policy.DefaultRefundPercentage).
		Set("fixed_cancellation_fee_minor", policy.FixedCancellationFeeMinor).
		Set("no_refund_hours", policy.NoRefundHours).
		Set("minimum_notice_hours", policy.MinimumNoticeHours).
		Set("allow_same_day_refund", policy.AllowSameDayRefund).
		Set("tiers", tiersJSON).
		Set("force_majeure_full_refund", policy.ForceMajeureFullRefund).
		Set("is_active", policy.IsActive).
		Set("is_default", policy.IsDefault).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policy.ID, "partner_id": policy.PartnerID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// GetByID получает политику по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RefundPolicy, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetDefaultByPartner получает активную дефолтную политику партнёра
func (r *Repository) GetDefaultByPartner(ctx context.Context, partnerID int64) (*domain.RefundPolicy, error) {
	return r.getOne(ctx, squirrel.Eq{"partner_id": partnerID, "is_default": true, "is_active": true})
}

// ListByPartner получает все политики партнёра
func (r *Repository) ListByPartner(ctx context.Context, partnerID int64) ([]*domain.RefundPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPolicies().
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByPartner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPartner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.RefundPolicy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByPartner - scan row: %v", ErrScanRow, err)
		}
		policies = append(policies, policy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPartner - rows error: %v", ErrScanRow, err)
	}

	return policies, nil
}

// ClearDefault снимает флаг is_default со всех политик партнёра
// Вызывается в той же транзакции, что и установка нового дефолта
func (r *Repository) ClearDefault(ctx context.Context, partnerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("refund_policies").
		Set("is_default", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"partner_id": partnerID, "is_default": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearDefault - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearDefault - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.RefundPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPolicies().
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	policy, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan policy: %v", ErrScanRow, err)
	}

	return policy, nil
}

func selectPolicies() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"partner_id",
		"name",
		"calculation_type",
		"default_refund_percentage",
		"fixed_cancellation_fee_minor",
		"no_refund_hours",
		"minimum_notice_hours",
		"allow_same_day_refund",
		"tiers",
		"force_majeure_full_refund",
		"is_active",
		"is_default",
		"created_at",
		"updated_at",
	).From("refund_policies")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.RefundPolicy, error) {
	var policy domain.RefundPolicy
	var tiersJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&policy.ID,
		&policy.PartnerID,
		&policy.Name,
		&policy.CalculationType,
		&policy.DefaultRefundPercentage,
		&policy.FixedCancellationFeeMinor,
		&policy.NoRefundHours,
		&policy.MinimumNoticeHours,
		&policy.AllowSameDayRefund,
		&tiersJSON,
		&policy.ForceMajeureFullRefund,
		&policy.IsActive,
		&policy.IsDefault,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tiers, err := decodeTiers(tiersJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	policy.Tiers = tiers
	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// --- JSON-представление tiers ---

type tierJSON struct {
	HoursBeforeStart int    `json:"hoursBeforeStart"`
	RefundPercentage int    `json:"refundPercentage"`
	FixedFeeMinor    *int64 `json:"fixedFeeMinor,omitempty"`
}

func encodeTiers(tiers []domain.RefundTier) ([]byte, error) {
	out := make([]tierJSON, len(tiers))
	for i, tier := range tiers {
		out[i] = tierJSON{
			HoursBeforeStart: tier.HoursBeforeStart,
			RefundPercentage: tier.RefundPercentage,
			FixedFeeMinor:    tier.FixedFeeMinor,
		}
	}
	return json.Marshal(out)
}

func decodeTiers(data []byte) ([]domain.RefundTier, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw []tierJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	tiers := make([]domain.RefundTier, len(raw))
	for i, tier := range raw {
		tiers[i] = domain.RefundTier{
			HoursBeforeStart: tier.HoursBeforeStart,
			RefundPercentage: tier.RefundPercentage,
			FixedFeeMinor:    tier.FixedFeeMinor,
		}
	}

	return tiers, nil
}
