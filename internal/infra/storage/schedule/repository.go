package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/deskhive/space-booking-service/internal/domain"
	"github.com/deskhive/space-booking-service/pkg/dbmetrics"
	"github.com/deskhive/space-booking-service/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникального констрейнта
const pgUniqueViolation = "23505"

// Repository репозиторий для недельных паттернов и availability override'ов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// --- Недельный паттерн ---

// UpsertPattern сохраняет недельный паттерн пространства целиком
// Обновление заменяет все дни сразу - частичного слияния по дням нет
func (r *Repository) UpsertPattern(ctx context.Context, pattern *domain.WeeklyPattern) (*domain.WeeklyPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	daysJSON, err := encodeDays(pattern.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPattern: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("weekly_patterns").
		Columns("space_id", "days").
		Values(pattern.SpaceID, daysJSON).
		Suffix("ON CONFLICT (space_id) DO UPDATE SET days = EXCLUDED.days, updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPattern - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPattern - execute insert: %v", ErrExecQuery, err)
	}

	pattern.CreatedAt = createdAt.Time
	pattern.UpdatedAt = updatedAt.Time

	return pattern, nil
}

// GetPattern получает недельный паттерн пространства
func (r *Repository) GetPattern(ctx context.Context, spaceID int64) (*domain.WeeklyPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("space_id", "days", "created_at", "updated_at").
		From("weekly_patterns").
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPattern - build select query: %v", ErrBuildQuery, err)
	}

	var pattern domain.WeeklyPattern
	var daysJSON []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pattern.SpaceID,
		&daysJSON,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPattern - scan pattern: %v", ErrScanRow, err)
	}

	days, err := decodeDays(daysJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPattern: %v", ErrDecode, err)
	}

	pattern.Days = days
	pattern.CreatedAt = createdAt.Time
	pattern.UpdatedAt = updatedAt.Time

	return &pattern, nil
}

// --- Override'ы ---

// CreateOverride создает override для пары (space, date)
// Второй override на ту же дату запрещён уникальным констрейнтом
func (r *Repository) CreateOverride(ctx context.Context, override *domain.AvailabilityOverride) (*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_overrides").
		Columns(
			"space_id",
			"date",
			"is_available",
			"reason",
			"open_start_minute",
			"open_end_minute",
			"price_minor",
		).
		Values(
			override.SpaceID,
			override.Date,
			override.IsAvailable,
			override.Reason,
			openStart(override),
			openEnd(override),
			override.PriceMinor,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrOverrideExists
		}
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// ReplaceOverride явно заменяет существующий override для (space, date)
func (r *Repository) ReplaceOverride(ctx context.Context, override *domain.AvailabilityOverride) (*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_overrides").
		Set("is_available", override.IsAvailable).
		Set("reason", override.Reason).
		Set("open_start_minute", openStart(override)).
		Set("open_end_minute", openEnd(override)).
		Set("price_minor", override.PriceMinor).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"space_id": override.SpaceID, "date": override.Date}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceOverride - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceOverride - execute update: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// GetOverride получает override для пары (space, date)
func (r *Repository) GetOverride(ctx context.Context, spaceID int64, date time.Time) (*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"space_id",
		"date",
		"is_available",
		"reason",
		"open_start_minute",
		"open_end_minute",
		"price_minor",
		"created_at",
		"updated_at",
	).
		From("availability_overrides").
		Where(squirrel.Eq{"space_id": spaceID, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.AvailabilityOverride
	var startMinute, endMinute sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&override.SpaceID,
		&override.Date,
		&override.IsAvailable,
		&override.Reason,
		&startMinute,
		&endMinute,
		&override.PriceMinor,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %v", ErrScanRow, err)
	}

	if startMinute.Valid && endMinute.Valid {
		interval, err := domain.NewTimeInterval(int(startMinute.Int64), int(endMinute.Int64))
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverride - malformed interval: %v", ErrScanRow, err)
		}
		override.OpenInterval = &interval
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

// DeleteOverride удаляет override для пары (space, date)
func (r *Repository) DeleteOverride(ctx context.Context, spaceID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_overrides").
		Where(squirrel.Eq{"space_id": spaceID, "date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// --- JSON-представление паттерна ---

type daySlotJSON struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PriceMinor int64  `json:"priceMinor"`
}

type dayScheduleJSON struct {
	IsAvailable bool          `json:"isAvailable"`
	Slots       []daySlotJSON `json:"slots"`
}

func encodeDays(days map[time.Weekday]domain.DaySchedule) ([]byte, error) {
	out := make(map[string]dayScheduleJSON, len(days))
	for weekday, day := range days {
		key, ok := domain.WeekdayKeys[weekday]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %d", weekday)
		}

		slots := make([]daySlotJSON, len(day.Slots))
		for i, slot := range day.Slots {
			slots[i] = daySlotJSON{
				Start:      domain.FormatClock(slot.Interval.Start),
				End:        domain.FormatClock(slot.Interval.End),
				PriceMinor: slot.PriceMinor,
			}
		}

		out[key] = dayScheduleJSON{IsAvailable: day.IsAvailable, Slots: slots}
	}

	return json.Marshal(out)
}

func decodeDays(data []byte) (map[time.Weekday]domain.DaySchedule, error) {
	var raw map[string]dayScheduleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	days := make(map[time.Weekday]domain.DaySchedule, len(raw))
	for weekday, key := range domain.WeekdayKeys {
		entry, ok := raw[key]
		if !ok {
			// Пропущенный день не восстанавливаем - resolver вернёт ScheduleGap
			continue
		}

		slots := make([]domain.PricedSlot, len(entry.Slots))
		for i, slot := range entry.Slots {
			interval, err := domain.ParseTimeInterval(slot.Start, slot.End)
			if err != nil {
				return nil, err
			}
			slots[i] = domain.PricedSlot{Interval: interval, PriceMinor: slot.PriceMinor}
		}

		days[weekday] = domain.DaySchedule{IsAvailable: entry.IsAvailable, Slots: slots}
	}

	return days, nil
}

func openStart(o *domain.AvailabilityOverride) *int {
	if o.OpenInterval == nil {
		return nil
	}
	v := o.OpenInterval.Start
	return &v
}

func openEnd(o *domain.AvailabilityOverride) *int {
	if o.OpenInterval == nil {
		return nil
	}
	v := o.OpenInterval.End
	return &v
}
