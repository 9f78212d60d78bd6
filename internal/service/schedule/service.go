package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/space-booking-service/internal/domain"
	scheduleRepo "github.com/deskhive/space-booking-service/internal/infra/storage/schedule"
	spaceRepo "github.com/deskhive/space-booking-service/internal/infra/storage/space"
	"github.com/deskhive/space-booking-service/internal/service/schedule/models"
)

// Service сервис для управления расписаниями и override'ами
type Service struct {
	scheduleRepo ScheduleRepository
	spaceRepo    SpaceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	spaceRepo SpaceRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		spaceRepo:    spaceRepo,
		logger:       logger,
	}
}

// SetWeeklyPattern устанавливает недельный паттерн пространства
// Паттерн заменяется целиком - частичного обновления по дням нет
// Доступно только партнёру-владельцу пространства
func (s *Service) SetWeeklyPattern(ctx context.Context, req *models.SetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetWeeklyPattern: updating schedule for space=%d by partner=%d", req.SpaceID, req.PartnerID)

	// 1. Валидируем и конвертируем паттерн
	pattern, err := req.ToDomainPattern()
	if err != nil {
		s.logger.Warn("SetWeeklyPattern: validation failed for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем права доступа владельца
	if err := s.checkOwnership(ctx, req.SpaceID, req.PartnerID); err != nil {
		return nil, err
	}

	// 3. Сохраняем паттерн
	saved, err := s.scheduleRepo.UpsertPattern(ctx, pattern)
	if err != nil {
		s.logger.Error("SetWeeklyPattern: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: SetWeeklyPattern - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetWeeklyPattern: successfully updated schedule for space=%d", req.SpaceID)
	return models.FromDomainPattern(saved), nil
}

// GetSchedule получает недельный паттерн пространства
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, spaceID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for space=%d", spaceID)

	pattern, err := s.scheduleRepo.GetPattern(ctx, spaceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrPatternNotFound) {
			s.logger.Warn("GetSchedule: schedule for space=%d not found", spaceID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for space=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPattern(pattern), nil
}

// SetOverride устанавливает override для конкретной даты
// Второй override на ту же дату запрещён - существующий надо заменять явно (req.Replace)
// Доступно только партнёру-владельцу пространства
func (s *Service) SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("SetOverride: setting override for space=%d date=%s by partner=%d (replace=%v)",
		req.SpaceID, req.Date, req.PartnerID, req.Replace)

	// 1. Валидируем и конвертируем override
	override, err := req.ToDomainOverride()
	if err != nil {
		s.logger.Warn("SetOverride: validation failed for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(override.Reason) > domain.MaxOverrideReasonLength {
		s.logger.Warn("SetOverride: reason too long for space=%d date=%s", req.SpaceID, req.Date)
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxOverrideReasonLength)
	}

	// 2. Проверяем права доступа владельца
	if err := s.checkOwnership(ctx, req.SpaceID, req.PartnerID); err != nil {
		return nil, err
	}

	// 3. Создаем или заменяем override
	var saved *domain.AvailabilityOverride
	if req.Replace {
		saved, err = s.scheduleRepo.ReplaceOverride(ctx, override)
	} else {
		saved, err = s.scheduleRepo.CreateOverride(ctx, override)
	}

	if err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideExists) {
			s.logger.Warn("SetOverride: override already exists for space=%d date=%s", req.SpaceID, req.Date)
			return nil, ErrOverrideExists
		}
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("SetOverride: override for space=%d date=%s not found for replace", req.SpaceID, req.Date)
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("SetOverride: repository error for space=%d date=%s: %v", req.SpaceID, req.Date, err)
		return nil, fmt.Errorf("%w: SetOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetOverride: successfully set override id=%d for space=%d date=%s",
		saved.ID, req.SpaceID, req.Date)
	return models.FromDomainOverride(saved), nil
}

// DeleteOverride удаляет override для конкретной даты
// Доступно только партнёру-владельцу пространства
func (s *Service) DeleteOverride(ctx context.Context, partnerID, spaceID int64, date time.Time) error {
	s.logger.Info("DeleteOverride: deleting override for space=%d date=%s by partner=%d",
		spaceID, date.Format(domain.DateFormat), partnerID)

	if err := s.checkOwnership(ctx, spaceID, partnerID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteOverride(ctx, spaceID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override for space=%d date=%s not found",
				spaceID, date.Format(domain.DateFormat))
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for space=%d: %v", spaceID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: successfully deleted override for space=%d date=%s",
		spaceID, date.Format(domain.DateFormat))
	return nil
}

// Вспомогательные методы

// checkOwnership проверяет, что пространство принадлежит партнёру
func (s *Service) checkOwnership(ctx context.Context, spaceID, partnerID int64) error {
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("checkOwnership: space id=%d not found", spaceID)
			return ErrSpaceNotFound
		}
		s.logger.Error("checkOwnership: failed to get space id=%d: %v", spaceID, err)
		return fmt.Errorf("%w: checkOwnership - failed to get space: %v", ErrInternal, err)
	}

	if space.PartnerID != partnerID {
		s.logger.Warn("checkOwnership: partner=%d does not own space=%d", partnerID, spaceID)
		return ErrAccessDenied
	}

	return nil
}
