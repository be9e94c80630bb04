package timeslots

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	scheduleRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/schedule"
	"github.com/gameplaza/GP-ReservationService/pkg/ptr"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// Service доменный сервис временных слотов.
// Отвечает за резолюцию: какие шаблоны действуют для конкретной даты и типа
// устройства с учетом календарных переопределений.
type Service struct {
	templateRepo TemplateRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает сервис временных слотов
func NewService(templateRepo TemplateRepository, scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetAvailableTimeSlots возвращает упорядоченный список шаблонов, действующих
// для даты и типа устройства.
//
// Правила резолюции:
//  1. По умолчанию действуют все активные шаблоны типа устройства.
//  2. Если на дату есть переопределение, его шаблоны вытесняют дефолтные
//     для тех типов слотов (early/overnight), которые оно покрывает.
//  3. Результат отсортирован по priority (возрастание), затем по часу начала.
//
// Отсутствие данных не является ошибкой: пустой каталог дает пустой список.
func (s *Service) GetAvailableTimeSlots(ctx context.Context, date types.VenueDate, deviceTypeID string) ([]*domain.TimeSlotTemplate, error) {
	defaults, err := s.templateRepo.FindAll(ctx, domain.TemplateFilter{
		DeviceTypeID: ptr.Ptr(deviceTypeID),
		IsActive:     ptr.Ptr(true),
	})
	if err != nil {
		s.logger.Error("GetAvailableTimeSlots: failed to load templates for device_type=%s: %v", deviceTypeID, err)
		return nil, fmt.Errorf("%w: load templates: %v", ErrInternal, err)
	}

	schedule, err := s.scheduleRepo.FindByDateAndDeviceType(ctx, date, deviceTypeID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Error("GetAvailableTimeSlots: failed to load schedule override for date=%s device_type=%s: %v",
			date, deviceTypeID, err)
		return nil, fmt.Errorf("%w: load schedule override: %v", ErrInternal, err)
	}

	result := defaults
	if schedule != nil {
		result = mergeWithOverride(defaults, schedule)
		s.logger.Info("GetAvailableTimeSlots: override id=%s supersedes defaults for date=%s device_type=%s",
			schedule.ID, date, deviceTypeID)
	}

	sortTemplates(result)
	return result, nil
}

// FindExactSlot возвращает шаблон, чей слот точно совпадает с запрошенным.
// При нескольких кандидатах (разные типы слотов на одни часы) побеждает
// меньший priority.
func (s *Service) FindExactSlot(ctx context.Context, date types.VenueDate, deviceTypeID string, slot types.TimeSlot) (*domain.TimeSlotTemplate, error) {
	templates, err := s.GetAvailableTimeSlots(ctx, date, deviceTypeID)
	if err != nil {
		return nil, err
	}

	// Список уже отсортирован по priority, берем первое совпадение
	for _, t := range templates {
		if t.TimeSlot.Equal(slot) {
			return t, nil
		}
	}
	return nil, ErrTemplateNotFound
}

// GetPrice возвращает цену для даты, типа устройства, слота и типа кредита
func (s *Service) GetPrice(ctx context.Context, date types.VenueDate, deviceTypeID string, slot types.TimeSlot, creditType domain.CreditType, is2P bool) (int, error) {
	template, err := s.FindExactSlot(ctx, date, deviceTypeID, slot)
	if err != nil {
		return 0, err
	}

	price, ok := template.GetPrice(creditType, slot.DurationHours(), is2P)
	if !ok {
		return 0, fmt.Errorf("%w: no price for credit_type=%s duration=%dh", ErrTemplateNotFound, creditType, slot.DurationHours())
	}
	return price, nil
}

// mergeWithOverride строит действующий набор шаблонов: шаблоны переопределения
// плюс дефолтные шаблоны тех типов слотов, которые переопределение не покрывает
func mergeWithOverride(defaults []*domain.TimeSlotTemplate, schedule *domain.TimeSlotSchedule) []*domain.TimeSlotTemplate {
	result := schedule.ActiveTemplates()

	for _, t := range defaults {
		if !schedule.CoversSlotType(t.Type) {
			result = append(result, t)
		}
	}
	return result
}

func sortTemplates(templates []*domain.TimeSlotTemplate) {
	sort.SliceStable(templates, func(i, j int) bool {
		if templates[i].Priority != templates[j].Priority {
			return templates[i].Priority < templates[j].Priority
		}
		return templates[i].TimeSlot.StartHour() < templates[j].TimeSlot.StartHour()
	})
}
