// Package rules реализует сквозные бизнес-правила бронирования.
//
// В отличие от fail-fast пайплайна create_reservation, правила здесь
// НАКАПЛИВАЮТ нарушения: пользователь получает полный список причин отказа,
// а не первую попавшуюся.
package rules

import (
	"fmt"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
)

// MaxActiveReservationsPerUser лимит одновременных активных броней на пользователя
const MaxActiveReservationsPerUser = 1

// Result результат проверки всех правил
type Result struct {
	IsValid bool
	Errors  []string
}

// Service сервис кросс-пользовательских правил бронирования.
// Чистая логика без I/O: список активных броней пользователя загружает вызывающий.
type Service struct{}

// NewService создает сервис правил
func NewService() *Service {
	return &Service{}
}

// ValidateAll прогоняет кандидата через все правила и накапливает ошибки.
// Порядок фиксированный: пересечение по времени, затем лимит активных броней.
func (s *Service) ValidateAll(candidate *domain.Reservation, activeReservations []*domain.Reservation) Result {
	var errs []string

	errs = append(errs, s.validateNoTimeOverlap(candidate, activeReservations)...)
	errs = append(errs, s.validateActiveLimit(candidate, activeReservations)...)

	return Result{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// validateNoTimeOverlap правило "одно устройство за раз": кандидат не должен
// пересекаться по реальному времени ни с одной живой бронью пользователя,
// на любом устройстве. Сравнение по резолвленным инстантам, чтобы ночные
// слоты (часы 24-29) корректно пересекались с утренними слотами следующего дня.
func (s *Service) validateNoTimeOverlap(candidate *domain.Reservation, reservations []*domain.Reservation) []string {
	var errs []string

	for _, existing := range reservations {
		if existing.ID == candidate.ID || existing.UserID != candidate.UserID {
			continue
		}
		if !existing.IsActive() {
			continue
		}
		if candidate.OverlapsWith(existing) {
			errs = append(errs, fmt.Sprintf(
				"overlapping reservation %s on %s %s: one device at a time",
				existing.ReservationNumber, existing.Date, existing.TimeSlot))
		}
	}
	return errs
}

// validateActiveLimit правило лимита: не более одной активной брони
// (pending/approved/checked_in) на пользователя, независимо от даты
func (s *Service) validateActiveLimit(candidate *domain.Reservation, reservations []*domain.Reservation) []string {
	active := 0
	for _, existing := range reservations {
		if existing.ID == candidate.ID || existing.UserID != candidate.UserID {
			continue
		}
		if existing.IsActive() {
			active++
		}
	}

	if active >= MaxActiveReservationsPerUser {
		return []string{fmt.Sprintf(
			"active reservation limit is %d per user: complete or cancel the existing reservation first",
			MaxActiveReservationsPerUser)}
	}
	return nil
}
