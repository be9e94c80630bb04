package get_available_slots

import (
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// hasUnitLimits сообщает, задает ли хоть один шаблон лимит юнитов
func hasUnitLimits(templates []*domain.TimeSlotTemplate) bool {
	for _, t := range templates {
		if t.MaxRentalUnits != nil {
			return true
		}
	}
	return false
}

// buildSlots вычисляет доступность каждого шаблона для устройства.
// Сравнение идет по реальным временным окнам, поэтому ночные слоты
// корректно пересекаются с утренними бронями следующего дня.
func buildSlots(
	templates []*domain.TimeSlotTemplate,
	date types.VenueDate,
	deviceID string,
	deviceReservations []*domain.Reservation,
	typeReservations []*domain.Reservation,
) []Slot {
	slots := make([]Slot, 0, len(templates))

	for _, t := range templates {
		slotStart, slotEnd := t.TimeSlot.Resolve(date)

		slot := Slot{
			TemplateID:    t.ID,
			Name:          t.Name,
			SlotType:      string(t.Type),
			StartHour:     t.TimeSlot.StartHour(),
			EndHour:       t.TimeSlot.EndHour(),
			IsYouthTime:   t.IsYouthTime,
			Enable2P:      t.Enable2P,
			Price2PExtra:  t.Price2PExtra,
			CreditOptions: t.CreditOptions,
			IsAvailable:   !anyOverlap(slotStart, slotEnd, deviceReservations),
		}

		if t.MaxRentalUnits != nil {
			taken := countOverlap(slotStart, slotEnd, typeReservations)
			remaining := *t.MaxRentalUnits - taken
			if remaining < 0 {
				remaining = 0
			}
			slot.RemainingUnits = &remaining
			if remaining == 0 {
				slot.IsAvailable = false
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

// anyOverlap сообщает, занимает ли хоть одна живая бронь часть окна
func anyOverlap(start, end time.Time, reservations []*domain.Reservation) bool {
	return countOverlap(start, end, reservations) > 0
}

// countOverlap подсчитывает живые брони, чьи окна пересекаются с указанным.
// Строгие неравенства: граничащие интервалы не считаются пересечением.
func countOverlap(start, end time.Time, reservations []*domain.Reservation) int {
	count := 0
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		if res.StartDateTime().Before(end) && start.Before(res.EndDateTime()) {
			count++
		}
	}
	return count
}
