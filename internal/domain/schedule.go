package domain

import (
	"time"

	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// TimeSlotSchedule is a date-specific override of the default template set
// for a device type (holiday hours, special events). When an override exists
// for a date, its templates supersede the defaults for overlapping slot types.
type TimeSlotSchedule struct {
	ID           string
	Date         types.VenueDate
	DeviceTypeID string
	Templates    []*TimeSlotTemplate

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveTemplates returns only the active templates of the override.
func (s *TimeSlotSchedule) ActiveTemplates() []*TimeSlotTemplate {
	active := make([]*TimeSlotTemplate, 0, len(s.Templates))
	for _, t := range s.Templates {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active
}

// CoversSlotType reports whether the override defines at least one active
// template of the given slot type.
func (s *TimeSlotSchedule) CoversSlotType(slotType SlotType) bool {
	for _, t := range s.Templates {
		if t.IsActive && t.Type == slotType {
			return true
		}
	}
	return false
}
