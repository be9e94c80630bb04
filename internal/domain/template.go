package domain

import (
	"time"

	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// CreditType represents the billing mode of a session
type CreditType string

const (
	CreditTypeFixed     CreditType = "fixed"     // Фиксированное число кредитов
	CreditTypeFreeplay  CreditType = "freeplay"  // Неограниченные игры в пределах окна
	CreditTypeUnlimited CreditType = "unlimited" // Открытый вариант
)

// ValidCreditType проверяет, что строка является допустимым типом кредита
func ValidCreditType(s string) (CreditType, bool) {
	t := CreditType(s)
	switch t {
	case CreditTypeFixed, CreditTypeFreeplay, CreditTypeUnlimited:
		return t, true
	}
	return "", false
}

// SlotType represents the operating-day segment a template belongs to
type SlotType string

const (
	SlotTypeEarly     SlotType = "early"     // Дневные слоты
	SlotTypeOvernight SlotType = "overnight" // Ночные слоты с переходом через полночь
)

// CreditOption is one billing mode offered by a template: the supported
// session durations and the price for each duration.
type CreditOption struct {
	Type         CreditType  `json:"type"`
	Hours        []int       `json:"hours"`
	Prices       map[int]int `json:"prices"` // duration hours -> price
	FixedCredits *int        `json:"fixedCredits,omitempty"`
}

// PriceFor returns the price for the given duration, or false when the
// option has no entry for it.
func (o *CreditOption) PriceFor(durationHours int) (int, bool) {
	price, ok := o.Prices[durationHours]
	return price, ok
}

// TimeSlotTemplate is a catalog entry describing a bookable window for a
// device type: the extended-hour slot, billing options, 2-player support,
// youth-time restriction and priority for tie-breaks.
type TimeSlotTemplate struct {
	ID           string
	DeviceTypeID string
	Name         string
	Type         SlotType
	TimeSlot     types.TimeSlot

	CreditOptions []CreditOption
	Enable2P      bool
	Price2PExtra  int
	IsYouthTime   bool

	// MaxRentalUnits ограничивает количество одновременных броней этого
	// типа устройств в сегменте слота. nil = без ограничения.
	MaxRentalUnits *int

	Priority int
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreditOption returns the option for the requested billing mode.
func (t *TimeSlotTemplate) CreditOption(creditType CreditType) (*CreditOption, bool) {
	for i := range t.CreditOptions {
		if t.CreditOptions[i].Type == creditType {
			return &t.CreditOptions[i], true
		}
	}
	return nil, false
}

// SupportsCreditType reports whether the template offers the billing mode.
func (t *TimeSlotTemplate) SupportsCreditType(creditType CreditType) bool {
	_, ok := t.CreditOption(creditType)
	return ok
}

// GetPrice computes the price for the requested billing mode and duration.
// The 2-player surcharge is flat and applied only when the template allows 2P.
// Returns false when either the billing mode or the duration has no price.
func (t *TimeSlotTemplate) GetPrice(creditType CreditType, durationHours int, is2P bool) (int, bool) {
	option, ok := t.CreditOption(creditType)
	if !ok {
		return 0, false
	}
	base, ok := option.PriceFor(durationHours)
	if !ok {
		return 0, false
	}
	if is2P && t.Enable2P {
		base += t.Price2PExtra
	}
	return base, true
}

// ConflictsWith reports whether two active templates of the same slot type
// cover intersecting hour ranges. Templates of different slot types may
// legitimately share hours.
func (t *TimeSlotTemplate) ConflictsWith(other *TimeSlotTemplate) bool {
	if other == nil || t.ID == other.ID {
		return false
	}
	if t.Type != other.Type {
		return false
	}
	if !t.IsActive || !other.IsActive {
		return false
	}
	return t.TimeSlot.Overlaps(other.TimeSlot)
}

// TemplateFilter фильтр для выборки шаблонов из каталога
type TemplateFilter struct {
	DeviceTypeID *string
	IsActive     *bool
}
