package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

func freeplayTemplate() *TimeSlotTemplate {
	return &TimeSlotTemplate{
		ID:           "tpl-1",
		DeviceTypeID: "type-rhythm",
		Name:         "Day freeplay",
		Type:         SlotTypeEarly,
		TimeSlot:     types.MustTimeSlot(10, 14),
		CreditOptions: []CreditOption{
			{
				Type:   CreditTypeFreeplay,
				Hours:  []int{2, 4},
				Prices: map[int]int{2: 5000, 4: 9000},
			},
		},
		Enable2P:     true,
		Price2PExtra: 1000,
		IsActive:     true,
	}
}

func TestTimeSlotTemplate_GetPrice(t *testing.T) {
	tpl := freeplayTemplate()

	price, ok := tpl.GetPrice(CreditTypeFreeplay, 4, false)
	require.True(t, ok)
	assert.Equal(t, 9000, price)

	// Доплата за второго игрока фиксированная
	price, ok = tpl.GetPrice(CreditTypeFreeplay, 4, true)
	require.True(t, ok)
	assert.Equal(t, 10000, price)

	price, ok = tpl.GetPrice(CreditTypeFreeplay, 2, false)
	require.True(t, ok)
	assert.Equal(t, 5000, price)
}

func TestTimeSlotTemplate_GetPrice_UnknownDuration(t *testing.T) {
	tpl := freeplayTemplate()

	_, ok := tpl.GetPrice(CreditTypeFreeplay, 3, false)
	assert.False(t, ok)
}

func TestTimeSlotTemplate_GetPrice_UnsupportedCreditType(t *testing.T) {
	tpl := freeplayTemplate()

	_, ok := tpl.GetPrice(CreditTypeUnlimited, 4, false)
	assert.False(t, ok)
}

func TestTimeSlotTemplate_GetPrice_2PDisabled(t *testing.T) {
	tpl := freeplayTemplate()
	tpl.Enable2P = false

	// Без поддержки 2P доплата не применяется
	price, ok := tpl.GetPrice(CreditTypeFreeplay, 4, true)
	require.True(t, ok)
	assert.Equal(t, 9000, price)
}

func TestTimeSlotTemplate_SupportsCreditType(t *testing.T) {
	tpl := freeplayTemplate()

	assert.True(t, tpl.SupportsCreditType(CreditTypeFreeplay))
	assert.False(t, tpl.SupportsCreditType(CreditTypeFixed))
}

func TestTimeSlotTemplate_ConflictsWith(t *testing.T) {
	a := freeplayTemplate()

	b := freeplayTemplate()
	b.ID = "tpl-2"
	b.TimeSlot = types.MustTimeSlot(12, 16)
	assert.True(t, a.ConflictsWith(b))

	// Разные типы слотов могут пересекаться по часам
	c := freeplayTemplate()
	c.ID = "tpl-3"
	c.Type = SlotTypeOvernight
	assert.False(t, a.ConflictsWith(c))

	// Неактивные шаблоны не конфликтуют
	d := freeplayTemplate()
	d.ID = "tpl-4"
	d.IsActive = false
	assert.False(t, a.ConflictsWith(d))

	assert.False(t, a.ConflictsWith(a))
	assert.False(t, a.ConflictsWith(nil))
}

func TestValidCreditType(t *testing.T) {
	ct, ok := ValidCreditType("freeplay")
	require.True(t, ok)
	assert.Equal(t, CreditTypeFreeplay, ct)

	_, ok = ValidCreditType("hourly")
	assert.False(t, ok)
}
