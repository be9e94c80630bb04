package timeslots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	scheduleRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/schedule"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

type fakeTemplateRepo struct {
	templates []*domain.TimeSlotTemplate
	err       error
}

func (f *fakeTemplateRepo) FindAll(_ context.Context, _ domain.TemplateFilter) ([]*domain.TimeSlotTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates, nil
}

func (f *fakeTemplateRepo) FindByID(_ context.Context, id string) (*domain.TimeSlotTemplate, error) {
	for _, t := range f.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}

type fakeScheduleRepo struct {
	schedule *domain.TimeSlotSchedule
	err      error
}

func (f *fakeScheduleRepo) FindByDateAndDeviceType(_ context.Context, _ types.VenueDate, _ string) (*domain.TimeSlotSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.schedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func template(id string, slotType domain.SlotType, startHour, endHour, priority int) *domain.TimeSlotTemplate {
	return &domain.TimeSlotTemplate{
		ID:           id,
		DeviceTypeID: "type-rhythm",
		Name:         id,
		Type:         slotType,
		TimeSlot:     types.MustTimeSlot(startHour, endHour),
		CreditOptions: []domain.CreditOption{
			{
				Type:   domain.CreditTypeFreeplay,
				Hours:  []int{2, 4},
				Prices: map[int]int{2: 5000, 4: 9000},
			},
		},
		Enable2P:     true,
		Price2PExtra: 1000,
		Priority:     priority,
		IsActive:     true,
	}
}

func newTestService(templates []*domain.TimeSlotTemplate, schedule *domain.TimeSlotSchedule) *Service {
	return NewService(
		&fakeTemplateRepo{templates: templates},
		&fakeScheduleRepo{schedule: schedule},
		nopLogger{},
	)
}

func TestService_GetAvailableTimeSlots_DefaultsSorted(t *testing.T) {
	svc := newTestService([]*domain.TimeSlotTemplate{
		template("tpl-night", domain.SlotTypeOvernight, 24, 28, 2),
		template("tpl-evening", domain.SlotTypeEarly, 18, 22, 1),
		template("tpl-morning", domain.SlotTypeEarly, 10, 14, 1),
	}, nil)

	date := types.NewVenueDate(2026, time.September, 15)
	result, err := svc.GetAvailableTimeSlots(context.Background(), date, "type-rhythm")
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "tpl-morning", result[0].ID)
	assert.Equal(t, "tpl-evening", result[1].ID)
	assert.Equal(t, "tpl-night", result[2].ID)
}

func TestService_GetAvailableTimeSlots_EmptyCatalog(t *testing.T) {
	svc := newTestService(nil, nil)

	date := types.NewVenueDate(2026, time.September, 15)
	result, err := svc.GetAvailableTimeSlots(context.Background(), date, "type-rhythm")

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestService_GetAvailableTimeSlots_OverrideSupersedesCoveredSlotTypes(t *testing.T) {
	defaults := []*domain.TimeSlotTemplate{
		template("tpl-day", domain.SlotTypeEarly, 10, 14, 1),
		template("tpl-night", domain.SlotTypeOvernight, 24, 28, 2),
	}
	// Праздничное переопределение меняет только дневные слоты
	holiday := template("tpl-holiday", domain.SlotTypeEarly, 8, 12, 1)
	schedule := &domain.TimeSlotSchedule{
		ID:           "sched-1",
		Date:         types.NewVenueDate(2026, time.September, 15),
		DeviceTypeID: "type-rhythm",
		Templates:    []*domain.TimeSlotTemplate{holiday},
	}

	svc := newTestService(defaults, schedule)

	result, err := svc.GetAvailableTimeSlots(context.Background(), schedule.Date, "type-rhythm")
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "tpl-holiday", result[0].ID)
	assert.Equal(t, "tpl-night", result[1].ID, "ночные слоты переопределение не трогает")
}

func TestService_GetAvailableTimeSlots_InactiveOverrideTemplatesSkipped(t *testing.T) {
	defaults := []*domain.TimeSlotTemplate{
		template("tpl-day", domain.SlotTypeEarly, 10, 14, 1),
	}
	disabled := template("tpl-holiday", domain.SlotTypeEarly, 8, 12, 1)
	disabled.IsActive = false
	schedule := &domain.TimeSlotSchedule{
		ID:        "sched-1",
		Date:      types.NewVenueDate(2026, time.September, 15),
		Templates: []*domain.TimeSlotTemplate{disabled},
	}

	svc := newTestService(defaults, schedule)

	result, err := svc.GetAvailableTimeSlots(context.Background(), schedule.Date, "type-rhythm")
	require.NoError(t, err)

	// Переопределение не покрывает early активными шаблонами, дефолты остаются
	require.Len(t, result, 1)
	assert.Equal(t, "tpl-day", result[0].ID)
}

func TestService_FindExactSlot(t *testing.T) {
	svc := newTestService([]*domain.TimeSlotTemplate{
		template("tpl-day", domain.SlotTypeEarly, 10, 14, 1),
		template("tpl-night", domain.SlotTypeOvernight, 24, 28, 2),
	}, nil)

	date := types.NewVenueDate(2026, time.September, 15)

	found, err := svc.FindExactSlot(context.Background(), date, "type-rhythm", types.MustTimeSlot(24, 28))
	require.NoError(t, err)
	assert.Equal(t, "tpl-night", found.ID)

	// Частичное совпадение часов не считается
	_, err = svc.FindExactSlot(context.Background(), date, "type-rhythm", types.MustTimeSlot(10, 12))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestService_FindExactSlot_PriorityWinsOnDuplicateHours(t *testing.T) {
	low := template("tpl-low", domain.SlotTypeEarly, 10, 14, 5)
	high := template("tpl-high", domain.SlotTypeOvernight, 10, 14, 1)

	svc := newTestService([]*domain.TimeSlotTemplate{low, high}, nil)

	date := types.NewVenueDate(2026, time.September, 15)
	found, err := svc.FindExactSlot(context.Background(), date, "type-rhythm", types.MustTimeSlot(10, 14))
	require.NoError(t, err)
	assert.Equal(t, "tpl-high", found.ID)
}

func TestService_GetPrice(t *testing.T) {
	svc := newTestService([]*domain.TimeSlotTemplate{
		template("tpl-day", domain.SlotTypeEarly, 10, 14, 1),
	}, nil)

	date := types.NewVenueDate(2026, time.September, 15)
	slot := types.MustTimeSlot(10, 14)

	price, err := svc.GetPrice(context.Background(), date, "type-rhythm", slot, domain.CreditTypeFreeplay, false)
	require.NoError(t, err)
	assert.Equal(t, 9000, price)

	price, err = svc.GetPrice(context.Background(), date, "type-rhythm", slot, domain.CreditTypeFreeplay, true)
	require.NoError(t, err)
	assert.Equal(t, 10000, price)

	_, err = svc.GetPrice(context.Background(), date, "type-rhythm", slot, domain.CreditTypeFixed, false)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestService_GetAvailableTimeSlots_RepoErrorWrapped(t *testing.T) {
	svc := NewService(
		&fakeTemplateRepo{err: errors.New("connection refused")},
		&fakeScheduleRepo{},
		nopLogger{},
	)

	date := types.NewVenueDate(2026, time.September, 15)
	_, err := svc.GetAvailableTimeSlots(context.Background(), date, "type-rhythm")
	assert.ErrorIs(t, err, ErrInternal)
}
