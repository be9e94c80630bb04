package create_reservation

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	deviceRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/device"
	reservationRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/reservation"
	userClientPkg "github.com/gameplaza/GP-ReservationService/internal/integrations/userservice"
	"github.com/gameplaza/GP-ReservationService/internal/service/rules"
	"github.com/gameplaza/GP-ReservationService/internal/service/timeslots"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// fakeReservationRepo хранит брони в памяти. Create имитирует ограничение
// уникальности БД: конфликтующая живая бронь на том же устройстве дает
// ErrDuplicateSlot.
type fakeReservationRepo struct {
	mu     sync.Mutex
	stored []*domain.Reservation

	typeReservations []*domain.Reservation

	getByUserErr error
	createErr    error
	seq          int
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.stored {
		if res.ConflictsWith(existing) {
			return nil, reservationRepo.ErrDuplicateSlot
		}
	}

	created := *res
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.stored = append(f.stored, &created)
	return &created, nil
}

func (f *fakeReservationRepo) GetByUserID(_ context.Context, userID string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByUserErr != nil {
		return nil, f.getByUserErr
	}

	var result []*domain.Reservation
	for _, res := range f.stored {
		if res.UserID == userID && statusIn(res.Status, statuses) {
			result = append(result, res)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByDeviceAndDateRange(_ context.Context, deviceID string, start, end time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Reservation
	for _, res := range f.stored {
		if res.DeviceID != deviceID || !statusIn(res.Status, statuses) {
			continue
		}
		if res.StartDateTime().Before(end) && start.Before(res.EndDateTime()) {
			result = append(result, res)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) GetActiveByDeviceTypeAndDate(_ context.Context, _ string, _ types.VenueDate) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.typeReservations, nil
}

func (f *fakeReservationRepo) GenerateReservationNumber(_ context.Context, date types.VenueDate) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s-%s-%04d", domain.ReservationNumberPrefix, date.Compact(), f.seq), nil
}

func statusIn(status domain.ReservationStatus, statuses []domain.ReservationStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type fakeDeviceRepo struct {
	devices map[string]*domain.Device
}

func (f *fakeDeviceRepo) GetByID(_ context.Context, id string) (*domain.Device, error) {
	device, ok := f.devices[id]
	if !ok {
		return nil, deviceRepo.ErrDeviceNotFound
	}
	return device, nil
}

type fakeUserClient struct {
	users map[string]*domain.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID string) (*domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, userClientPkg.ErrUserNotFound
	}
	return user, nil
}

type fakeSlotService struct {
	template *domain.TimeSlotTemplate
}

func (f *fakeSlotService) FindExactSlot(_ context.Context, _ types.VenueDate, _ string, slot types.TimeSlot) (*domain.TimeSlotTemplate, error) {
	if f.template != nil && f.template.TimeSlot.Equal(slot) {
		return f.template, nil
	}
	return nil, timeslots.ErrTemplateNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fixture собирает use case с валидным состоянием по умолчанию:
// активный взрослый пользователь, доступное устройство, дневной freeplay-шаблон
type fixture struct {
	uc       *UseCase
	repo     *fakeReservationRepo
	devices  *fakeDeviceRepo
	users    *fakeUserClient
	slots    *fakeSlotService
	template *domain.TimeSlotTemplate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	birth := time.Date(1998, time.April, 12, 0, 0, 0, 0, types.VenueLocation)
	users := &fakeUserClient{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "player@example.com", FullName: "Test Player", Status: domain.UserStatusActive, BirthDate: &birth},
	}}

	devices := &fakeDeviceRepo{devices: map[string]*domain.Device{
		"dev-1": {ID: "dev-1", DeviceNumber: "PM-01", TypeID: "type-rhythm", Status: domain.DeviceStatusAvailable},
		"dev-2": {ID: "dev-2", DeviceNumber: "PM-02", TypeID: "type-rhythm", Status: domain.DeviceStatusAvailable},
	}}

	template := &domain.TimeSlotTemplate{
		ID:           "tpl-1",
		DeviceTypeID: "type-rhythm",
		Name:         "Day freeplay",
		Type:         domain.SlotTypeEarly,
		TimeSlot:     types.MustTimeSlot(10, 14),
		CreditOptions: []domain.CreditOption{
			{
				Type:   domain.CreditTypeFreeplay,
				Hours:  []int{2, 4},
				Prices: map[int]int{2: 5000, 4: 9000},
			},
		},
		Enable2P:     true,
		Price2PExtra: 1000,
		IsActive:     true,
	}

	repo := &fakeReservationRepo{}
	slots := &fakeSlotService{template: template}

	uc := NewUseCase(repo, devices, users, slots, rules.NewService(), fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2026, time.September, 10, 12, 0, 0, 0, types.VenueLocation)}

	return &fixture{uc: uc, repo: repo, devices: devices, users: users, slots: slots, template: template}
}

func validRequest() *Request {
	return &Request{
		UserID:      "user-1",
		DeviceID:    "dev-1",
		Date:        "2026-09-15",
		StartHour:   10,
		EndHour:     14,
		CreditType:  "freeplay",
		PlayerCount: 1,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Regexp(t, regexp.MustCompile(`^GP-20260915-\d{4}$`), resp.ReservationNumber)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "dev-1", resp.DeviceID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, 10, resp.StartHour)
	assert.Equal(t, 14, resp.EndHour)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "freeplay", resp.CreditType)
	assert.Equal(t, 9000, resp.TotalPrice)

	require.Len(t, f.repo.stored, 1)
}

func TestUseCase_Execute_TwoPlayerSurcharge(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.PlayerCount = 2

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.PlayerCount)
	assert.Equal(t, 10000, resp.TotalPrice)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing user", func(r *Request) { r.UserID = "" }},
		{"missing device", func(r *Request) { r.DeviceID = "" }},
		{"missing date", func(r *Request) { r.Date = "" }},
		{"bad date format", func(r *Request) { r.Date = "15.09.2026" }},
		{"hour out of range", func(r *Request) { r.StartHour = 30; r.EndHour = 32 }},
		{"empty slot", func(r *Request) { r.StartHour = 14; r.EndHour = 10 }},
		{"unknown credit type", func(r *Request) { r.CreditType = "hourly" }},
		{"zero players", func(r *Request) { r.PlayerCount = 0 }},
		{"too many players", func(r *Request) { r.PlayerCount = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Date = "2026-09-09"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestUseCase_Execute_TodayIsBookable(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Date = "2026-09-10"

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_UserNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.UserID = "user-ghost"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUseCase_Execute_SuspendedUserDenied(t *testing.T) {
	f := newFixture(t)
	f.users.users["user-1"].Status = domain.UserStatusSuspended

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUseCase_Execute_DeviceNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.DeviceID = "dev-ghost"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestUseCase_Execute_DeviceUnavailable(t *testing.T) {
	f := newFixture(t)

	for _, status := range []domain.DeviceStatus{domain.DeviceStatusInUse, domain.DeviceStatusMaintenance, domain.DeviceStatusOffline} {
		f.devices.devices["dev-1"].Status = status

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDeviceUnavailable, "status=%s", status)
	}
}

func TestUseCase_Execute_NoMatchingSlot(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StartHour = 11
	req.EndHour = 15

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUseCase_Execute_UnsupportedCreditType(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.CreditType = "fixed"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnsupportedCreditType)
}

func TestUseCase_Execute_TwoPlayerNotAllowed(t *testing.T) {
	f := newFixture(t)
	f.template.Enable2P = false

	req := validRequest()
	req.PlayerCount = 2

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTwoPlayerNotAllowed)
}

func TestUseCase_Execute_YouthSlot_AdultRejected(t *testing.T) {
	f := newFixture(t)
	f.template.IsYouthTime = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAdultNotAllowedInYouthSlot)
}

func TestUseCase_Execute_YouthSlot_UnknownBirthDateRejected(t *testing.T) {
	f := newFixture(t)
	f.template.IsYouthTime = true
	f.users.users["user-1"].BirthDate = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAdultNotAllowedInYouthSlot)
}

func TestUseCase_Execute_YouthSlot_YouthAccepted(t *testing.T) {
	f := newFixture(t)
	f.template.IsYouthTime = true

	// 15 лет на дату брони
	birth := time.Date(2011, time.January, 10, 0, 0, 0, 0, types.VenueLocation)
	f.users.users["user-1"].BirthDate = &birth

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestUseCase_Execute_PriceNotFound(t *testing.T) {
	f := newFixture(t)

	// Шаблон на 3 часа без цены за эту длительность
	f.template.TimeSlot = types.MustTimeSlot(10, 13)

	req := validRequest()
	req.EndHour = 13

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestUseCase_Execute_ActiveReservationLimit(t *testing.T) {
	f := newFixture(t)

	// Первая бронь проходит
	first := validRequest()
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Вторая бронь того же пользователя на другой день упирается в лимит
	second := validRequest()
	second.DeviceID = "dev-2"
	second.Date = "2026-09-20"

	_, err = f.uc.Execute(context.Background(), second)
	require.ErrorIs(t, err, ErrRuleViolation)
	assert.Contains(t, err.Error(), "active reservation limit")
}

func TestUseCase_Execute_DeviceConflict(t *testing.T) {
	f := newFixture(t)

	// Устройство уже занято другим пользователем в пересекающемся окне
	f.repo.stored = append(f.repo.stored, &domain.Reservation{
		ID:       "res-existing",
		UserID:   "user-2",
		DeviceID: "dev-1",
		Date:     types.NewVenueDate(2026, time.September, 15),
		TimeSlot: types.MustTimeSlot(10, 14),
		Status:   domain.StatusApproved,
	})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestUseCase_Execute_OvernightConflictAcrossDates(t *testing.T) {
	f := newFixture(t)
	f.template.TimeSlot = types.MustTimeSlot(2, 4)

	// Ночная бронь 26-28 на 15-е занимает 02:00-04:00 16-го
	f.repo.stored = append(f.repo.stored, &domain.Reservation{
		ID:       "res-overnight",
		UserID:   "user-2",
		DeviceID: "dev-1",
		Date:     types.NewVenueDate(2026, time.September, 15),
		TimeSlot: types.MustTimeSlot(26, 28),
		Status:   domain.StatusApproved,
	})

	req := validRequest()
	req.Date = "2026-09-16"
	req.StartHour = 2
	req.EndHour = 4

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestUseCase_Execute_MaxRentalUnitsExceeded(t *testing.T) {
	f := newFixture(t)

	limit := 2
	f.template.MaxRentalUnits = &limit

	date := types.NewVenueDate(2026, time.September, 15)
	f.repo.typeReservations = []*domain.Reservation{
		{ID: "res-1", UserID: "user-2", DeviceID: "dev-2", Date: date, TimeSlot: types.MustTimeSlot(10, 14), Status: domain.StatusApproved},
		{ID: "res-2", UserID: "user-3", DeviceID: "dev-3", Date: date, TimeSlot: types.MustTimeSlot(12, 16), Status: domain.StatusPending},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMaxUnitsExceeded)
}

func TestUseCase_Execute_MaxRentalUnits_FinalStatusesDoNotCount(t *testing.T) {
	f := newFixture(t)

	limit := 1
	f.template.MaxRentalUnits = &limit

	date := types.NewVenueDate(2026, time.September, 15)
	f.repo.typeReservations = []*domain.Reservation{
		{ID: "res-1", UserID: "user-2", DeviceID: "dev-2", Date: date, TimeSlot: types.MustTimeSlot(10, 14), Status: domain.StatusCancelled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestUseCase_Execute_ConcurrentRequests_OneWins(t *testing.T) {
	f := newFixture(t)

	birth := time.Date(1998, time.April, 12, 0, 0, 0, 0, types.VenueLocation)
	f.users.users["user-2"] = &domain.User{
		ID: "user-2", Email: "second@example.com", FullName: "Second Player",
		Status: domain.UserStatusActive, BirthDate: &birth,
	}

	requests := []*Request{validRequest(), validRequest()}
	requests[1].UserID = "user-2"

	var wg sync.WaitGroup
	errs := make([]error, len(requests))

	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i, req)
	}
	wg.Wait()

	// Ровно одна бронь выигрывает слот, вторая получает отказ
	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotAlreadyBooked)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, f.repo.stored, 1)
}
