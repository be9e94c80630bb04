package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/dbmetrics"
	"github.com/gameplaza/GP-ReservationService/pkg/psqlbuilder"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// Repository репозиторий календарных переопределений расписания.
// Строка переопределения хранит список template_ids; сами шаблоны
// дотягиваются вторым запросом из time_slot_templates.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByDateAndDeviceType получает переопределение на дату для типа устройства.
// Возвращает ErrScheduleNotFound, если переопределения нет.
func (r *Repository) FindByDateAndDeviceType(ctx context.Context, date types.VenueDate, deviceTypeID string) (*domain.TimeSlotSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_date",
		"device_type_id",
		"template_ids",
		"created_at",
		"updated_at",
	).
		From("time_slot_schedules").
		Where(squirrel.Eq{"schedule_date": date.Time()}).
		Where(squirrel.Eq{"device_type_id": deviceTypeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByDateAndDeviceType - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s                    domain.TimeSlotSchedule
		scheduleDate         time.Time
		templateIDs          pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&scheduleDate,
		&s.DeviceTypeID,
		&templateIDs,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByDateAndDeviceType - scan schedule: %v", ErrScanRow, err)
	}

	s.Date = types.NewVenueDate(scheduleDate.Year(), scheduleDate.Month(), scheduleDate.Day())
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	templates, err := r.loadTemplates(ctx, executor, templateIDs)
	if err != nil {
		return nil, err
	}
	s.Templates = templates

	return &s, nil
}

// loadTemplates дотягивает шаблоны переопределения из каталога
func (r *Repository) loadTemplates(ctx context.Context, executor dbmetrics.DBExecutor, ids []string) ([]*domain.TimeSlotTemplate, error) {
	if len(ids) == 0 {
		return []*domain.TimeSlotTemplate{}, nil
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"device_type_id",
		"name",
		"slot_type",
		"start_hour",
		"end_hour",
		"credit_options",
		"enable_2p",
		"price_2p_extra",
		"is_youth_time",
		"max_rental_units",
		"priority",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("time_slot_templates").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("priority ASC, start_hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.TimeSlotTemplate, 0, len(ids))
	for rows.Next() {
		var (
			t                    domain.TimeSlotTemplate
			startHour, endHour   int
			creditOptionsJSON    []byte
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&t.ID,
			&t.DeviceTypeID,
			&t.Name,
			&t.Type,
			&startHour,
			&endHour,
			&creditOptionsJSON,
			&t.Enable2P,
			&t.Price2PExtra,
			&t.IsYouthTime,
			&t.MaxRentalUnits,
			&t.Priority,
			&t.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadTemplates - scan row: %v", ErrScanRow, err)
		}

		slot, err := types.NewTimeSlot(startHour, endHour)
		if err != nil {
			return nil, fmt.Errorf("%w: loadTemplates - stored slot %d-%d: %v", ErrScanRow, startHour, endHour, err)
		}
		t.TimeSlot = slot

		if err := json.Unmarshal(creditOptionsJSON, &t.CreditOptions); err != nil {
			return nil, fmt.Errorf("%w: loadTemplates - unmarshal credit_options: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		templates = append(templates, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadTemplates - rows error: %v", ErrScanRow, err)
	}
	return templates, nil
}
