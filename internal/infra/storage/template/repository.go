package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/dbmetrics"
	"github.com/gameplaza/GP-ReservationService/pkg/psqlbuilder"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

var templateColumns = []string{
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
}

// Repository репозиторий каталога шаблонов временных слотов.
// Варианты кредитов хранятся в JSONB-колонке credit_options.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindAll получает шаблоны по фильтру, отсортированные по priority и часу начала
func (r *Repository) FindAll(ctx context.Context, filter domain.TemplateFilter) ([]*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(templateColumns...).
		From("time_slot_templates").
		OrderBy("priority ASC, start_hour ASC")

	if filter.DeviceTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"device_type_id": *filter.DeviceTypeID})
	}
	if filter.IsActive != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// FindByID получает шаблон по ID
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("time_slot_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	template, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - scan template: %v", ErrScanRow, err)
	}
	return template, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.TimeSlotTemplate, error) {
	var (
		t                    domain.TimeSlotTemplate
		startHour, endHour   int
		creditOptionsJSON    []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
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
		return nil, err
	}

	slot, err := types.NewTimeSlot(startHour, endHour)
	if err != nil {
		return nil, fmt.Errorf("stored slot %d-%d: %v", startHour, endHour, err)
	}
	t.TimeSlot = slot

	if err := json.Unmarshal(creditOptionsJSON, &t.CreditOptions); err != nil {
		return nil, fmt.Errorf("unmarshal credit_options: %v", err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

func scanTemplates(rows *sql.Rows) ([]*domain.TimeSlotTemplate, error) {
	templates := make([]*domain.TimeSlotTemplate, 0)

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}
	return templates, nil
}
