package device

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/dbmetrics"
	"github.com/gameplaza/GP-ReservationService/pkg/psqlbuilder"
)

var deviceColumns = []string{
	"id",
	"device_number",
	"type_id",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий устройств зала
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория устройств
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает устройство по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(deviceColumns...).
		From("devices").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		d                    domain.Device
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&d.DeviceNumber,
		&d.TypeID,
		&d.Status,
		&d.Notes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan device: %v", ErrScanRow, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time
	return &d, nil
}

// GetByTypeID получает все устройства указанного типа
func (r *Repository) GetByTypeID(ctx context.Context, typeID string) ([]*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(deviceColumns...).
		From("devices").
		Where(squirrel.Eq{"type_id": typeID}).
		OrderBy("device_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTypeID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTypeID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	devices := make([]*domain.Device, 0)
	for rows.Next() {
		var (
			d                    domain.Device
			createdAt, updatedAt sql.NullTime
		)
		err := rows.Scan(
			&d.ID,
			&d.DeviceNumber,
			&d.TypeID,
			&d.Status,
			&d.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTypeID - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		d.UpdatedAt = updatedAt.Time
		devices = append(devices, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTypeID - rows error: %v", ErrScanRow, err)
	}
	return devices, nil
}

// UpdateStatus обновляет операционный статус устройства
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.DeviceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("devices").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
