package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/dbmetrics"
	"github.com/gameplaza/GP-ReservationService/pkg/psqlbuilder"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// pgUniqueViolation / pgExclusionViolation коды PostgreSQL для нарушения
// ограничений уникальности (device + time range)
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var reservationColumns = []string{
	"id",
	"user_id",
	"device_id",
	"reservation_date",
	"start_hour",
	"end_hour",
	"start_at",
	"end_at",
	"status",
	"reservation_number",
	"credit_type",
	"player_count",
	"total_price",
	"assigned_device_number",
	"rejection_reason",
	"checked_in_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую бронь.
// Разрешенные инстанты start_at/end_at пишутся рядом с исходными extended-часами:
// по ним работает EXCLUDE-ограничение БД (device + tstzrange), которое остается
// последней линией защиты от double-booking при гонке двух запросов.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"user_id",
			"device_id",
			"reservation_date",
			"start_hour",
			"end_hour",
			"start_at",
			"end_at",
			"status",
			"reservation_number",
			"credit_type",
			"player_count",
			"total_price",
		).
		Values(
			res.ID,
			res.UserID,
			res.DeviceID,
			res.Date.Time(),
			res.TimeSlot.StartHour(),
			res.TimeSlot.EndHour(),
			res.StartDateTime(),
			res.EndDateTime(),
			res.Status,
			res.ReservationNumber,
			res.CreditType,
			res.PlayerCount,
			res.TotalPrice,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	stored := *res
	stored.CreatedAt = createdAt.Time
	stored.UpdatedAt = updatedAt.Time
	return &stored, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// GetByUserID получает брони пользователя.
// Если statuses не пуст, фильтрует по списку статусов.
func (r *Repository) GetByUserID(ctx context.Context, userID string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, start_hour DESC")

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByDeviceAndDateRange получает брони устройства, чьи реальные временные
// окна пересекают [start, end). Если statuses не пуст, фильтрует по статусам.
//
// Внутри транзакции добавляется FOR UPDATE: проверка конфликта и вставка
// в usecase создания брони идут под блокировкой строк конкурентов.
func (r *Repository) GetByDeviceAndDateRange(ctx context.Context, deviceID string, start, end time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"device_id": deviceID}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at ASC")

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDeviceAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDeviceAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetActiveByDeviceTypeAndDate получает живые брони всех устройств указанного
// типа на дату. Используется для лимита max_rental_units по сегменту дня.
func (r *Repository) GetActiveByDeviceTypeAndDate(ctx context.Context, deviceTypeID string, date types.VenueDate) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, len(reservationColumns))
	for i, c := range reservationColumns {
		columns[i] = "r." + c
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations r").
		Join("devices d ON d.id = r.device_id").
		Where(squirrel.Eq{"d.type_id": deviceTypeID}).
		Where(squirrel.Eq{"r.reservation_date": date.Time()}).
		Where(squirrel.Eq{"r.status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("r.start_hour ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDeviceTypeAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDeviceTypeAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update сохраняет изменяемые поля после перехода статуса
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", res.Status).
		Set("assigned_device_number", res.AssignedDeviceNumber).
		Set("rejection_reason", res.RejectionReason).
		Set("checked_in_at", res.CheckedInAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GenerateReservationNumber выдает следующий человекочитаемый номер брони
// в формате GP-YYYYMMDD-NNNN. Счетчик ведется по дате; вызывать внутри
// транзакции создания брони, иначе номера могут задвоиться.
func (r *Repository) GenerateReservationNumber(ctx context.Context, date types.VenueDate) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"reservation_date": date.Time()}).
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: GenerateReservationNumber - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return "", fmt.Errorf("%w: GenerateReservationNumber - scan count: %v", ErrScanRow, err)
	}

	return fmt.Sprintf("%s-%s-%04d", domain.ReservationNumberPrefix, date.Compact(), count+1), nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		date                 time.Time
		startHour, endHour   int
		startAt, endAt       time.Time
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.DeviceID,
		&date,
		&startHour,
		&endHour,
		&startAt,
		&endAt,
		&res.Status,
		&res.ReservationNumber,
		&res.CreditType,
		&res.PlayerCount,
		&res.TotalPrice,
		&res.AssignedDeviceNumber,
		&res.RejectionReason,
		&res.CheckedInAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE-колонка приходит как полночь UTC: берем календарные компоненты как есть
	res.Date = types.NewVenueDate(date.Year(), date.Month(), date.Day())

	slot, err := types.NewTimeSlot(startHour, endHour)
	if err != nil {
		return nil, fmt.Errorf("stored slot %d-%d: %v", startHour, endHour, err)
	}
	res.TimeSlot = slot

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}
	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation || string(pqErr.Code) == pgExclusionViolation
	}
	return false
}
