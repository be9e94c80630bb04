package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	reservationRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/reservation"
	"github.com/gameplaza/GP-ReservationService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований: просмотр, отмена и
// операции персонала (подтверждение, отклонение, check-in, завершение).
// Создание брони живет в отдельном use case.
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свою бронь; персонал видит любую.
func (s *Service) GetByID(ctx context.Context, id string, userID string, isStaff bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%s", id, userID)

	res, err := s.getReservation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if res.UserID != userID && !isStaff {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю броней пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%s, status=%v", req.UserID, req.Status)

	var statuses []domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statuses = []domain.ReservationStatus{status}
	}

	list, err := s.reservationRepo.GetByUserID(ctx, req.UserID, statuses)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%s", len(list), req.UserID)
	return models.FromDomainReservationList(list), nil
}

// Cancel отменяет бронирование.
// Владелец отменяет свою бронь; персонал может отменить любую.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%s", id, req.UserID)

	res, err := s.getReservation(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if res.UserID != req.UserID && !req.IsStaff {
		s.logger.Warn("Cancel: access denied for user=%s to reservation id=%s", req.UserID, id)
		return nil, ErrAccessDenied
	}

	next, err := res.Cancel()
	if err != nil {
		s.logger.Warn("Cancel: reservation id=%s cannot be cancelled from status=%s", id, res.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.persist(ctx, &next, "Cancel")
}

// Approve подтверждает бронь и закрепляет за ней номер устройства.
// Только для персонала.
func (s *Service) Approve(ctx context.Context, id string, req *models.ApproveReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Approve: approving reservation id=%s by user=%s, device_number=%s", id, req.UserID, req.DeviceNumber)

	if !req.IsStaff {
		s.logger.Warn("Approve: user=%s is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	res, err := s.getReservation(ctx, id, "Approve")
	if err != nil {
		return nil, err
	}

	next, err := res.Approve(req.DeviceNumber)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNumberRequired) {
			return nil, fmt.Errorf("%w: device number is required", ErrInvalidInput)
		}
		s.logger.Warn("Approve: reservation id=%s cannot be approved from status=%s", id, res.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.persist(ctx, &next, "Approve")
}

// Reject отклоняет бронь с обязательной причиной. Только для персонала.
func (s *Service) Reject(ctx context.Context, id string, req *models.RejectReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: rejecting reservation id=%s by user=%s", id, req.UserID)

	if !req.IsStaff {
		s.logger.Warn("Reject: user=%s is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	res, err := s.getReservation(ctx, id, "Reject")
	if err != nil {
		return nil, err
	}

	next, err := res.Reject(req.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrRejectionReasonRequired) {
			return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
		}
		s.logger.Warn("Reject: reservation id=%s cannot be rejected from status=%s", id, res.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.persist(ctx, &next, "Reject")
}

// CheckIn отмечает прибытие гостя. Только для персонала.
func (s *Service) CheckIn(ctx context.Context, id string, req *models.CheckInReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("CheckIn: checking in reservation id=%s by user=%s", id, req.UserID)

	if !req.IsStaff {
		s.logger.Warn("CheckIn: user=%s is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	res, err := s.getReservation(ctx, id, "CheckIn")
	if err != nil {
		return nil, err
	}

	next, err := res.CheckIn(s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("CheckIn: reservation id=%s cannot be checked in from status=%s", id, res.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.persist(ctx, &next, "CheckIn")
}

// Complete завершает сессию после check-in. Только для персонала.
func (s *Service) Complete(ctx context.Context, id string, userID string, isStaff bool) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%s by user=%s", id, userID)

	if !isStaff {
		s.logger.Warn("Complete: user=%s is not staff", userID)
		return nil, ErrAccessDenied
	}

	res, err := s.getReservation(ctx, id, "Complete")
	if err != nil {
		return nil, err
	}

	next, err := res.Complete()
	if err != nil {
		s.logger.Warn("Complete: reservation id=%s cannot be completed from status=%s", id, res.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.persist(ctx, &next, "Complete")
}

// MarkNoShow отмечает неявку по подтвержденной брони. Только для персонала.
func (s *Service) MarkNoShow(ctx context.Context, id string, userID string, isStaff bool) (*models.ReservationResponse, error) {
	s.logger.Info("MarkNoShow: marking reservation id=%s as no-show by user=%s", id, userID)

	if !isStaff {
		s.logger.Warn("MarkNoShow: user=%s is not staff", userID)
		return nil, ErrAccessDenied
	}

	res, err := s.getReservation(ctx, id, "MarkNoShow")
	if err != nil {
		return nil, err
	}

	next, err := res.MarkNoShow()
	if err != nil {
		s.logger.Warn("MarkNoShow: reservation id=%s cannot be marked from status=%s", id, res.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.persist(ctx, &next, "MarkNoShow")
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, id string, op string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

func (s *Service) persist(ctx context.Context, res *domain.Reservation, op string) (*models.ReservationResponse, error) {
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s disappeared during update", op, res.ID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, res.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: reservation id=%s moved to status=%s", op, res.ID, res.Status)
	return models.FromDomainReservation(res), nil
}
