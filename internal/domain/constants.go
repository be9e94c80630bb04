package domain

// Venue-wide business constants
const (
	// AdultAgeThreshold возраст, с которого пользователь считается взрослым.
	// Взрослые не могут бронировать молодежные слоты.
	AdultAgeThreshold = 16

	// ReservationNumberPrefix префикс человекочитаемого номера брони (GP-YYYYMMDD-NNNN)
	ReservationNumberPrefix = "GP"

	// MaxPlayerCount максимальное количество игроков на одном устройстве
	MaxPlayerCount = 2
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов "живых" броней.
// Только они участвуют в проверках конфликтов и лимита на пользователя.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
	StatusCheckedIn,
}

// FinalStatuses список терминальных статусов
var FinalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
	StatusNoShow,
}
