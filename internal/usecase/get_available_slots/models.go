package get_available_slots

import "github.com/gameplaza/GP-ReservationService/internal/domain"

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID   string // ID пользователя (для логирования, не влияет на результат)
	DeviceID string // ID устройства
	Date     string // Дата операционного дня (YYYY-MM-DD, время зала)
}

// Response модель ответа со списком слотов на операционный день
type Response struct {
	Date     string // Дата, на которую запрашивались слоты
	DeviceID string
	Slots    []Slot // Слоты каталога в порядке priority
}

// Slot один слот каталога с вычисленной доступностью для устройства
type Slot struct {
	TemplateID  string
	Name        string
	SlotType    string // early или overnight
	StartHour   int    // Расширенная шкала 0-30
	EndHour     int
	IsYouthTime bool
	Enable2P    bool
	Price2PExtra int

	CreditOptions []domain.CreditOption

	// IsAvailable - устройство свободно на все часы слота
	IsAvailable bool

	// RemainingUnits остаток лимита одновременных броней этого типа
	// устройств; nil = лимита нет
	RemainingUnits *int
}
