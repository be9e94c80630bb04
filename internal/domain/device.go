package domain

import "time"

// DeviceStatus represents the operational status of a physical device
type DeviceStatus string

const (
	DeviceStatusAvailable   DeviceStatus = "available"
	DeviceStatusInUse       DeviceStatus = "in_use"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
	DeviceStatusOffline     DeviceStatus = "offline"
)

// Device represents a bookable machine on the venue floor.
type Device struct {
	ID           string
	DeviceNumber string // Номер на полу зала, например "PM-03"
	TypeID       string // Ссылка на каталог шаблонов слотов
	Status       DeviceStatus
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true only when the device accepts new reservations.
// Devices in use, under maintenance or offline cannot be booked.
func (d *Device) IsAvailable() bool {
	return d.Status == DeviceStatusAvailable
}

// ValidDeviceStatus проверяет, что строка является допустимым статусом устройства
func ValidDeviceStatus(s string) (DeviceStatus, bool) {
	status := DeviceStatus(s)
	switch status {
	case DeviceStatusAvailable, DeviceStatusInUse, DeviceStatusMaintenance, DeviceStatusOffline:
		return status, true
	}
	return "", false
}
