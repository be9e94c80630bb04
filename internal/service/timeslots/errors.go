package timeslots

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("timeslots: template not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeslots: internal error")
)
