package models

import "errors"

// Ошибки уровня сервисов. Обработчики преобразуют их в HTTP-статусы.
var (
	ErrValidation = errors.New("validation")
	ErrAuth       = errors.New("auth")
	ErrNotFound   = errors.New("not_found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage")
)
