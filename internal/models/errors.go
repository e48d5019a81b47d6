package models

import "errors"

// Доменные ошибки. Сервисы оборачивают их через %w, хэндлеры сопоставляют через errors.Is
var (
	ErrUnknownRegion           = errors.New("unknown region")
	ErrInvalidRange            = errors.New("invalid date range")
	ErrInvalidPredictionWindow = errors.New("invalid prediction window")
	ErrUpstreamUnavailable     = errors.New("upstream feed unavailable")
	ErrNoDataAvailable         = errors.New("no historical data available")
	ErrValidation              = errors.New("validation error")
)
