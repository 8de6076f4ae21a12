package partnerservice

import "errors"

var (
	// ErrPointNotFound возвращается, когда сервисная точка не найдена
	ErrPointNotFound = errors.New("service point not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("partnerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("partnerservice client: invalid response")

	// ErrServiceDegraded возвращается при недоступности PartnerService,
	// когда вызывающая сторона может обслужить запрос из кэша
	ErrServiceDegraded = errors.New("partnerservice unavailable: graceful degradation applied")
)
