package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда на день недели нет записи расписания
	ErrAvailabilityNotFound = errors.New("availability.repository: availability not found")

	// ErrDayAlreadyExists возвращается, когда на день недели уже есть запись (параллельная замена расписания)
	ErrDayAlreadyExists = errors.New("availability.repository: day of week already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
