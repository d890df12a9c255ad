package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrValidation используется для ошибок валидации входных данных (HTTP 400).
	ErrValidation = errors.New("validation failed")

	// ErrBackend используется для любых ошибок БД или хранилища (HTTP 500).
	// Конкретные коды ошибок бэкенда не различаются.
	ErrBackend = errors.New("backend failure")
)

// ValidationError описывает отсутствующее или пустое обязательное поле.
// Error() возвращает сообщение для клиента без префиксов.
type ValidationError struct {
	Msg string
}

// NewValidationError создает ошибку валидации с сообщением для клиента
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

// Is позволяет проверять errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// BackendError оборачивает ошибку БД или хранилища.
// Error() возвращает сообщение бэкенда дословно, Op нужен только для логов.
type BackendError struct {
	Op  string
	Err error
}

// NewBackendError оборачивает err, nil остается nil
func NewBackendError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

func (e *BackendError) Error() string { return e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }

// Is позволяет проверять errors.Is(err, ErrBackend)
func (e *BackendError) Is(target error) bool { return target == ErrBackend }
