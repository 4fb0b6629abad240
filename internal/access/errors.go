package access

import "errors"

// Ошибки резолвера доступа. Отказ в доступе (403) и отсутствие узла (404)
// должны различаться до самого HTTP-слоя, поэтому это разные sentinel-ошибки.
// Ошибки хранилища пробрасываются обёрнутыми как есть и никогда не
// превращаются в решение о доступе.
var (
	ErrNotFound = errors.New("not found")
	ErrDenied   = errors.New("access denied")
)

// IsNotFound проверяет, является ли ошибка отсутствием узла иерархии
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDenied проверяет, является ли ошибка отказом в доступе
func IsDenied(err error) bool {
	return errors.Is(err, ErrDenied)
}
