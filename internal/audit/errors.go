package audit

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent — событие не проходит валидацию и не может быть сохранено.
var ErrInvalidEvent = errors.New("invalid conversion event")

// invalid оборачивает описание проблемы в ErrInvalidEvent.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidEvent, fmt.Sprintf(format, args...))
}
