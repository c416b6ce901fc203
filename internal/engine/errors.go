package engine

import "errors"

// Ошибки разбора curl-команды.
var (
	// ErrMissingURL — в команде нет токена, похожего на URL.
	ErrMissingURL = errors.New("could not find URL in command")

	// ErrMalformedInput — у флага нет значения, кавычки не закрыты
	// или значение флага имеет неверный формат.
	ErrMalformedInput = errors.New("malformed command")
)

// missingURLMessage — сообщение для пользователя при ErrMissingURL.
const missingURLMessage = "Could not find URL in command"

// ParseError — ошибка разбора с контекстом.
type ParseError struct {
	Flag     string // флаг, при разборе которого произошла ошибка
	Position int    // индекс токена (-1, если ошибка до токенизации)
	Message  string // описание ошибки
	Err      error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ParseError) Error() string {
	if e.Flag != "" {
		return e.Flag + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError создаёт новую ошибку разбора.
func NewParseError(flag string, position int, message string, err error) *ParseError {
	return &ParseError{
		Flag:     flag,
		Position: position,
		Message:  message,
		Err:      err,
	}
}

// ErrorCode возвращает код ошибки для API: MISSING_URL или MALFORMED_INPUT.
// Для прочих ошибок возвращает пустую строку.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingURL):
		return "MISSING_URL"
	case errors.Is(err, ErrMalformedInput):
		return "MALFORMED_INPUT"
	default:
		return ""
	}
}
