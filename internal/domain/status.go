package domain

// ConversionStatus — результат конверсии.
type ConversionStatus string

const (
	// ConversionStatusSucceeded — документ успешно сгенерирован.
	ConversionStatusSucceeded ConversionStatus = "SUCCEEDED"

	// ConversionStatusFailed — команда не распознана.
	ConversionStatusFailed ConversionStatus = "FAILED"
)

// IsValid возвращает true для известных статусов.
func (s ConversionStatus) IsValid() bool {
	switch s {
	case ConversionStatusSucceeded, ConversionStatusFailed:
		return true
	default:
		return false
	}
}

// ConversionSource — канал, через который пришла команда.
type ConversionSource string

const (
	// SourceWeb — HTML форма.
	SourceWeb ConversionSource = "web"

	// SourceAPI — JSON API.
	SourceAPI ConversionSource = "api"

	// SourceCLI — утилита командной строки.
	SourceCLI ConversionSource = "cli"
)

// String возвращает строковое представление ConversionSource.
func (s ConversionSource) String() string {
	return string(s)
}

// ParseConversionSource парсит строку в ConversionSource.
func ParseConversionSource(s string) ConversionSource {
	switch s {
	case "web":
		return SourceWeb
	case "cli":
		return SourceCLI
	default:
		return SourceAPI
	}
}
