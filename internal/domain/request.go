package domain

import "strings"

// DefaultMethod — метод по умолчанию, если в команде не указан -X.
const DefaultMethod = "get"

// Pair — пара имя/значение (заголовок или параметр запроса).
//
// Порядок пар в срезах всегда совпадает с порядком флагов во входной команде.
type Pair struct {
	// Name — имя заголовка или параметра.
	Name string `json:"name"`

	// Value — значение; для параметра без "=" — пустая строка.
	Value string `json:"value"`
}

// RequestDescriptor — нормализованное описание HTTP запроса,
// извлечённое из curl-команды.
//
// Создаётся парсером на каждый вызов конверсии и сразу передаётся генератору.
type RequestDescriptor struct {
	// URL — первый токен команды, начинающийся с "http".
	// Всегда заполнен у валидного дескриптора.
	URL string `json:"url"`

	// Method — HTTP метод в нижнем регистре ("get", "post", ...).
	Method string `json:"method"`

	// Params — параметры из -d / --data / --data-urlencode.
	Params []Pair `json:"params"`

	// Headers — заголовки из -H / --header.
	Headers []Pair `json:"headers"`
}

// MethodLabel возвращает метод в верхнем регистре для отображения в редакторе.
func (d *RequestDescriptor) MethodLabel() string {
	return strings.ToUpper(d.Method)
}
