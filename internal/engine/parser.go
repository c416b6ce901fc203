package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/shaiso/curl2make/internal/domain"
)

// Флаги curl, которые понимает парсер. Остальные токены пропускаются.
var (
	methodFlags = map[string]bool{"-X": true, "--request": true}
	headerFlags = map[string]bool{"-H": true, "--header": true}
	dataFlags   = map[string]bool{"-d": true, "--data": true, "--data-urlencode": true}
)

// urlPrefix — признак токена с URL.
const urlPrefix = "http"

var (
	lineContinuation = strings.NewReplacer("\\\r\n", " ", "\\\n", " ")
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// Normalize склеивает переносы строк ("\" + перевод строки) и
// схлопывает любые последовательности пробельных символов в один пробел.
//
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(command string) string {
	command = lineContinuation.Replace(command)
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(command), " ")
}

// Tokenize разбивает нормализованную команду на слова по правилам POSIX shell.
// Кавычки снимаются, строка в кавычках остаётся одним токеном.
func Tokenize(command string) ([]string, error) {
	tokens, err := shellquote.Split(command)
	if err != nil {
		return nil, NewParseError("", -1, fmt.Sprintf("cannot split command: %v", err), ErrMalformedInput)
	}
	return tokens, nil
}

// Parse разбирает curl-команду в RequestDescriptor.
//
// Распознаются:
//   - -X / --request          — метод (в нижнем регистре)
//   - -H / --header           — заголовок "Name: value" (разделитель — первое ':')
//   - -d / --data / --data-urlencode — параметр "name=value" (разделитель — первое '=')
//   - первый токен, начинающийся с "http", — URL
//
// Прочие токены игнорируются. Первый токен (имя программы) пропускается.
func Parse(command string) (*domain.RequestDescriptor, error) {
	tokens, err := Tokenize(Normalize(command))
	if err != nil {
		return nil, err
	}
	desc := &domain.RequestDescriptor{
		Method:  domain.DefaultMethod,
		Params:  []domain.Pair{},
		Headers: []domain.Pair{},
	}

	i := 1
	for i < len(tokens) {
		token := tokens[i]

		switch {
		case methodFlags[token]:
			value, err := flagValue(tokens, i)
			if err != nil {
				return nil, err
			}
			desc.Method = strings.ToLower(value)
			i += 2

		case headerFlags[token]:
			value, err := flagValue(tokens, i)
			if err != nil {
				return nil, err
			}
			name, val, ok := strings.Cut(value, ":")
			if !ok {
				return nil, NewParseError(token, i+1,
					fmt.Sprintf("header %q has no ':' separator", value), ErrMalformedInput)
			}
			desc.Headers = append(desc.Headers, domain.Pair{
				Name:  strings.TrimSpace(name),
				Value: strings.TrimSpace(val),
			})
			i += 2

		case dataFlags[token]:
			value, err := flagValue(tokens, i)
			if err != nil {
				return nil, err
			}
			name, val, _ := strings.Cut(value, "=")
			desc.Params = append(desc.Params, domain.Pair{Name: name, Value: val})
			i += 2

		case strings.HasPrefix(token, urlPrefix):
			// Первое совпадение побеждает
			if desc.URL == "" {
				desc.URL = token
			}
			i++

		default:
			i++
		}
	}

	if desc.URL == "" {
		return nil, NewParseError("", -1, missingURLMessage, ErrMissingURL)
	}

	return desc, nil
}

// flagValue возвращает токен, следующий за флагом на позиции i.
func flagValue(tokens []string, i int) (string, error) {
	if i+1 >= len(tokens) {
		return "", NewParseError(tokens[i], i, "flag requires a value", ErrMalformedInput)
	}
	return tokens[i+1], nil
}
