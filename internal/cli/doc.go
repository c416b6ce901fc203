// Package cli реализует утилиту командной строки curl2make.
//
// # Обзор
//
// convert работает локально через internal/engine и не требует сервера.
// С флагом --remote и для history CLI ходит в HTTP API.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для curl2make API. Разбирает конверты ответа
// ({"data": ...}, {"error": {...}}) и возвращает *APIError для 4xx/5xx.
//
//	client := cli.NewClient("http://localhost:5000")
//	res, err := client.Convert(ctx, "curl https://example.com")
//
// ## Output
//
// Таблицы (text/tabwriter) по умолчанию, JSON с флагом --json.
// Данные выводятся в stdout, сообщения — в stderr:
//
//	pbpaste | curl2make convert | pbcopy
//
// ## Commands
//
// Каждая команда создаётся фабричной функцией (NewConvertCmd, NewHistoryCmd),
// принимающей clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
