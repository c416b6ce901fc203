// Package api содержит HTTP сервер конвертера.
//
// Структура:
//   - handler.go         — Handler с DI (recorder, история, logger)
//   - routes.go          — регистрация маршрутов
//   - middleware.go      — middleware (recovery, request id, logging, CORS)
//   - response.go        — унифицированные JSON-ответы и обработка ошибок
//   - dto.go             — Data Transfer Objects (request/response)
//   - convert_handler.go — POST /api/convert и POST /api/v1/convert
//   - page_handler.go    — HTML форма на /
//   - history_handler.go — GET /api/v1/conversions[/{id}]
//
// /api/convert отвечает в совместимом формате без версии
// ({"result": ...} / {"error": "..."}), /api/v1 использует конверты {"data": ...}.
package api
