package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты сервиса.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		RequestID(h.logger),
		Logging(h.logger),
		CORS(),
	)

	// HTML форма
	mux.Handle("GET /{$}", chain(http.HandlerFunc(h.Page)))
	mux.Handle("POST /{$}", chain(http.HandlerFunc(h.SubmitPage)))

	// Совместимый формат без версии
	mux.Handle("POST /api/convert", chain(http.HandlerFunc(h.ConvertLegacy)))
	mux.Handle("OPTIONS /api/convert", chain(preflight("POST, OPTIONS")))

	// v1
	mux.Handle("POST /api/v1/convert", chain(http.HandlerFunc(h.Convert)))
	mux.Handle("OPTIONS /api/v1/convert", chain(preflight("POST, OPTIONS")))

	mux.Handle("GET /api/v1/conversions", chain(http.HandlerFunc(h.ListConversions)))
	mux.Handle("OPTIONS /api/v1/conversions", chain(preflight("GET, OPTIONS")))
	mux.Handle("GET /api/v1/conversions/{id}", chain(http.HandlerFunc(h.GetConversion)))
	mux.Handle("OPTIONS /api/v1/conversions/{id}", chain(preflight("GET, OPTIONS")))
}
