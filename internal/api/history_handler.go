package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Ограничения выдачи журнала.
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ListConversions возвращает последние записи журнала конверсий.
// GET /api/v1/conversions?limit=N
func (h *Handler) ListConversions(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		Unavailable(w, "conversion history is not configured")
		return
	}

	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.history.List(r.Context(), limit)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]ConversionResponse, len(records))
	for i, rec := range records {
		result[i] = ConversionFromDomain(rec)
	}

	List(w, result, len(result))
}

// GetConversion возвращает одну запись журнала.
// GET /api/v1/conversions/{id}
func (h *Handler) GetConversion(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		Unavailable(w, "conversion history is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid conversion id")
		return
	}

	rec, err := h.history.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "conversion not found") {
		return
	}

	Success(w, ConversionFromDomain(*rec))
}
