package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/curl2make/internal/domain"
)

// noCommandMessage — ответ /api/convert без поля curl_command.
const noCommandMessage = "No cURL command provided"

// decodeConvertRequest читает тело запроса на конверсию.
// Возвращает false, если тело не JSON или поле curl_command отсутствует.
func decodeConvertRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ConvertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return "", false
	}
	if req.CurlCommand == nil {
		return "", false
	}
	return *req.CurlCommand, true
}

// ConvertLegacy конвертирует команду и отвечает в формате без версии.
// POST /api/convert
func (h *Handler) ConvertLegacy(w http.ResponseWriter, r *http.Request) {
	command, ok := decodeConvertRequest(w, r)
	if !ok {
		LegacyError(w, http.StatusBadRequest, noCommandMessage)
		return
	}

	doc, _, err := h.convert(r.Context(), domain.SourceAPI, command)
	if err != nil {
		LegacyError(w, http.StatusBadRequest, err.Error())
		return
	}

	JSON(w, http.StatusOK, LegacyConvertResponse{Result: doc})
}

// Convert конвертирует команду и возвращает дескриптор вместе с документом.
// POST /api/v1/convert
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	command, ok := decodeConvertRequest(w, r)
	if !ok {
		BadRequest(w, "curl_command is required")
		return
	}

	source := domain.ParseConversionSource(r.Header.Get(SourceHeader))

	doc, desc, err := h.convert(r.Context(), source, command)
	if HandleConvertError(w, h.logger, err) {
		return
	}

	Success(w, ConvertResponse{Descriptor: desc, Blueprint: doc})
}
