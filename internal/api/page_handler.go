package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/shaiso/curl2make/internal/domain"
	"github.com/shaiso/curl2make/internal/engine"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// pageData — данные для шаблона формы.
type pageData struct {
	Command string
	Result  string
}

// Page показывает пустую форму.
// GET /
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, pageData{})
}

// SubmitPage конвертирует команду из формы и показывает результат под ней.
// POST /
func (h *Handler) SubmitPage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, http.StatusBadRequest, pageData{Result: "Error: invalid form"})
		return
	}

	command, ok := r.PostForm["curl_command"]
	if !ok || len(command) == 0 {
		h.renderPage(w, http.StatusBadRequest, pageData{Result: "Error: " + noCommandMessage})
		return
	}

	data := pageData{Command: command[0]}

	doc, _, err := h.convert(r.Context(), domain.SourceWeb, data.Command)
	if err == nil {
		var out []byte
		out, err = engine.Marshal(doc)
		data.Result = string(out)
	}
	if err != nil {
		data.Result = "Error: " + err.Error()
	}

	// Ошибка конверсии показывается в форме, статус остаётся 200
	h.renderPage(w, http.StatusOK, data)
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
