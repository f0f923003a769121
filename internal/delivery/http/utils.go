package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/go-chi/chi/v5"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{
		"error": message,
	})
}

// getPathParam извлекает параметр пути из chi
func getPathParam(r *http.Request, param string) string {
	return chi.URLParam(r, param)
}

// parsePageRequest разбирает page, size и sort ("field" или "field,asc|desc").
// Отсутствующие параметры заменяются значениями по умолчанию.
func parsePageRequest(r *http.Request) (domain.PageRequest, error) {
	req := domain.DefaultPageRequest()
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return req, fmt.Errorf("invalid page: %q", v)
		}
		req.Page = page
	}

	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 || size > domain.MaxPageSize {
			return req, fmt.Errorf("invalid size: %q", v)
		}
		req.Size = size
	}

	if v := q.Get("sort"); v != "" {
		field, dir, _ := strings.Cut(v, ",")
		field = strings.TrimSpace(field)
		if !domain.IsParkingSpotSortField(field) {
			return req, fmt.Errorf("invalid sort field: %q", field)
		}
		direction, ok := domain.ParseSortDirection(dir)
		if !ok {
			return req, fmt.Errorf("invalid sort direction: %q", dir)
		}
		req.Sort = field
		req.Direction = direction
	}

	return req, nil
}
