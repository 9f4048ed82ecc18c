package trivia

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the question, category and quiz endpoints.
type HTTPHandlers struct {
	service  *Service
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers backed by service.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &HTTPHandlers{
		service:  service,
		validate: v,
		logger:   logger.With().Str("component", "trivia_http").Logger(),
	}
}

// methods maps an HTTP method to the handler serving it on one path.
type methods map[string]http.HandlerFunc

// Register mounts the routes on mux. Paths are registered without a method so
// a wrong method gets the JSON 405 body instead of the mux's plain-text one.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.route(methods{http.MethodGet: h.ListCategories}))
	mux.HandleFunc("/categories/{id}/questions", h.route(methods{http.MethodGet: h.QuestionsByCategory}))
	mux.HandleFunc("/questions", h.route(methods{
		http.MethodGet:  h.ListQuestions,
		http.MethodPost: h.CreateQuestion,
	}))
	mux.HandleFunc("/questions/{id}", h.route(methods{http.MethodDelete: h.DeleteQuestion}))
	mux.HandleFunc("/questions/search", h.route(methods{http.MethodPost: h.SearchQuestions}))
	mux.HandleFunc("/quizzes", h.route(methods{http.MethodPost: h.NextQuizQuestion}))
}

func (h *HTTPHandlers) route(m methods) http.HandlerFunc {
	allowed := make([]string, 0, len(m)+1)
	for method := range m {
		allowed = append(allowed, method)
	}
	if _, ok := m[http.MethodGet]; ok {
		allowed = append(allowed, http.MethodHead)
	}
	sort.Strings(allowed)

	return func(w http.ResponseWriter, r *http.Request) {
		method := r.Method
		if method == http.MethodHead {
			method = http.MethodGet
		}
		if fn, ok := m[method]; ok {
			fn(w, r)
			return
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		httperrors.RespondMethodNotAllowed(w, allowed)
	}
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": summary,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"totalQuestions":   result.Total,
		"categories":       result.Categories,
		"current_category": result.CurrentCategory,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions?page=N
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Resource Not Found")
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.service.QuestionsByCategory(r.Context(), categoryID, page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"totalQuestions":   result.Total,
		"current_category": result.CurrentCategory,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req NewQuestion
	if !h.decode(w, r, &req) {
		return
	}

	created, total, err := h.service.CreateQuestion(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"created":        created.ID,
		"totalQuestions": total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionNotFound, "Resource Not Found")
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionNotFound, "Resource Not Found")
			return
		}
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.SearchQuestions(r.Context(), req.SearchTerm)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"totalQuestions":   len(result.Questions),
		"current_category": result.CurrentCategory,
	})
}

// NextQuizQuestion handles POST /quizzes. question is null once the pool is exhausted.
func (h *HTTPHandlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !h.decode(w, r, &req) {
		return
	}

	q, err := h.service.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler may continue.
func (h *HTTPHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Bad Request")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			httperrors.RespondValidationError(w, http.StatusUnprocessableEntity, httperrors.ErrCodeValidationFailed,
				fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()), fe.Field())
			return false
		}
		httperrors.RespondUnprocessable(w, "Unprocessable Entity")
		return false
	}
	return true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Resource Not Found")
	case errors.Is(err, ErrInvalidInput):
		httperrors.RespondUnprocessable(w, "Unprocessable Entity")
	default:
		logging.FromContextOr(r.Context(), &h.logger).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		httperrors.RespondInternalError(w, "Internal Server Error")
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("response encode failed")
	}
}

// parsePage reads ?page=, defaulting to 1. Non-integer or non-positive values get a 400.
func parsePage(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPage, "page must be a positive integer")
		return 0, false
	}
	return page, true
}

// pathID reads the {id} wildcard. Ids are int32 in the store, so anything
// that is not a decimal in that range matches no record.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(id), true
}
