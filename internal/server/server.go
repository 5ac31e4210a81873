package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cloud-ru/finplan-go/internal/calculations"
	"github.com/cloud-ru/finplan-go/internal/tools"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// maxBodyBytes ограничивает размер тела запроса
const maxBodyBytes = 1 << 20

// Server обслуживает HTTP API инструментов
type Server struct {
	tools map[string]tools.ToolHandler
	log   *logrus.Logger
}

// New создает сервер поверх реестра инструментов
func New(registry map[string]tools.ToolHandler, log *logrus.Logger) *Server {
	return &Server{tools: registry, log: log}
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ToolResponse - тело успешного ответа инструмента
type ToolResponse struct {
	Tool       string      `json:"tool"`
	RequestID  string      `json:"request_id"`
	DurationMs int64       `json:"duration_ms"`
	Result     interface{} `json:"result"`
}

// Router собирает маршруты
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/tools", s.listTools).Methods(http.MethodGet)
	api.HandleFunc("/tools/{name}", s.callTool).Methods(http.MethodPost)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": tools.Names(s.tools)})
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	reqID := RequestID(r.Context())

	handler, ok := s.tools[name]
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "unknown tool: "+name)
		return
	}

	params := map[string]interface{}{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&params); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	started := time.Now()
	result, err := handler(r.Context(), params)
	if err != nil {
		status := statusFor(err)
		entry := s.log.WithFields(logrus.Fields{"tool": name, "request_id": reqID})
		if status >= http.StatusInternalServerError {
			entry.WithError(err).Error("tool failed")
		} else {
			entry.WithError(err).Debug("tool rejected input")
		}
		s.writeError(w, r, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ToolResponse{
		Tool:       name,
		RequestID:  reqID,
		DurationMs: time.Since(started).Milliseconds(),
		Result:     result,
	})
}

// statusFor сопоставляет ошибку инструмента с HTTP-статусом
func statusFor(err error) int {
	switch {
	case errors.Is(err, tools.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, calculations.ErrInsufficientInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Status:    status,
		Message:   message,
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
