package rest

import (
	"io"
	"net/http"
	"time"

	"wellbeing/internal/service"
	"wellbeing/internal/transport/rest/handler"
	"wellbeing/internal/transport/rest/middleware"
	"wellbeing/internal/transport/ws"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	SubmissionService *service.SubmissionService
	ReportService     *service.ReportService
	WSHub             *ws.Hub
	Gatherer          prometheus.Gatherer
	Logger            *zap.Logger
	CORSOrigins       []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService)
	reportHandler := handler.NewReportHandler(c.ReportService, c.SubmissionService)
	wsHandler := ws.NewHandler(c.WSHub, c.SubmissionService, c.ReportService, originChecker(c.CORSOrigins), log)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", authHandler.StartSession).Methods("POST")
	v1.HandleFunc("/catalog", submissionHandler.Catalog).Methods("GET")
	v1.HandleFunc("/scores", submissionHandler.Score).Methods("POST")
	v1.HandleFunc("/report", reportHandler.Generate).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	// Respondent routes (require session token)
	respondent := v1.NewRoute().Subrouter()
	respondent.Use(authMW.RequireRespondent)

	respondent.HandleFunc("/sessions/me/draft", submissionHandler.GetDraft).Methods("GET")
	respondent.HandleFunc("/sessions/me/draft", submissionHandler.SaveDraft).Methods("PUT")
	respondent.HandleFunc("/sessions/me/draft", submissionHandler.DeleteDraft).Methods("DELETE")
	respondent.HandleFunc("/submissions", submissionHandler.Submit).Methods("POST")
	respondent.HandleFunc("/submissions/{id}/report", reportHandler.GetAIReport).Methods("GET")
	respondent.HandleFunc("/submissions/{id}/report", reportHandler.TriggerAIReport).Methods("POST")

	// WebSocket route (token in query param)
	respondent.HandleFunc("/ws/submissions/{id}", wsHandler.SubmissionWS).Methods("GET")

	var h http.Handler = r
	h = handlers.CustomLoggingHandler(io.Discard, h, accessLog(log))
	h = handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins(c.CORSOrigins)),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(log)),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h
}

func accessLog(log *zap.Logger) handlers.LogFormatter {
	return func(_ io.Writer, p handlers.LogFormatterParams) {
		log.Info("http request",
			zap.String("method", p.Request.Method),
			zap.String("path", p.URL.Path),
			zap.Int("status", p.StatusCode),
			zap.Int("size", p.Size),
			zap.Duration("duration", time.Since(p.TimeStamp)),
		)
	}
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func originChecker(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return nil
		}
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
