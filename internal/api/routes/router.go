package routes

import (
	"net/http"

	"github.com/medvoice/scribe-backend/internal/api/handlers"
	"github.com/medvoice/scribe-backend/internal/api/middleware"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	visitHandler    *handlers.VisitHandler
	reminderHandler *handlers.ReminderHandler
	webhookHandler  *handlers.TranscriptionWebhookHandler
	purgeHandler    *handlers.PurgeHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	visitHandler *handlers.VisitHandler,
	reminderHandler *handlers.ReminderHandler,
	webhookHandler *handlers.TranscriptionWebhookHandler,
	purgeHandler *handlers.PurgeHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		visitHandler:    visitHandler,
		reminderHandler: reminderHandler,
		webhookHandler:  webhookHandler,
		purgeHandler:    purgeHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Visit endpoints
	r.mux.HandleFunc("POST /api/visits", r.visitHandler.CreateVisit)
	r.mux.HandleFunc("GET /api/visits", r.visitHandler.ListVisits)
	r.mux.HandleFunc("GET /api/visits/search", r.visitHandler.SearchVisits)
	r.mux.HandleFunc("GET /api/visits/{id}", r.visitHandler.GetVisit)
	r.mux.HandleFunc("DELETE /api/visits/{id}", r.visitHandler.DeleteVisit)
	r.mux.HandleFunc("POST /api/visits/{id}/retry", r.visitHandler.RetryVisit)

	// Reminder endpoints
	if r.reminderHandler != nil {
		r.mux.HandleFunc("GET /api/reminders", r.reminderHandler.ListReminders)
	}

	// Transcription webhook endpoint
	r.mux.HandleFunc("POST /api/webhooks/transcription", r.webhookHandler.HandleWebhook)

	// Internal maintenance endpoints, not exposed through the gateway
	if r.purgeHandler != nil {
		r.mux.HandleFunc("POST /internal/purge", r.purgeHandler.Purge)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so error responses also carry the headers
	handler = middleware.CORSMiddleware(handler)

	return handler
}
