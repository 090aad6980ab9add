package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/ckd-predict/portal-service/internal/account"
	"github.com/ckd-predict/portal-service/internal/catalog"
	"github.com/ckd-predict/portal-service/internal/clinical"
	"github.com/ckd-predict/portal-service/internal/dashboard"
	"github.com/ckd-predict/portal-service/internal/forecast"
	"github.com/ckd-predict/portal-service/internal/history"
	"github.com/ckd-predict/portal-service/internal/imaging"
	"github.com/ckd-predict/portal-service/internal/messaging"
	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/telemetry"
)

// PredictionAPI is everything the portal needs from the prediction
// API client.
type PredictionAPI interface {
	account.Authenticator
	clinical.Predictor
	imaging.CTPredictor
	forecast.Forecaster
	history.Fetcher
}

// SetupRouter initializes all routes for the application
func SetupRouter(
	api PredictionAPI,
	store session.Store,
	issuer *session.Issuer,
	publisher messaging.PublisherInterface,
	metrics *telemetry.Metrics,
	cat catalog.Catalog,
) *mux.Router {
	accountService := account.NewService(api, store, issuer, publisher)
	accountHandler := account.NewHandler(accountService)

	clinicalService := clinical.NewService(api, publisher, cat)
	clinicalHandler := clinical.NewHandler(clinicalService)

	imagingService := imaging.NewService(api, publisher)
	imagingHandler := imaging.NewHandler(imagingService)

	forecastService := forecast.NewService(api, publisher)
	forecastHandler := forecast.NewHandler(forecastService)

	historyService := history.NewService(api)
	historyHandler := history.NewHandler(historyService)

	dashboardHandler := dashboard.NewHandler()

	// A typed nil *telemetry.Metrics must not end up behind the
	// interface, it would panic on the first record.
	var sessionMetrics session.MetricsRecorder
	if metrics != nil {
		sessionMetrics = metrics
	}
	resolve := session.MiddlewareWithMetrics(issuer, store, sessionMetrics)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("ckd-portal-service"))
	if metrics != nil {
		r.Use(metricsMiddleware(metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"ckd-portal-service"}`))
	}).Methods("GET")

	// Auth routes
	r.Handle("/api/auth/register", http.HandlerFunc(accountHandler.Register)).Methods("POST")
	r.Handle("/api/auth/login", http.HandlerFunc(accountHandler.Login)).Methods("POST")
	r.Handle("/api/auth/logout", resolve(http.HandlerFunc(accountHandler.Logout))).Methods("POST")

	// Session probe; the logged-out state is a valid answer
	r.Handle("/api/session", resolve(http.HandlerFunc(accountHandler.Session))).Methods("GET")

	// Profile and account routes
	r.Handle("/api/profile",
		resolve(session.RequireSession(http.HandlerFunc(accountHandler.GetProfile))),
	).Methods("GET")
	r.Handle("/api/profile",
		resolve(session.RequireSession(http.HandlerFunc(accountHandler.UpdateProfile))),
	).Methods("PUT")
	r.Handle("/api/account",
		resolve(session.RequireSession(http.HandlerFunc(accountHandler.DeleteAccount))),
	).Methods("DELETE")

	// Dashboard shell; renders the logged-out state without a session
	r.Handle("/api/dashboard", resolve(http.HandlerFunc(dashboardHandler.View))).Methods("GET")

	// Assessment routes
	r.Handle("/api/assessments/clinical",
		resolve(session.RequireSession(http.HandlerFunc(clinicalHandler.Submit))),
	).Methods("POST")
	r.Handle("/api/assessments/ct",
		resolve(session.RequireSession(http.HandlerFunc(imagingHandler.Upload))),
	).Methods("POST")
	r.Handle("/api/assessments/forecast",
		resolve(session.RequireSession(http.HandlerFunc(forecastHandler.Predict))),
	).Methods("POST")

	// History
	r.Handle("/api/history",
		resolve(session.RequireSession(http.HandlerFunc(historyHandler.List))),
	).Methods("GET")

	return r
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status,
				float64(time.Since(start).Milliseconds()))
		})
	}
}
