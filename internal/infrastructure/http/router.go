package httpserver

import (
	"net/http"

	"stock-quote-proxy/internal/infrastructure/ratelimit"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// allowedOrigins is the compiled-in CORS allow list: the deployed web client
// plus the local Vite dev server.
var allowedOrigins = []string{
	"https://hw-invest.web.app",
	"http://localhost:5173",
}

// NewRouter assembles the middleware chain and routes. The limiter guards
// /api/ paths only; a nil limiter disables the guard.
func NewRouter(s *Server, limiter *ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID())
	r.Use(recoverer())
	r.Use(accessLog())
	r.Use(httpMetrics())
	r.Use(securityHeaders())
	if limiter != nil {
		r.Use(scoped("/api/", ratelimit.Middleware(limiter)))
	}
	r.Use(corsAllowList(allowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/quote", s.GetQuote)
		api.Get("/quotes", s.GetQuotes)
		api.Get("/status", s.GetStatus)
	})

	return r
}
