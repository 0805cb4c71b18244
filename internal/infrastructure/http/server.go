package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/domain"
	"stock-quote-proxy/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type Server struct {
	svc *application.QuoteService
}

func NewServer(svc *application.QuoteService) *Server { return &Server{svc: svc} }

// GetQuote serves /api/quote?symbol=SYM. The upstream payload is passed
// through verbatim.
func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := domain.NormalizeSymbol(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "Symbol parameter is required")
		return
	}
	payload, err := s.svc.GetQuote(r.Context(), symbol)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrBadRequest):
			writeError(w, http.StatusBadRequest, "Symbol parameter is required")
		case errors.Is(err, application.ErrNotFound):
			logx.L().Warn("quote lookup failed", zap.String("symbol", symbol), zap.Error(err))
			writeError(w, http.StatusNotFound, "No data found for symbol "+symbol)
		default:
			logx.L().Error("quote lookup error", zap.String("symbol", symbol), zap.Error(err))
			internalError(w)
		}
		return
	}
	writeRaw(w, http.StatusOK, payload)
}

type quotesResponse struct {
	LastUpdated int64                      `json:"lastUpdated"`
	Data        map[string]json.RawMessage `json:"data"`
}

// GetQuotes serves /api/quotes: every cached entry, fresh or stale.
func (s *Server) GetQuotes(w http.ResponseWriter, _ *http.Request) {
	data, last := s.svc.Overview()
	writeJSON(w, http.StatusOK, quotesResponse{LastUpdated: last, Data: data})
}

type statusResponse struct {
	Status        string  `json:"status"`
	LastUpdated   int64   `json:"lastUpdated"`
	StocksTracked int     `json:"stocksTracked"`
	Uptime        float64 `json:"uptime"`
}

// GetStatus serves /api/status.
func (s *Server) GetStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.svc.Stats()
	writeJSON(w, http.StatusOK, statusResponse{
		Status:        "online",
		LastUpdated:   st.LastUpdated,
		StocksTracked: st.StocksTracked,
		Uptime:        st.UptimeSeconds,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRaw serves an upstream payload without re-encoding it.
func writeRaw(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
