package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmaher/stockdata/internal/nlquery"
	"github.com/dmaher/stockdata/internal/service"
	"github.com/dmaher/stockdata/internal/tools"
	"github.com/dmaher/stockdata/internal/version"
)

// Handler serves the query API over a service.
type Handler struct {
	svc      *service.Service
	answerer *nlquery.Answerer
	logger   *slog.Logger
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default().
func NewHandler(svc *service.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:      svc,
		answerer: nlquery.NewAnswerer(svc),
		logger:   logger,
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonErr(w, http.StatusNotFound, "not found")
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{
		"service": "stockdata",
		"version": version.Version,
		"endpoints": []string{
			"/healthz",
			"/api/stock-datas",
			"/api/latest-prices",
			"/api/market-overview",
			"/api/historical-analysis",
			"/api/market-comparison",
			"/api/query",
			"/tools",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := struct {
		Status     string         `json:"status"`
		Components map[string]any `json:"components"`
	}{
		Status:     "healthy",
		Components: make(map[string]any),
	}

	if err := h.svc.Ping(r.Context()); err != nil {
		health.Status = "unhealthy"
		health.Components["store"] = map[string]string{
			"status": "disconnected",
			"error":  err.Error(),
		}
		jsonOK(w, http.StatusServiceUnavailable, health)
		return
	}
	health.Components["store"] = "connected"
	jsonOK(w, http.StatusOK, health)
}

func (h *Handler) handleListRows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := service.ListParams{
		DateEq:  q.Get("date_eq"),
		DateGte: q.Get("date_gte"),
		DateLte: q.Get("date_lte"),
	}
	var err error
	if p.Limit, err = queryInt(r, "limit"); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	if p.Offset, err = queryInt(r, "offset"); err != nil {
		h.writeServiceErr(w, err)
		return
	}

	res, err := h.svc.ListRows(r.Context(), p)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Latest(r.Context())
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.MarketOverview(r.Context())
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

func (h *Handler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	res, err := h.svc.HistoricalAnalysis(r.Context(), r.URL.Query().Get("symbol"), days)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

func (h *Handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	q := r.URL.Query()
	res, err := h.svc.Compare(r.Context(), q.Get("symbol_a"), q.Get("symbol_b"), days)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	res, err := h.answerer.Answer(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	jsonOK(w, http.StatusOK, res)
}

func (h *Handler) handleTools(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, http.StatusOK, map[string]any{
		"schema_version": tools.SchemaVersion,
		"tools":          tools.Schemas(),
	})
}

// queryInt parses an optional integer query parameter, naming the
// parameter on failure.
func queryInt(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &service.InputError{Param: name, Reason: "must be an integer"}
	}
	return &n, nil
}
