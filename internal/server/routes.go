package server

import "net/http"

// Routes builds the full handler chain: mux, request IDs, access
// logging, panic recovery. All endpoints are GET.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.get(h.handleIndex))
	mux.HandleFunc("/healthz", h.get(h.handleHealth))
	mux.HandleFunc("/api/stock-datas", h.get(h.handleListRows))
	mux.HandleFunc("/api/latest-prices", h.get(h.handleLatest))
	mux.HandleFunc("/api/market-overview", h.get(h.handleOverview))
	mux.HandleFunc("/api/historical-analysis", h.get(h.handleAnalysis))
	mux.HandleFunc("/api/market-comparison", h.get(h.handleComparison))
	mux.HandleFunc("/api/query", h.get(h.handleQuery))
	mux.HandleFunc("/tools", h.get(h.handleTools))

	var handler http.Handler = mux
	handler = withRecovery(h.logger, handler)
	handler = withAccessLog(h.logger, handler)
	handler = withRequestID(handler)
	return handler
}

func (h *Handler) get(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}
