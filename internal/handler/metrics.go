package handler

import (
	"fmt"
	"net/http"

	"github.com/producthub/producthub/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "producthub_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "producthub_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "producthub_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "producthub_products_created_total %d\n", snap.ProductsCreated)
	writeMetric(w, "producthub_product_list_cache_hits_total %d\n", snap.ProductListCacheHits)
	writeMetric(w, "producthub_product_list_cache_misses_total %d\n", snap.ProductListCacheMisses)

	writeMetric(w, "producthub_uploads_total{status=\"stored\"} %d\n", snap.UploadsStored)
	writeMetric(w, "producthub_uploads_total{status=\"rejected\"} %d\n", snap.UploadsRejected)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
