package api

import (
	"net/http"
	"sync/atomic"

	"songcalendar/internal/lib/response"
)

// Gate answers 503 until Ready installs the real handler, so the listener can
// start before the database is usable.
type Gate struct {
	handler atomic.Pointer[http.Handler]
}

func (g *Gate) Ready(h http.Handler) {
	g.handler.Store(&h)
}

func (g *Gate) IsReady() bool {
	return g.handler.Load() != nil
}

func (g *Gate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := g.handler.Load()
	if h == nil {
		w.Header().Set("Retry-After", "1")
		response.Error(w, http.StatusServiceUnavailable, "Service is starting")
		return
	}
	(*h).ServeHTTP(w, r)
}
