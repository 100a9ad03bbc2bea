// internal/app/features/dashboard/handlers.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	metricsstore "github.com/forma-studio/forma/internal/app/store/metrics"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────*
| GET /api/admin/dashboard/stats                                       |
*─────────────────────────────────────────────────────────────────────*/

// ServeStats returns content counts for the dashboard cards. Counting
// is tolerant per collection: a collection whose count fails reports
// zero rather than failing the whole response.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB)
	httpapi.WriteJSON(w, http.StatusOK, counts)
}

/*─────────────────────────────────────────────────────────────────────*
| GET /api/admin/dashboard/feed                                        |
| Websocket stream of content change events.                           |
*─────────────────────────────────────────────────────────────────────*/

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Scope and session checks already ran in the middleware chain;
	// same-origin enforcement happens at the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// ServeFeed upgrades the connection and relays change events until the
// client goes away.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.Feed.Subscribe()
	defer sub.Cancel()

	// Reader goroutine: we never expect client messages, but reading
	// is what surfaces close frames and dead connections.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				h.Log.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
