package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"learnly/internal/app/chat"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/limiter"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/resp"
)

// HandleWebSocket upgrades the connection and starts the client pumps. The
// external identity extracted from the session token is bound to the client
// here, once, and never changes for the life of the connection. Anonymous
// upgrades are allowed through; every frame they send will be rejected by the
// router, which keeps the error visible to the client instead of a silent 401
// on a handshake browsers cannot inspect.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		ident := requestIdentity(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Hub, deps.Router, conn, ident)

		go client.WritePump()

		if ident != nil {
			logx.Info("WebSocket connection established", "identity", ident.String())
		} else {
			logx.Info("Anonymous WebSocket connection established", "ip", ip)
		}

		client.ReadPump()
	}
}
