package channel

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/RafiqApp/Rafiq-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"
)

// SubscribeHandler upgrades GET /{groupID}/ws to a websocket and streams the
// group's events as JSON frames until the client disconnects. Websocket
// clients can't always set headers, so the auth token is also accepted as a
// ?token= query parameter.
func SubscribeHandler(hub *Hub, fetcher middleware.IdentityFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := chi.URLParam(r, "groupID")
		if groupID == "" {
			http.Error(w, "Missing group id", http.StatusBadRequest)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		identity, err := fetcher.FromToken(token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()

			sub := hub.Subscribe(groupID)
			defer sub.Close()

			slog.Info("channel subscriber connected",
				"group_id", groupID, "member_id", identity.MemberID)

			// Reader goroutine: its only job is to notice the client
			// going away so the writer loop below can stop.
			gone := make(chan struct{})
			go func() {
				defer close(gone)
				var discard string
				for {
					if err := websocket.Message.Receive(conn, &discard); err != nil {
						return
					}
				}
			}()

			for {
				select {
				case <-gone:
					return
				case ev, ok := <-sub.C:
					if !ok {
						return
					}
					if err := websocket.JSON.Send(conn, ev); err != nil {
						slog.Warn("channel send failed, dropping subscriber",
							"group_id", groupID, "member_id", identity.MemberID, "error", err)
						return
					}
				}
			}
		}).ServeHTTP(w, r)
	}
}
