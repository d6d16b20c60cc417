package channel

import (
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(hub *Hub, fetcher middleware.IdentityFetcher) http.Handler {
	r := chi.NewRouter()

	// Auth happens inside the handler: websocket clients pass the token
	// as a query parameter, which IdentityMiddleware doesn't read.
	r.Get("/{groupID}/ws", SubscribeHandler(hub, fetcher))

	return r
}
