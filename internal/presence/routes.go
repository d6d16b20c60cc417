package presence

import (
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(fetcher middleware.IdentityFetcher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.IdentityMiddleware(fetcher))

	r.Get("/{groupID}", GetPresenceHandler)

	return r
}
