package geofence

import (
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(fetcher middleware.IdentityFetcher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.IdentityMiddleware(fetcher))

	r.Post("/", CreateGeofenceHandler)
	r.Get("/group/{groupID}", ListGeofencesHandler)
	r.Patch("/{zoneID}/deactivate", DeactivateGeofenceHandler)
	r.Delete("/{zoneID}", DeleteGeofenceHandler)

	return r
}
