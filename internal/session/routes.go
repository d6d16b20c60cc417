package session

import (
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(coord *Coordinator, fetcher middleware.IdentityFetcher, reportRate float64, reportBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.IdentityMiddleware(fetcher))

	r.Post("/join", JoinGroupHandler(coord))
	r.Post("/{groupID}/start", StartSharingHandler(coord))
	r.Post("/{groupID}/stop", StopSharingHandler(coord))
	r.Post("/{groupID}/leave", LeaveGroupHandler(coord))

	r.Group(func(r chi.Router) {
		r.Use(middleware.ReportRateLimitMiddleware(reportRate, reportBurst))
		r.Post("/{groupID}/report", ReportHandler(coord))
	})

	return r
}
