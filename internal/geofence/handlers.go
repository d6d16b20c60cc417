package geofence

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/RafiqApp/Rafiq-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func CreateGeofenceHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		GroupID      string  `json:"group_id"`
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		Latitude     float64 `json:"latitude"`
		Longitude    float64 `json:"longitude"`
		RadiusMeters float64 `json:"radius_meters"`
		ZoneType     string  `json:"zone_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	memberID, ok := utils.GetMemberIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	zone, err := Registry{}.Create(CreateInput{
		GroupID:      input.GroupID,
		Name:         input.Name,
		Description:  input.Description,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		RadiusMeters: input.RadiusMeters,
		ZoneType:     input.ZoneType,
		CreatedBy:    memberID,
	})
	switch {
	case errors.Is(err, ErrInvalidRadius), errors.Is(err, ErrInvalidCoordinate), errors.Is(err, ErrMissingName):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "Failed to create geofence", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(zone)
}

func ListGeofencesHandler(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	var zones []Geofence
	var err error
	if typesParam := r.URL.Query().Get("types"); typesParam != "" {
		zones, err = Registry{}.ListByTypes(groupID, strings.Split(typesParam, ","))
	} else {
		includeInactive := r.URL.Query().Get("all") == "true"
		zones, err = Registry{}.List(groupID, includeInactive)
	}
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(zones)
}

func DeactivateGeofenceHandler(w http.ResponseWriter, r *http.Request) {
	err := Registry{}.Deactivate(chi.URLParam(r, "zoneID"))
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Geofence not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to deactivate geofence", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func DeleteGeofenceHandler(w http.ResponseWriter, r *http.Request) {
	err := Registry{}.Delete(chi.URLParam(r, "zoneID"))
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Geofence not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete geofence", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
