package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/geo"
	"github.com/RafiqApp/Rafiq-Backend/internal/groups"
	"github.com/RafiqApp/Rafiq-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Handlers close over the coordinator; chi injects the group id and the
// identity middleware injects the member.

func identityFrom(r *http.Request) (memberID, displayName string, ok bool) {
	memberID, ok = utils.GetMemberIDFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	displayName, _ = utils.GetMemberNameFromContext(r.Context())
	if displayName == "" {
		displayName = memberID
	}
	return memberID, displayName, true
}

func StartSharingHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, displayName, ok := identityFrom(r)
		if !ok {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}

		if err := coord.StartSharing(chi.URLParam(r, "groupID"), memberID, displayName); err != nil {
			http.Error(w, "Failed to start sharing", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReportHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, _, ok := identityFrom(r)
		if !ok {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}

		var input struct {
			Latitude       float64  `json:"latitude"`
			Longitude      float64  `json:"longitude"`
			AccuracyMeters *float64 `json:"accuracy_meters"`
			BatteryPercent *int     `json:"battery_percent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !geo.ValidCoordinate(input.Latitude, input.Longitude) {
			http.Error(w, "Invalid coordinates", http.StatusBadRequest)
			return
		}
		if input.BatteryPercent != nil && (*input.BatteryPercent < 0 || *input.BatteryPercent > 100) {
			http.Error(w, "Battery percent out of range", http.StatusBadRequest)
			return
		}

		err := coord.Report(chi.URLParam(r, "groupID"), memberID, Sample{
			Latitude:       input.Latitude,
			Longitude:      input.Longitude,
			AccuracyMeters: input.AccuracyMeters,
			BatteryPercent: input.BatteryPercent,
		})
		switch {
		case errors.Is(err, ErrNotSharing):
			http.Error(w, "Not sharing in this group", http.StatusConflict)
			return
		case errors.Is(err, ErrQueueFull):
			http.Error(w, "Sample queue full", http.StatusTooManyRequests)
			return
		case err != nil:
			http.Error(w, "Failed to accept sample", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func StopSharingHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, _, ok := identityFrom(r)
		if !ok {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}

		if err := coord.StopSharing(chi.URLParam(r, "groupID"), memberID); err != nil {
			http.Error(w, "Failed to stop sharing", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func JoinGroupHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, displayName, ok := identityFrom(r)
		if !ok {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}

		var input struct {
			Code string `json:"code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Code == "" {
			http.Error(w, "Join code is required", http.StatusBadRequest)
			return
		}

		group, err := coord.JoinGroup(input.Code, memberID, displayName)
		if errors.Is(err, groups.ErrNotFound) {
			http.Error(w, "Unknown join code", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to join group", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(group)
	}
}

func LeaveGroupHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, _, ok := identityFrom(r)
		if !ok {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}

		if err := coord.LeaveGroup(chi.URLParam(r, "groupID"), memberID); err != nil {
			http.Error(w, "Failed to leave group", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
