package alerts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func ListUnacknowledgedHandler(w http.ResponseWriter, r *http.Request) {
	list, err := Ledger{}.ListUnacknowledged(chi.URLParam(r, "groupID"))
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func AcknowledgeHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := utils.GetMemberIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	alert, err := Ledger{}.Acknowledge(chi.URLParam(r, "alertID"), memberID)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to acknowledge alert", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alert)
}
