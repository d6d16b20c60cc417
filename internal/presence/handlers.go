package presence

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetPresenceHandler returns every member row for the group, sharing or
// not — the map shows last known positions for members who stopped.
func GetPresenceHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := Store{}.Get(chi.URLParam(r, "groupID"))
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}
