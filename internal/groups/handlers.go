package groups

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RafiqApp/Rafiq-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	organizerID, ok := utils.GetMemberIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	group, err := Resolver{}.Create(input.Name, organizerID)
	if err != nil {
		http.Error(w, "Failed to create group", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(group)
}

func GetGroupHandler(w http.ResponseWriter, r *http.Request) {
	group, err := Resolver{}.Get(chi.URLParam(r, "groupID"))
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(group)
}
