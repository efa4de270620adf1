package assignments

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Ocupación actual del pen (lectura para dashboard, alertas y export)
	r.Get("/pens/{penID}/occupants", currentOccupantsHandler(svc))

	// Historial de assignments del animal
	r.Get("/animals/{animalID}/assignments", historyByAnimalHandler(svc))
}

type assignmentResponse struct {
	ID         string     `json:"id"`
	AnimalID   string     `json:"animal_id"`
	PenID      string     `json:"pen_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	RemovedAt  *time.Time `json:"removed_at,omitempty"`
	Reason     string     `json:"reason"`
	Notes      string     `json:"notes"`
}

func currentOccupantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.CurrentOccupants(r.Context(), chi.URLParam(r, "penID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAssignmentResponses(items))
	}
}

func historyByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.HistoryByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAssignmentResponses(items))
	}
}

func toAssignmentResponses(items []Assignment) []assignmentResponse {
	out := make([]assignmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, assignmentResponse{
			ID:         a.ID,
			AnimalID:   a.AnimalID,
			PenID:      a.PenID,
			AssignedAt: a.AssignedAt,
			RemovedAt:  a.RemovedAt,
			Reason:     a.Reason,
			Notes:      a.Notes,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
