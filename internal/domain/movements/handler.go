package movements

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-pens/internal/middleware"
)

func RegisterRoutes(r chi.Router, coordinator *Coordinator) {
	r.Post("/pens/{penID}/movements", moveAnimalsHandler(coordinator))
}

// moveAnimalsRequest es el cuerpo para trasladar animales a un pen.
type moveAnimalsRequest struct {
	AnimalIDs  []string `json:"animal_ids"`
	Reason     string   `json:"reason"`
	Notes      string   `json:"notes"`
	At         string   `json:"at"`         // RFC3339; vacío = ahora
	Historical bool     `json:"historical"` // solo registro narrativo
}

// moveAnimalsHandler godoc
// @Summary Trasladar animales a un pen
// @Description Mueve un lote de animales al pen indicado: cierra la assignment anterior de cada uno, abre la nueva, actualiza el pen denormalizado y deja un evento de auditoría por animal. Con historical=true solo registra el evento (relato de un traslado pasado), sin tocar el estado presente. El resultado reporta moved / already_present / failed por animal; los fallos parciales no revierten al resto del lote.
// @Tags movements
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para atribución"
// @Param penID path string true "ID del pen destino"
// @Param payload body moveAnimalsRequest true "Animales y datos del traslado; at en RFC3339"
// @Success 200 {object} MoveResult
// @Failure 400 {string} string "invalid json / at inválido / lote vacío"
// @Failure 404 {string} string "pen not found"
// @Router /pens/{penID}/movements [post]
func moveAnimalsHandler(coordinator *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveAnimalsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var at time.Time
		if strings.TrimSpace(req.At) != "" {
			t, err := time.Parse(time.RFC3339, req.At)
			if err != nil {
				http.Error(w, "at must be RFC3339", http.StatusBadRequest)
				return
			}
			at = t
		}

		result, err := coordinator.Move(r.Context(), MoveInput{
			AnimalIDs:   req.AnimalIDs,
			TargetPenID: chi.URLParam(r, "penID"),
			Reason:      req.Reason,
			Notes:       req.Notes,
			At:          at,
			Historical:  req.Historical,
			MovedBy:     middleware.ActorID(r.Context()),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrPenNotFound):
				http.Error(w, "pen not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
