package breeding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"livestock-pens/internal/middleware"
)

func RegisterRoutes(r chi.Router, reconciler *Reconciler) {
	r.Post("/pens/{penID}/breeding/sync", syncBullsHandler(reconciler))
}

// syncBullsHandler godoc
// @Summary Sincronizar toros de un pen hárem
// @Description Reconcilia la lista de toros declarada en la metadata del período hárem activo con los toros físicamente asignados al pen. Los declarados que faltan se colocan en el pen (reason=sync); los físicos no declarados se anexan a la metadata. Ambos conjuntos convergen a la unión. Los ENAR que no resuelven se saltan y van en warnings; nunca abortan la reconciliación. Idempotente: correrlo de nuevo sobre un pen convergido es no-op.
// @Tags breeding
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para atribución"
// @Param penID path string true "ID del pen"
// @Success 200 {object} SyncResult
// @Failure 400 {string} string "pen id inválido"
// @Router /pens/{penID}/breeding/sync [post]
func syncBullsHandler(reconciler *Reconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := reconciler.Reconcile(r.Context(), chi.URLParam(r, "penID"), middleware.ActorID(r.Context()))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
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
