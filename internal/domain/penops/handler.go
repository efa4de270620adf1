package penops

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-pens/internal/domain/breeding"
	"livestock-pens/internal/domain/penfunctions"
)

func RegisterRoutes(r chi.Router, editor *Editor) {
	r.Post("/pens/{penID}/periods", createPeriodHandler(editor))
	r.Put("/periods/{periodID}", editPeriodHandler(editor))
	r.Delete("/periods/{periodID}", deletePeriodHandler(editor))
}

// createPeriodRequest es el cuerpo para crear un período de función.
type createPeriodRequest struct {
	FunctionType string                `json:"function_type"`
	Start        string                `json:"start"` // RFC3339; vacío = ahora (solo no histórico)
	End          *string               `json:"end"`   // RFC3339; requerido si historical
	Metadata     penfunctions.Metadata `json:"metadata"`
	Notes        string                `json:"notes"`
	Historical   bool                  `json:"historical"`

	// Para períodos hárem sin snapshot explícito en metadata:
	Bulls                 []penfunctions.BullRef `json:"bulls"`
	HistoricalFemaleENARs []string               `json:"historical_female_enars"`
}

type createPeriodResponse struct {
	Period   periodPayload `json:"period"`
	Warnings []string      `json:"warnings"`
}

type periodPayload struct {
	ID           string                `json:"id"`
	PenID        string                `json:"pen_id"`
	FunctionType string                `json:"function_type"`
	Start        time.Time             `json:"start"`
	End          *time.Time            `json:"end,omitempty"`
	Metadata     penfunctions.Metadata `json:"metadata"`
	Notes        string                `json:"notes"`
	Historical   bool                  `json:"historical"`
}

type editPeriodRequest struct {
	FunctionType string                `json:"function_type"`
	Start        string                `json:"start"`
	End          *string               `json:"end"`
	Metadata     penfunctions.Metadata `json:"metadata"`
	Notes        string                `json:"notes"`
}

type deletePeriodResponse struct {
	Deleted           bool `json:"deleted"`
	WasActive         bool `json:"was_active"`
	ClosedAssignments int  `json:"closed_assignments"`
}

// createPeriodHandler godoc
// @Summary Crear período de función para un pen
// @Description Con historical=false cambia la función del pen ahora: cierra el período activo en el start del nuevo e inserta el nuevo abierto. Con historical=true inserta un período pasado (start y end requeridos) sin tocar el activo. Para función hárem sin snapshot explícito, captura la composición del grupo en el momento (ocupación viva, o lista manual de hembras en back-fill). Los solapes con otros períodos no bloquean: vuelven como warnings.
// @Tags periods
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param penID path string true "ID del pen"
// @Param payload body createPeriodRequest true "Datos del período; fechas en RFC3339"
// @Success 201 {object} createPeriodResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / metadata no corresponde al tipo"
// @Router /pens/{penID}/periods [post]
func createPeriodHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPeriodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, end, err := parsePeriodDates(req.Start, req.End)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := editor.CreatePeriod(r.Context(), PeriodInput{
			PenID:                 chi.URLParam(r, "penID"),
			FunctionType:          penfunctions.FunctionType(req.FunctionType),
			Start:                 start,
			End:                   end,
			Metadata:              req.Metadata,
			Notes:                 req.Notes,
			Historical:            req.Historical,
			Bulls:                 req.Bulls,
			HistoricalFemaleENARs: req.HistoricalFemaleENARs,
		})
		if err != nil {
			writePeriodError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, createPeriodResponse{
			Period:   toPeriodPayload(result.Period),
			Warnings: result.Warnings,
		})
	}
}

func editPeriodHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editPeriodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, end, err := parsePeriodDates(req.Start, req.End)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := editor.EditPeriod(r.Context(), chi.URLParam(r, "periodID"), penfunctions.UpdateInput{
			FunctionType: penfunctions.FunctionType(req.FunctionType),
			Start:        start,
			End:          end,
			Metadata:     req.Metadata,
			Notes:        req.Notes,
		})
		if err != nil {
			writePeriodError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPeriodPayload(p))
	}
}

// deletePeriodHandler godoc
// @Summary Borrar un período de función
// @Description Borra el período. Si era el activo, cierra en cascada todas las assignments abiertas del pen antes de borrar la fila. Irreversible: la confirmación es de la UI.
// @Tags periods
// @Produce json
// @Param periodID path string true "ID del período"
// @Success 200 {object} deletePeriodResponse
// @Failure 404 {string} string "period not found"
// @Router /periods/{periodID} [delete]
func deletePeriodHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := editor.DeletePeriod(r.Context(), chi.URLParam(r, "periodID"))
		if err != nil {
			writePeriodError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deletePeriodResponse{
			Deleted:           true,
			WasActive:         result.WasActive,
			ClosedAssignments: result.ClosedAssignments,
		})
	}
}

func parsePeriodDates(startRaw string, endRaw *string) (time.Time, *time.Time, error) {
	var start time.Time
	if strings.TrimSpace(startRaw) != "" {
		t, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return time.Time{}, nil, errors.New("start must be RFC3339")
		}
		start = t
	}

	var end *time.Time
	if endRaw != nil && strings.TrimSpace(*endRaw) != "" {
		t, err := time.Parse(time.RFC3339, *endRaw)
		if err != nil {
			return time.Time{}, nil, errors.New("end must be RFC3339")
		}
		end = &t
	}

	return start, end, nil
}

func writePeriodError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, penfunctions.ErrNotFound):
		http.Error(w, "period not found", http.StatusNotFound)
	case errors.Is(err, penfunctions.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, penfunctions.ErrInvalidInput),
		errors.Is(err, breeding.ErrInvalidInput),
		errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPeriodPayload(p penfunctions.FunctionPeriod) periodPayload {
	return periodPayload{
		ID:           p.ID,
		PenID:        p.PenID,
		FunctionType: string(p.FunctionType),
		Start:        p.Start,
		End:          p.End,
		Metadata:     p.Metadata,
		Notes:        p.Notes,
		Historical:   p.Historical,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
