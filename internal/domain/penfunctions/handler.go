package penfunctions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra solo las lecturas; las escrituras de períodos
// pasan por el editor (penops), que decide la semántica correcta.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pens/{penID}/periods", listPeriodsHandler(svc))
	r.Get("/pens/{penID}/periods/active", activePeriodHandler(svc))
}

type periodResponse struct {
	ID           string     `json:"id"`
	PenID        string     `json:"pen_id"`
	FunctionType string     `json:"function_type"`
	Start        time.Time  `json:"start"`
	End          *time.Time `json:"end,omitempty"`
	Metadata     Metadata   `json:"metadata"`
	Notes        string     `json:"notes"`
	Historical   bool       `json:"historical"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type activePeriodResponse struct {
	Period periodResponse `json:"period"`

	// Fallback: no había período abierto y se devolvió el más reciente
	// por start (drift de datos; la UI lo marca).
	Fallback bool `json:"fallback"`
}

func listPeriodsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPen(r.Context(), chi.URLParam(r, "penID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]periodResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPeriodResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func activePeriodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, found, err := svc.ActivePeriod(r.Context(), chi.URLParam(r, "penID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "pen has no function period", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, activePeriodResponse{
			Period:   toPeriodResponse(p),
			Fallback: !p.Active(),
		})
	}
}

func toPeriodResponse(p FunctionPeriod) periodResponse {
	return periodResponse{
		ID:           p.ID,
		PenID:        p.PenID,
		FunctionType: string(p.FunctionType),
		Start:        p.Start,
		End:          p.End,
		Metadata:     p.Metadata,
		Notes:        p.Notes,
		Historical:   p.Historical,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
