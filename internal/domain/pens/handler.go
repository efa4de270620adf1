package pens

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pens", func(pr chi.Router) {
		pr.Post("/", createPenHandler(svc))
		pr.Get("/", listPensHandler(svc))
		pr.Get("/{penID}", getPenHandler(svc))
	})
}

type createPenRequest struct {
	PenNumber    string `json:"pen_number"`
	Capacity     int    `json:"capacity"`
	Location     string `json:"location"`
	PhysicalType string `json:"physical_type"`
	Notes        string `json:"notes"`
}

type penResponse struct {
	ID           string    `json:"id"`
	PenNumber    string    `json:"pen_number"`
	Capacity     int       `json:"capacity"`
	Location     string    `json:"location"`
	PhysicalType string    `json:"physical_type"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func createPenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			PenNumber:    req.PenNumber,
			Capacity:     req.Capacity,
			Location:     req.Location,
			PhysicalType: PhysicalType(req.PhysicalType),
			Notes:        req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPenResponse(p))
	}
}

func listPensHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]penResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPenResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "penID"))
		if err != nil {
			http.Error(w, "pen not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPenResponse(p))
	}
}

func toPenResponse(p Pen) penResponse {
	return penResponse{
		ID:           p.ID,
		PenNumber:    p.PenNumber,
		Capacity:     p.Capacity,
		Location:     p.Location,
		PhysicalType: string(p.PhysicalType),
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
