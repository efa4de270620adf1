package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
	})
}

type createAnimalRequest struct {
	ENAR       string `json:"enar"`
	TempTag    string `json:"temp_tag"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Sex        string `json:"sex"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD opcional
	MotherENAR string `json:"mother_enar"`
	FatherENAR string `json:"father_enar"`
	Notes      string `json:"notes"`
}

type animalResponse struct {
	ID           string     `json:"id"`
	ENAR         string     `json:"enar,omitempty"`
	TempTag      string     `json:"temp_tag,omitempty"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Sex          string     `json:"sex"`
	Status       string     `json:"status"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	MotherENAR   string     `json:"mother_enar,omitempty"`
	FatherENAR   string     `json:"father_enar,omitempty"`
	CurrentPenNo string     `json:"current_pen_no,omitempty"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			ENAR:       req.ENAR,
			TempTag:    req.TempTag,
			Name:       req.Name,
			Category:   Category(req.Category),
			Sex:        Sex(req.Sex),
			BirthDate:  bd,
			MotherENAR: req.MotherENAR,
			FatherENAR: req.FatherENAR,
			Notes:      req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{}
		if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
			filter.Category = Category(v)
		}
		if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
			filter.Status = Status(v)
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				filter.Limit = n
			}
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Name: req.Name, Notes: req.Notes}
		if req.Category != nil {
			c := Category(*req.Category)
			in.Category = &c
		}
		if req.Status != nil {
			st := Status(*req.Status)
			in.Status = &st
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:           a.ID,
		ENAR:         a.ENAR,
		TempTag:      a.TempTag,
		Name:         a.Name,
		Category:     string(a.Category),
		Sex:          string(a.Sex),
		Status:       string(a.Status),
		BirthDate:    a.BirthDate,
		MotherENAR:   a.MotherENAR,
		FatherENAR:   a.FatherENAR,
		CurrentPenNo: a.CurrentPenNo,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// writeJSON se duplica a propósito en los handlers de cada módulo para
// no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
