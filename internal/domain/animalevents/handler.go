package animalevents

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
	r.Get("/animals/{animalID}/events", listByAnimalHandler(svc))
	r.Get("/pens/{penID}/events", listByPenHandler(svc))
}

// eventResponse expone event_date y event_time por separado, como los
// consume el dashboard; internamente es un solo OccurredAt.
type eventResponse struct {
	ID            string    `json:"id"`
	AnimalID      string    `json:"animal_id"`
	EventType     string    `json:"event_type"`
	EventDate     string    `json:"event_date"`
	EventTime     string    `json:"event_time"`
	RecordedAt    time.Time `json:"recorded_at"`
	PenID         string    `json:"pen_id,omitempty"`
	PreviousPenID string    `json:"previous_pen_id,omitempty"`
	PenFunction   string    `json:"pen_function,omitempty"`
	Reason        string    `json:"reason"`
	Notes         string    `json:"notes"`
	IsHistorical  bool      `json:"is_historical"`
	RecordedBy    string    `json:"recorded_by,omitempty"`
}

func listByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(items))
	}
}

func listByPenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPen(r.Context(), chi.URLParam(r, "penID"), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(items))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// types=pen_movement,bull_sync
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]EventType, 0, len(parts))
		for _, p := range parts {
			t := EventType(strings.TrimSpace(p))
			if t == "" {
				continue
			}
			out = append(out, t)
		}
		if len(out) > 0 {
			filter.Types = out
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toEventResponses(items []AnimalEvent) []eventResponse {
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, eventResponse{
			ID:            e.ID,
			AnimalID:      e.AnimalID,
			EventType:     string(e.Type),
			EventDate:     e.OccurredAt.Format("2006-01-02"),
			EventTime:     e.OccurredAt.Format("15:04:05"),
			RecordedAt:    e.RecordedAt,
			PenID:         e.PenID,
			PreviousPenID: e.PreviousPenID,
			PenFunction:   e.PenFunction,
			Reason:        e.Reason,
			Notes:         e.Notes,
			IsHistorical:  e.Historical,
			RecordedBy:    e.RecordedBy,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
