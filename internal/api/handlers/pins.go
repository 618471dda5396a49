package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"safewalk-service/internal/api/dto"
	"safewalk-service/internal/domain"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/ports"
)

// PinHandler exposes the hazard-pin collection: snapshot, create, delete,
// and a server-sent-events stream of the full pin set per change.
type PinHandler struct {
	Store ports.PinStore
}

func (h *PinHandler) List(w http.ResponseWriter, r *http.Request) {
	pins, err := h.Store.Snapshot(r.Context())
	if err != nil {
		slog.Error("list pins failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toListPinsResponse(pins))
}

func (h *PinHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePinRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	severity, err := domain.ParseSeverity(req.Severity)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "severity must be SAFE, CAUTION, or DANGER")
		return
	}

	if len(req.Description) > 500 {
		writeError(w, r, http.StatusBadRequest, "description must be at most 500 characters")
		return
	}

	pin, err := h.Store.Add(r.Context(), domain.PinSubmission{
		Location:    domain.Coordinate{Lat: req.Lat, Lon: req.Lon},
		Severity:    severity,
		Description: req.Description,
		ReportedBy:  req.ReportedBy,
	})
	if err != nil {
		slog.Error("create pin failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.PinEventsTotal.WithLabelValues("add").Inc()
	writeJSON(w, r, http.StatusCreated, toPinResponse(pin))
}

func (h *PinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "pin id is required")
		return
	}

	if err := h.Store.Remove(r.Context(), id); err != nil {
		if errors.Is(err, ports.ErrPinNotFound) {
			writeError(w, r, http.StatusNotFound, "pin not found")
			return
		}
		slog.Error("delete pin failed", "pin_id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.PinEventsTotal.WithLabelValues("remove").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// Stream pushes the full pin set as a server-sent event on every change.
// Slow clients skip intermediate snapshots rather than stalling the store.
func (h *PinHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	updates := make(chan []domain.HazardPin, 1)
	cancel, err := h.Store.Subscribe(r.Context(), func(pins []domain.HazardPin) {
		for {
			select {
			case updates <- pins:
				return
			default:
				// Drop the stale snapshot; only the latest matters.
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	if err != nil {
		slog.Error("pin stream subscribe failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case pins := <-updates:
			payload, err := json.Marshal(toListPinsResponse(pins))
			if err != nil {
				slog.Warn("pin stream encode failed", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func toPinResponse(p domain.HazardPin) dto.PinResponse {
	return dto.PinResponse{
		ID:          p.ID,
		Lat:         p.Location.Lat,
		Lon:         p.Location.Lon,
		Severity:    string(p.Severity),
		Description: p.Description,
		ReportedBy:  p.ReportedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func toListPinsResponse(pins []domain.HazardPin) dto.ListPinsResponse {
	res := dto.ListPinsResponse{Pins: make([]dto.PinResponse, 0, len(pins))}
	for _, p := range pins {
		res.Pins = append(res.Pins, toPinResponse(p))
	}
	return res
}
