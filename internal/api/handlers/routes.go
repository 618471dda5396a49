package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"safewalk-service/internal/api/dto"
	"safewalk-service/internal/domain"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/ports"
	"safewalk-service/internal/services"
)

// RouteHandler orchestrates one safe-route calculation: pin snapshot,
// planner, and response shaping.
type RouteHandler struct {
	Store    ports.PinStore
	Provider ports.RouteProvider
	Narrator ports.Narrator
}

func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest

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

	start := domain.Coordinate{Lat: req.Start.Lat, Lon: req.Start.Lon}
	dest := domain.Coordinate{Lat: req.Destination.Lat, Lon: req.Destination.Lon}

	if !validCoordinate(start) || !validCoordinate(dest) {
		writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
		return
	}
	if start == dest {
		writeError(w, r, http.StatusBadRequest, "start and destination must differ")
		return
	}

	pins, err := h.Store.Snapshot(r.Context())
	if err != nil {
		slog.Error("route plan pin snapshot failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result, err := services.PlanSafeRoute(r.Context(), services.PlanRequest{
		Start:       start,
		Destination: dest,
	}, pins, h.Provider, h.Narrator)

	if errors.Is(err, services.ErrNoRoute) {
		// Not a server failure: the caller renders the apology in place of
		// a route.
		metrics.RouteCalculationsTotal.WithLabelValues("no_route").Inc()
		writeJSON(w, r, http.StatusOK, dto.RouteResponse{
			Path:       []dto.CoordinateDTO{},
			SafetyNote: services.NoRouteApology,
		})
		return
	}
	if err != nil {
		metrics.RouteCalculationsTotal.WithLabelValues("error").Inc()
		slog.Error("route plan failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.RouteCalculationsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, r, http.StatusOK, toRouteResponse(result))
}

func validCoordinate(c domain.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func toRouteResponse(result *domain.RouteResult) dto.RouteResponse {
	path := make([]dto.CoordinateDTO, 0, len(result.Path))
	for _, p := range result.Path {
		path = append(path, dto.CoordinateDTO{Lat: p.Lat, Lon: p.Lon})
	}

	return dto.RouteResponse{
		Path:          path,
		DurationText:  result.DurationText,
		SafetyNote:    result.SafetyNote,
		ConflictCount: result.ConflictCount,
		Detoured:      result.Detoured,
	}
}
