package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"safewalk-service/internal/api/dto"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/ports"
)

// PlaceHandler serves generative place search around a center coordinate.
type PlaceHandler struct {
	Finder ports.PlaceFinder
}

func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, r, http.StatusBadRequest, "q query parameter is required")
		return
	}

	center, ok := coordinateFromQuery(w, r)
	if !ok {
		return
	}

	places, err := h.Finder.FindPlaces(r.Context(), query, center)
	if err != nil {
		metrics.GenAIFallbacksTotal.WithLabelValues("find_places").Inc()
		slog.Warn("place search failed", "query", query, "error", err)
		writeError(w, r, http.StatusBadGateway, "place search unavailable")
		return
	}

	res := dto.ListPlacesResponse{Places: make([]dto.PlaceResponse, 0, len(places))}
	for _, p := range places {
		res.Places = append(res.Places, dto.PlaceResponse{
			Name:    p.Name,
			Lat:     p.Lat,
			Lon:     p.Lon,
			Address: p.Address,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
