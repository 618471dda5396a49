package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"safewalk-service/internal/api/dto"
	"safewalk-service/internal/domain"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/ports"
)

// AreaHandler serves grounded area summaries, cached by rounded coordinate.
// Cache is optional; a nil Cache means every request hits the generative
// service.
type AreaHandler struct {
	Describer ports.AreaDescriber
	Cache     ports.SummaryCache
}

func (h *AreaHandler) Summary(w http.ResponseWriter, r *http.Request) {
	center, ok := coordinateFromQuery(w, r)
	if !ok {
		return
	}

	key := ports.SummaryKey(center)

	if h.Cache != nil {
		cached, err := h.Cache.Get(r.Context(), key)
		if err != nil {
			slog.Warn("summary cache read failed", "key", key, "error", err)
		}
		if cached != nil {
			metrics.SummaryCacheTotal.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
		metrics.SummaryCacheTotal.WithLabelValues("miss").Inc()
	}

	summary, err := h.Describer.DescribeArea(r.Context(), center)
	if err != nil {
		metrics.GenAIFallbacksTotal.WithLabelValues("describe_area").Inc()
		slog.Warn("area summary failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "area summary unavailable")
		return
	}

	res := toAreaSummaryResponse(summary)

	if h.Cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			if err := h.Cache.Set(r.Context(), key, payload); err != nil {
				slog.Warn("summary cache write failed", "key", key, "error", err)
			}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func coordinateFromQuery(w http.ResponseWriter, r *http.Request) (domain.Coordinate, bool) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)

	if latErr != nil || lonErr != nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon query parameters are required")
		return domain.Coordinate{}, false
	}

	c := domain.Coordinate{Lat: lat, Lon: lon}
	if !validCoordinate(c) {
		writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
		return domain.Coordinate{}, false
	}

	return c, true
}

func toAreaSummaryResponse(summary *ports.AreaSummary) dto.AreaSummaryResponse {
	res := dto.AreaSummaryResponse{
		Text:      summary.Text,
		Citations: make([]dto.CitationResponse, 0, len(summary.Citations)),
	}
	for _, c := range summary.Citations {
		res.Citations = append(res.Citations, dto.CitationResponse{
			Title:   c.Title,
			URI:     c.URI,
			Reviews: c.Reviews,
		})
	}
	return res
}
