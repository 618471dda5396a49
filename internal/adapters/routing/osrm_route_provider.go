package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/platform/obs"
	"safewalk-service/internal/ports"
)

// OSRMRouteProvider implements RouteProvider against an OSRM-compatible
// routing endpoint (/route/v1/{profile}/{coordinates}).
//
// Coordinates are sent as ordered lon,lat pairs and geometry is requested as
// GeoJSON. Only the first returned alternative is consumed. The provider is
// safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
	apiKey  string
}

func NewOSRMRouteProvider(baseURL, profile, apiKey string) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	if profile == "" {
		profile = "walking"
	}

	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
		apiKey:  apiKey,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetWalkingRoute fetches a walking path through [start, via?, dest].
// A "no route" answer from the provider yields (nil, nil).
func (o *OSRMRouteProvider) GetWalkingRoute(
	ctx context.Context,
	start, dest domain.Coordinate,
	via *domain.Coordinate,
) (_ *ports.WalkingRoute, err error) {
	defer obs.Time(ctx, "osrm.GetWalkingRoute")(&err)
	defer metrics.TimeProviderRequest("route")()

	endpoint := o.routeURL(start, dest, via)

	req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}

	resp, err := o.do(req)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, nil
	}

	raw := decoded.Routes[0]
	points := make([]domain.Coordinate, 0, len(raw.Geometry.Coordinates))
	for _, pair := range raw.Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid coordinate pair in route geometry: %v", pair)
		}
		points = append(points, domain.Coordinate{Lon: pair[0], Lat: pair[1]})
	}

	if len(points) == 0 {
		return nil, nil
	}

	return &ports.WalkingRoute{
		Points:          points,
		DurationSeconds: raw.Duration,
	}, nil
}

func (o *OSRMRouteProvider) routeURL(start, dest domain.Coordinate, via *domain.Coordinate) string {
	coords := make([]string, 0, 3)
	coords = append(coords, formatLonLat(start))
	if via != nil {
		coords = append(coords, formatLonLat(*via))
	}
	coords = append(coords, formatLonLat(dest))

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	q.Set("alternatives", "false")

	return fmt.Sprintf("%s/route/v1/%s/%s?%s",
		o.baseURL, o.profile, strings.Join(coords, ";"), q.Encode())
}

func formatLonLat(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 6, 64)
}
