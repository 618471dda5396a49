package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"safewalk-service/internal/api/handlers"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	store ports.PinStore,
	provider ports.RouteProvider,
	narrator ports.Narrator,
	describer ports.AreaDescriber,
	finder ports.PlaceFinder,
	summaryCache ports.SummaryCache,
) http.Handler {
	router := httprouter.New()

	pinHandler := &handlers.PinHandler{Store: store}
	routeHandler := &handlers.RouteHandler{
		Store:    store,
		Provider: provider,
		Narrator: narrator,
	}
	areaHandler := &handlers.AreaHandler{Describer: describer, Cache: summaryCache}
	placeHandler := &handlers.PlaceHandler{Finder: finder}

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)

	router.HandlerFunc(http.MethodGet, "/v1/pins", pinHandler.List)
	router.HandlerFunc(http.MethodPost, "/v1/pins", pinHandler.Create)
	router.HandlerFunc(http.MethodDelete, "/v1/pins/:id", pinHandler.Delete)
	router.HandlerFunc(http.MethodGet, "/v1/pins/stream", pinHandler.Stream)

	router.HandlerFunc(http.MethodPost, "/v1/routes", routeHandler.Plan)

	router.HandlerFunc(http.MethodGet, "/v1/areas/summary", areaHandler.Summary)
	router.HandlerFunc(http.MethodGet, "/v1/places/search", placeHandler.Search)

	router.Handler(http.MethodGet, "/metrics", metrics.Handler())

	return loggingMiddleware(router)
}
