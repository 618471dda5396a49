package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"safewalk-service/internal/adapters/cache"
	"safewalk-service/internal/adapters/genai"
	"safewalk-service/internal/adapters/pinstore"
	"safewalk-service/internal/adapters/routing"
	"safewalk-service/internal/api"
	"safewalk-service/internal/config"
	"safewalk-service/internal/logging"
	"safewalk-service/internal/platform/db"
	"safewalk-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres/SQLite, NATS, OSRM, Gemini, Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logging.Setup(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "json"))

	port := config.Get("PORT", "8080")

	store, cleanup, err := buildPinStore()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	provider := routing.NewOSRMRouteProvider(
		config.Get("ROUTING_BASE_URL", ""),
		config.Get("ROUTING_PROFILE", "walking"),
		os.Getenv("ROUTING_API_KEY"),
	)

	genaiKey := os.Getenv("GENAI_API_KEY")
	if strings.TrimSpace(genaiKey) == "" {
		slog.Warn("GENAI_API_KEY is not set; narrative features degrade to fallbacks")
	}
	gemini := genai.NewGeminiClient(genaiKey, config.Get("GENAI_BASE_URL", ""), config.Get("GENAI_MODEL", ""))

	var summaryCache ports.SummaryCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisCache, err := cache.NewRedisSummaryCache(addr)
		if err != nil {
			slog.Warn("redis unavailable; area summaries uncached", "error", err)
		} else {
			defer redisCache.Close()
			summaryCache = redisCache
		}
	}

	router := api.NewRouter(store, provider, gemini, gemini, gemini, summaryCache)

	// Write timeout is generous: route planning fans out to an external
	// provider and SSE responses outlive ordinary requests.
	slog.Info("server listening", "addr", ":"+port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildPinStore selects the storage variant: cloud Postgres with NATS change
// notification when DATABASE_URL is set, local SQLite otherwise.
func buildPinStore() (ports.PinStore, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, nil, err
		}

		if err := pinstore.InitPostgresSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}

		var nc *nats.Conn
		if natsURL := config.Get("NATS_URL", nats.DefaultURL); natsURL != "" {
			nc, err = nats.Connect(natsURL,
				nats.RetryOnFailedConnect(true),
				nats.MaxReconnects(-1),
				nats.ReconnectWait(2*time.Second),
			)
			if err != nil {
				slog.Warn("nats unavailable; pin updates will not propagate", "error", err)
				nc = nil
			}
		}

		cleanup := func() {
			if nc != nil {
				nc.Close()
			}
			pg.Close()
		}
		slog.Info("pin store ready", "backend", "postgres")
		return pinstore.NewPostgresPinStore(pg, nc), cleanup, nil
	}

	sqlitePath := config.Get("SQLITE_PATH", "data/safewalk.db")
	lite, err := db.OpenSqlite(sqlitePath)
	if err != nil {
		return nil, nil, err
	}

	if err := pinstore.InitSqliteSchema(lite); err != nil {
		lite.Close()
		return nil, nil, err
	}

	slog.Info("pin store ready", "backend", "sqlite", "path", sqlitePath)
	return pinstore.NewSqlitePinStore(lite), func() { lite.Close() }, nil
}
