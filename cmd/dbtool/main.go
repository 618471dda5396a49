package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"safewalk-service/internal/adapters/pinstore"
	"safewalk-service/internal/config"
	"safewalk-service/internal/platform/db"
	"safewalk-service/internal/ports"
)

// dbtool initializes the pin schema and seeds demo pins for local runs.
// It targets whichever backend the server would select.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/pins.json")

	store, cleanup, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Println("Seeding pins...")
	if err := pinstore.SeedFromJSON(context.Background(), store, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func openStore() (ports.PinStore, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, nil, err
		}

		log.Println("Initializing postgres schema...")
		if err := pinstore.InitPostgresSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}

		// Seeding does not need change notification.
		return pinstore.NewPostgresPinStore(pg, nil), func() { pg.Close() }, nil
	}

	sqlitePath := config.Get("SQLITE_PATH", "data/safewalk.db")
	lite, err := db.OpenSqlite(sqlitePath)
	if err != nil {
		return nil, nil, err
	}

	log.Println("Initializing sqlite schema...")
	if err := pinstore.InitSqliteSchema(lite); err != nil {
		lite.Close()
		return nil, nil, err
	}

	return pinstore.NewSqlitePinStore(lite), func() { lite.Close() }, nil
}
