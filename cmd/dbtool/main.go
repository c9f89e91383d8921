package main

import (
	"log"
	"os"
	"strings"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

// dbtool prepares a Postgres database: schema plus catalog seed.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/catalog.json")
	initAndSeed(conn, seedPath)
}

func initAndSeed(conn *sqlx.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn, db.DialectPostgres); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding catalog from %s...", seedPath)
	if err := repositories.SeedCatalogFromJSON(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
