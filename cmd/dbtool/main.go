package main

import (
	"context"
	"database/sql"
	"log"
	"medresilient-service/internal/adapters/cache"
	"medresilient-service/internal/platform/db"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

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

	if err := initAndPurge(conn); err != nil {
		log.Fatal(err)
	}
}

func initAndPurge(conn *sql.DB) error {
	log.Println("Initializing database schema...")
	if err := db.InitSchema(conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Purging expired lookup cache entries...")
	n, err := cache.NewSQLLookupCache(conn).Purge(ctx)
	if err != nil {
		return err
	}
	log.Printf("Purge complete. removed=%d", n)

	return nil
}
