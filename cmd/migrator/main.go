package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/IlyasAtabaev731/expense-tracker/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var dbUrl, migrationsTable string

	flag.StringVar(&dbUrl, "db-url", os.Getenv("DATABASE_URL"), "postgres connection url")
	flag.StringVar(&migrationsTable, "migrations-table", "migrations", "name of migrations table")
	flag.Parse()

	if dbUrl == "" {
		panic("db url is required")
	}

	if err := postgres.Migrate(dbUrl, migrationsTable); err != nil {
		if errors.Is(err, postgres.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}
		panic(err)
	}

	fmt.Println("migrations applied successfully")
}
