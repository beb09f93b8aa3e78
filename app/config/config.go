package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB
}

var AppConfig *Config

// InitDB opens the Postgres connection pool. DATABASE_URL wins; otherwise
// the individual PG* variables are assembled, with a localhost fallback for
// development when LOCAL_DB=true.
func InitDB() {
	var psqlInfo string

	if url := os.Getenv("DATABASE_URL"); url != "" {
		psqlInfo = url
		log.Println("Using DATABASE_URL for PostgreSQL connection")
	} else if os.Getenv("LOCAL_DB") == "true" {
		psqlInfo = "host=localhost port=5432 user=postgres dbname=cpf sslmode=disable"
		log.Println("Using local PostgreSQL database")
	} else {
		host := getenv("PGHOST", "localhost")
		port := getenv("PGPORT", "5432")
		user := getenv("PGUSER", "postgres")
		password := os.Getenv("PGPASSWORD")
		dbname := getenv("PGDATABASE", "cpf")

		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=60",
			host, port, user, password, dbname)
		log.Printf("Attempting to connect to database at %s:%s", host, port)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DATABASE_URL or the PG* environment variables, or")
		log.Println("run a local PostgreSQL and export LOCAL_DB=true")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{DB: db}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
