package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/aryaseta/movie-vault/config"
	"github.com/aryaseta/movie-vault/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoUser"
	email := "demo@movie-vault.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var ownerID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash).Scan(&ownerID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", ownerID, email, username, password)

	movies := []struct {
		Title       string
		Director    string
		Genre       string
		ReleaseYear int
		Rating      float64
	}{
		{"The Shawshank Redemption", "Frank Darabont", "Drama", 1994, 9.3},
		{"The Godfather", "Francis Ford Coppola", "Crime", 1972, 9.2},
		{"Forrest Gump", "Robert Zemeckis", "Drama", 1994, 8.8},
	}

	for _, m := range movies {
		if _, err := db.Exec(`
			INSERT INTO movies (title, director, genre, release_year, rating, owner_id)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (
				SELECT 1 FROM movies WHERE owner_id = $6 AND title = $1
			)
		`, m.Title, m.Director, m.Genre, m.ReleaseYear, m.Rating, ownerID); err != nil {
			log.Fatalf("failed to seed movie %q: %v", m.Title, err)
		}
	}
	fmt.Printf("seeded %d movies for owner %s\n", len(movies), ownerID)
}
