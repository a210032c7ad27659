package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-link-saver/config"
	"github.com/oksasatya/go-link-saver/internal/application"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@linksaver.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)

	// One bookmark with an offline summary so the list is not empty on first login
	url := "https://go.dev"
	title := "The Go Programming Language"
	summary := application.NewSummaryGenerator(nil, nil).Summarize(context.Background(), url, title)

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND url = $2)`, id, url).Scan(&exists); err != nil {
		log.Fatalf("failed to check bookmark: %v", err)
	}
	if exists {
		fmt.Println("demo bookmark already present")
		return
	}
	var bookmarkID int64
	if err := db.QueryRow(`
		INSERT INTO bookmarks (user_id, url, title, favicon, summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, id, url, title, url+"/favicon.ico", summary).Scan(&bookmarkID); err != nil {
		log.Fatalf("failed to seed bookmark: %v", err)
	}
	fmt.Printf("seeded bookmark: id=%d url=%s\n", bookmarkID, url)
}
