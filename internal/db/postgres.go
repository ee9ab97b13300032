package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates the database schema. Statements are idempotent so the
// server can boot against a fresh or an existing database.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// USERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(32) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CUSTOMER',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// RESTAURANTS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS restaurants (
			id VARCHAR(32) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			code VARCHAR(64) UNIQUE NOT NULL,
			owner_id VARCHAR(32) NOT NULL REFERENCES users(id),
			logo_url VARCHAR(500) NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// CATEGORIES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(32) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			value VARCHAR(255) UNIQUE NOT NULL,
			kind VARCHAR(16) NOT NULL,
			image_url VARCHAR(500) NOT NULL DEFAULT ''
		)`,

		// -------------------------------
		// NAMED ATTRIBUTES AND ADDITIVES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS named_attributes (
			id VARCHAR(32) PRIMARY KEY,
			kind VARCHAR(16) NOT NULL,
			name VARCHAR(255) NOT NULL,
			UNIQUE (kind, name)
		)`,
		`CREATE TABLE IF NOT EXISTS additives (
			id VARCHAR(32) PRIMARY KEY,
			title VARCHAR(255) UNIQUE NOT NULL,
			price DOUBLE PRECISION NOT NULL
		)`,

		// -------------------------------
		// CATALOG ITEMS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS items (
			id VARCHAR(32) PRIMARY KEY,
			kind VARCHAR(16) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL,
			category_id VARCHAR(32) NOT NULL REFERENCES categories(id),
			restaurant_id VARCHAR(32) NOT NULL REFERENCES restaurants(id),
			code VARCHAR(64) NOT NULL DEFAULT '',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS item_attributes (
			item_id VARCHAR(32) NOT NULL REFERENCES items(id),
			attribute_id VARCHAR(32) NOT NULL REFERENCES named_attributes(id),
			PRIMARY KEY (item_id, attribute_id)
		)`,
		`CREATE TABLE IF NOT EXISTS item_additives (
			item_id VARCHAR(32) NOT NULL REFERENCES items(id),
			additive_id VARCHAR(32) NOT NULL REFERENCES additives(id),
			PRIMARY KEY (item_id, additive_id)
		)`,

		// -------------------------------
		// CART
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS cart_lines (
			id VARCHAR(32) PRIMARY KEY,
			user_id VARCHAR(32) NOT NULL REFERENCES users(id),
			item_id VARCHAR(32) NOT NULL REFERENCES items(id),
			kind VARCHAR(16) NOT NULL,
			quantity INT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			total_price DOUBLE PRECISION NOT NULL,
			additive_key TEXT NOT NULL DEFAULT '',
			UNIQUE (user_id, item_id, additive_key)
		)`,
		`CREATE TABLE IF NOT EXISTS cart_line_additives (
			cart_line_id VARCHAR(32) NOT NULL REFERENCES cart_lines(id) ON DELETE CASCADE,
			additive_id VARCHAR(32) NOT NULL REFERENCES additives(id),
			PRIMARY KEY (cart_line_id, additive_id)
		)`,

		// -------------------------------
		// ORDERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id VARCHAR(32) NOT NULL REFERENCES users(id),
			restaurant_id VARCHAR(32) NOT NULL REFERENCES restaurants(id),
			status VARCHAR(32) NOT NULL DEFAULT 'PENDING',
			total DOUBLE PRECISION NOT NULL,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			grand_total DOUBLE PRECISION NOT NULL,
			promo_code VARCHAR(64) NOT NULL DEFAULT '',
			delivery_address TEXT NOT NULL DEFAULT '',
			payment_method VARCHAR(32) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			item_id VARCHAR(32) NOT NULL REFERENCES items(id),
			kind VARCHAR(16) NOT NULL,
			quantity INT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			total_price DOUBLE PRECISION NOT NULL,
			instructions TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS order_line_additives (
			order_line_id UUID NOT NULL REFERENCES order_lines(id) ON DELETE CASCADE,
			additive_id VARCHAR(32) NOT NULL REFERENCES additives(id),
			PRIMARY KEY (order_line_id, additive_id)
		)`,

		// -------------------------------
		// RATINGS AND PROMOS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS ratings (
			id VARCHAR(32) PRIMARY KEY,
			user_id VARCHAR(32) NOT NULL REFERENCES users(id),
			target_type VARCHAR(16) NOT NULL,
			target_id VARCHAR(64) NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_target ON ratings (target_type, target_id)`,
		`CREATE TABLE IF NOT EXISTS promos (
			id UUID PRIMARY KEY,
			code VARCHAR(64) UNIQUE NOT NULL,
			discount_amount DOUBLE PRECISION NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
			expires_at TIMESTAMP NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
