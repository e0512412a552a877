package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dataSourceName == ":memory:" {
		// Each pool connection would otherwise get its own empty in-memory DB.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err = store.seedCatalog(); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS products (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        category TEXT NOT NULL,
        price REAL NOT NULL,
        rating REAL NOT NULL DEFAULT 0,
        stock INTEGER NOT NULL DEFAULT 0,
        description TEXT NOT NULL DEFAULT '',
        image TEXT NOT NULL DEFAULT ''
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// seedCatalog inserts the storefront catalog if the table is empty.
// Product ids are stable: chat reply templates link to /product/{id}.
func (s *SQLiteStore) seedCatalog() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmt, err := s.db.Prepare("INSERT INTO products (id, name, category, price, rating, stock, description, image) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare product insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range catalogSeed {
		if _, err := stmt.Exec(p.ID, p.Name, p.Category, p.Price, p.Rating, p.Stock, p.Description, p.Image); err != nil {
			return fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
	}
	return nil
}

const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// ListProducts returns catalog products, optionally filtered by category.
// Unknown sort keys fall back to featured (seed) order.
func (s *SQLiteStore) ListProducts(category, sortBy string) ([]Product, error) {
	query := "SELECT id, name, category, price, rating, stock, description, image FROM products"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}

	switch sortBy {
	case SortPriceLow:
		query += " ORDER BY price ASC"
	case SortPriceHigh:
		query += " ORDER BY price DESC"
	case SortRating:
		query += " ORDER BY rating DESC"
	default:
		query += " ORDER BY id ASC"
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Rating, &p.Stock, &p.Description, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQLiteStore) GetProduct(id int64) (*Product, error) {
	var p Product
	err := s.db.QueryRow("SELECT id, name, category, price, rating, stock, description, image FROM products WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Rating, &p.Stock, &p.Description, &p.Image)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// RelatedProducts returns products sharing a category with the given product,
// excluding the product itself.
func (s *SQLiteStore) RelatedProducts(id int64, limit int) ([]Product, error) {
	rows, err := s.db.Query(`
        SELECT p.id, p.name, p.category, p.price, p.rating, p.stock, p.description, p.image
        FROM products p
        JOIN products base ON base.id = ? AND p.category = base.category AND p.id != base.id
        ORDER BY p.id ASC LIMIT ?`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query related products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Rating, &p.Stock, &p.Description, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan related product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQLiteStore) Categories() ([]string, error) {
	rows, err := s.db.Query("SELECT category FROM products GROUP BY category ORDER BY MIN(id)")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
