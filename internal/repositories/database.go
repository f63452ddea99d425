package repository

import (
	"database/sql"
	"fmt"

	"github.com/R-Agile/epetshop-backend/internal/config"
	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Repositories bundles every Postgres-backed store over one connection pool.
type Repositories struct {
	DB *sql.DB

	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
	Cart     CartRepository
	Order    OrderRepository
	Wishlist WishlistRepository
	Pet      PetRepository
	Stats    StatsRepository
}

func New(cfg *config.Config) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:       db,
		User:     NewUserRepo(db),
		Category: NewCategoryRepo(db),
		Product:  NewProductRepo(db),
		Cart:     NewCartRepo(db),
		Order:    NewOrderRepo(db),
		Wishlist: NewWishlistRepo(db),
		Pet:      NewPetRepo(db),
		Stats:    NewStatsRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
