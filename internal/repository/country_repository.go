package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/member-directory/internal/domain"
)

// CountryRepository serves the directory's country selector.
type CountryRepository interface {
	List(ctx context.Context) ([]domain.Country, error)
}

type countryRepository struct {
	pool *pgxpool.Pool
}

// NewCountryRepository instantiates repository.
func NewCountryRepository(pool *pgxpool.Pool) CountryRepository {
	return &countryRepository{pool: pool}
}

func (r *countryRepository) List(ctx context.Context) ([]domain.Country, error) {
	const query = `SELECT code, name FROM countries ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []domain.Country
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}
