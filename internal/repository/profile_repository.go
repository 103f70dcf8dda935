package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/member-directory/internal/domain"
)

// PublicProfileFilter narrows directory listings.
type PublicProfileFilter struct {
	Country *string
}

// DirectoryStats aggregates counts for the admin dashboard.
type DirectoryStats struct {
	TotalProfiles  int
	PublicProfiles int
	Countries      int
}

// ProfileRepository encapsulates profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListPublic(ctx context.Context, filter PublicProfileFilter) ([]domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
	GetManyByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*DirectoryStats, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `
        id, user_id, name, country, city, email, phone,
        mission_description, social_links, is_public, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (user_id, name, country, city, email, phone, mission_description, social_links, is_public)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	links, err := json.Marshal(profile.SocialLinks)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Country,
		profile.City,
		profile.Email,
		profile.Phone,
		profile.MissionDescription,
		links,
		profile.IsPublic,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles SET name=$1, country=$2, city=$3, email=$4, phone=$5,
            mission_description=$6, social_links=$7, is_public=$8, updated_at=NOW()
        WHERE user_id=$9`

	links, err := json.Marshal(profile.SocialLinks)
	if err != nil {
		return err
	}

	cmd, err := r.pool.Exec(ctx, query,
		profile.Name,
		profile.Country,
		profile.City,
		profile.Email,
		profile.Phone,
		profile.MissionDescription,
		links,
		profile.IsPublic,
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `SELECT` + profileColumns + ` FROM profiles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const query = `SELECT` + profileColumns + ` FROM profiles WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *profileRepository) ListPublic(ctx context.Context, filter PublicProfileFilter) ([]domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE is_public`
	args := []any{}
	if filter.Country != nil {
		query += ` AND country=$1`
		args = append(args, *filter.Country)
	}
	query += ` ORDER BY city, name`

	return r.fetchMany(ctx, query, args...)
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	const query = `SELECT` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	return r.fetchMany(ctx, query)
}

func (r *profileRepository) GetManyByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error) {
	profiles := make(map[string]domain.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	const query = `SELECT` + profileColumns + ` FROM profiles WHERE user_id = ANY($1)`
	list, err := r.fetchMany(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	for _, profile := range list {
		profiles[profile.UserID] = profile
	}
	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM profiles WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) Stats(ctx context.Context) (*DirectoryStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE is_public),
               COUNT(DISTINCT country)
        FROM profiles`

	var stats DirectoryStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalProfiles,
		&stats.PublicProfiles,
		&stats.Countries,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *profileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	var links []byte
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Country,
		&profile.City,
		&profile.Email,
		&profile.Phone,
		&profile.MissionDescription,
		&links,
		&profile.IsPublic,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &profile.SocialLinks); err != nil {
			return nil, err
		}
	}
	return &profile, nil
}
