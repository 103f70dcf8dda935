package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/member-directory/internal/domain"
)

// AnnouncementWithAuthor pairs an announcement with its author's public
// directory identity, when the author still has a profile.
type AnnouncementWithAuthor struct {
	domain.Announcement
	Author *domain.AnnouncementAuthor
}

// AnnouncementRepository encapsulates announcement persistence.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	GetByID(ctx context.Context, id string) (*domain.Announcement, error)
	ListApproved(ctx context.Context) ([]AnnouncementWithAuthor, error)
	ListAll(ctx context.Context) ([]domain.Announcement, error)
	UpdateStatus(ctx context.Context, id string, status domain.AnnouncementStatus) error
	Delete(ctx context.Context, id string) error
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository instantiates repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (user_id, title, content, category, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		announcement.UserID,
		announcement.Title,
		announcement.Content,
		announcement.Category,
		announcement.Status,
	).Scan(&announcement.ID, &announcement.CreatedAt)
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	const query = `
        SELECT id, user_id, title, content, category, status, created_at
        FROM announcements WHERE id=$1`

	var a domain.Announcement
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.UserID,
		&a.Title,
		&a.Content,
		&a.Category,
		&a.Status,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) ListApproved(ctx context.Context) ([]AnnouncementWithAuthor, error) {
	const query = `
        SELECT a.id, a.user_id, a.title, a.content, a.category, a.status, a.created_at,
               p.name, p.city, p.country
        FROM announcements a
        LEFT JOIN profiles p ON p.user_id = a.user_id
        WHERE a.status='approved'
        ORDER BY a.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []AnnouncementWithAuthor
	for rows.Next() {
		var item AnnouncementWithAuthor
		var name, city, country *string
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Content,
			&item.Category,
			&item.Status,
			&item.CreatedAt,
			&name,
			&city,
			&country,
		); err != nil {
			return nil, err
		}
		if name != nil {
			item.Author = &domain.AnnouncementAuthor{Name: *name}
			if city != nil {
				item.Author.City = *city
			}
			if country != nil {
				item.Author.Country = *country
			}
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *announcementRepository) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	const query = `
        SELECT id, user_id, title, content, category, status, created_at
        FROM announcements ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Title,
			&a.Content,
			&a.Category,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *announcementRepository) UpdateStatus(ctx context.Context, id string, status domain.AnnouncementStatus) error {
	const query = `UPDATE announcements SET status=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM announcements WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
