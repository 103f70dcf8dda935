package dto

import (
	"time"

	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/repository"
)

// CreateAnnouncementRequest is the announcement form payload.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required,min=10,max=5000"`
	Category string `json:"category" validate:"required,oneof=collaboration relocation visiting project other"`
}

// AnnouncementAuthorResponse is the author identity on a public card.
type AnnouncementAuthorResponse struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// AnnouncementResponse is the wire form of an announcement.
type AnnouncementResponse struct {
	ID        string                      `json:"id"`
	UserID    string                      `json:"user_id"`
	Title     string                      `json:"title"`
	Content   string                      `json:"content"`
	Category  domain.AnnouncementCategory `json:"category"`
	Status    domain.AnnouncementStatus   `json:"status"`
	CreatedAt time.Time                   `json:"created_at"`
	Author    *AnnouncementAuthorResponse `json:"author,omitempty"`
}

// NewAnnouncementResponse maps a domain announcement.
func NewAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

// NewAnnouncementFeedResponse maps the public feed with author identities.
func NewAnnouncementFeedResponse(items []repository.AnnouncementWithAuthor) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(items))
	for _, item := range items {
		resp := NewAnnouncementResponse(&item.Announcement)
		if item.Author != nil {
			resp.Author = &AnnouncementAuthorResponse{
				Name:    item.Author.Name,
				City:    item.Author.City,
				Country: item.Author.Country,
			}
		}
		out = append(out, resp)
	}
	return out
}

// SetAnnouncementStatusRequest is the moderation payload.
type SetAnnouncementStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
