package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/events"
	"github.com/spec-kit/member-directory/internal/repository"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

// AnnouncementInput is the validated announcement form payload.
type AnnouncementInput struct {
	Title    string
	Content  string
	Category domain.AnnouncementCategory
}

// AnnouncementService coordinates announcement creation and public listing.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository, dispatcher events.Dispatcher) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, dispatcher: dispatcher}
}

// ListApproved returns the public announcement feed, newest first, with
// author directory identities attached.
func (s *AnnouncementService) ListApproved(ctx context.Context) ([]repository.AnnouncementWithAuthor, error) {
	return s.announcements.ListApproved(ctx)
}

// Create stores a new announcement in the pending state. It becomes visible
// in the public feed only after moderation.
func (s *AnnouncementService) Create(ctx context.Context, authorID string, input AnnouncementInput) (*domain.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)

	announcement := &domain.Announcement{
		UserID:   authorID,
		Title:    title,
		Content:  content,
		Category: input.Category,
		Status:   domain.AnnouncementPending,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAnnouncementCreated,
		Timestamp: time.Now(),
		Payload: events.AnnouncementCreatedPayload{
			AnnouncementID: announcement.ID,
			AuthorID:       authorID,
			Category:       announcement.Category,
			Title:          announcement.Title,
		},
	})
	return announcement, nil
}

// Delete removes an announcement. Only its author or an admin may do so.
func (s *AnnouncementService) Delete(ctx context.Context, actor authstate.State, id string) error {
	announcement, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if announcement.UserID != actor.UserID && !actor.IsAdmin() {
		return apperrors.NewForbidden("only the author or an admin may delete an announcement")
	}
	return s.announcements.Delete(ctx, id)
}
