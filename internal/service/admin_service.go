package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/events"
	"github.com/spec-kit/member-directory/internal/repository"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

// AdminService backs the moderation dashboard.
type AdminService struct {
	profiles      repository.ProfileRepository
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(profiles repository.ProfileRepository, announcements repository.AnnouncementRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{profiles: profiles, announcements: announcements, dispatcher: dispatcher}
}

func requireAdmin(actor authstate.State) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context, actor authstate.State) (*repository.DirectoryStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.profiles.Stats(ctx)
}

// ListProfiles returns every profile, public or not, newest first.
func (s *AdminService) ListProfiles(ctx context.Context, actor authstate.State) ([]domain.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.profiles.ListAll(ctx)
}

// DeleteProfile removes a member's directory record.
func (s *AdminService) DeleteProfile(ctx context.Context, actor authstate.State, profileID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, profileID)
}

// ListAnnouncements returns every announcement regardless of status.
func (s *AdminService) ListAnnouncements(ctx context.Context, actor authstate.State) ([]domain.Announcement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.announcements.ListAll(ctx)
}

// SetAnnouncementStatus moderates an announcement. The target status must be
// approved or rejected; nothing transitions back to pending.
func (s *AdminService) SetAnnouncementStatus(ctx context.Context, actor authstate.State, id string, status domain.AnnouncementStatus) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if status != domain.AnnouncementApproved && status != domain.AnnouncementRejected {
		return apperrors.NewValidationError("status must be approved or rejected", nil)
	}

	announcement, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if announcement.Status == status {
		return nil
	}
	if err := s.announcements.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAnnouncementModerated,
		Timestamp: time.Now(),
		Payload: events.AnnouncementModeratedPayload{
			AnnouncementID: id,
			ModeratorID:    actor.UserID,
			OldStatus:      announcement.Status,
			NewStatus:      status,
		},
	})
	return nil
}

// DeleteAnnouncement removes an announcement outright.
func (s *AdminService) DeleteAnnouncement(ctx context.Context, actor authstate.State, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.announcements.Delete(ctx, id)
}
