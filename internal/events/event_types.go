package events

import (
	"time"

	"github.com/spec-kit/member-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// Auth state changes emitted by the session store.
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"

	// Announcement lifecycle events emitted by services.
	EventAnnouncementCreated   EventType = "announcement_created"
	EventAnnouncementModerated EventType = "announcement_moderated"
)

// Event represents a domain event emitted by the session store or services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AuthStatePayload accompanies signed_in, signed_out and token_refreshed
// events. Session is nil on signed_out.
type AuthStatePayload struct {
	Token   string          `json:"token"`
	UserID  string          `json:"user_id"`
	Session *domain.Session `json:"session,omitempty"`
}

// AnnouncementCreatedPayload payload.
type AnnouncementCreatedPayload struct {
	AnnouncementID string                      `json:"announcement_id"`
	AuthorID       string                      `json:"author_id"`
	Category       domain.AnnouncementCategory `json:"category"`
	Title          string                      `json:"title"`
}

// AnnouncementModeratedPayload payload.
type AnnouncementModeratedPayload struct {
	AnnouncementID string                    `json:"announcement_id"`
	ModeratorID    string                    `json:"moderator_id"`
	OldStatus      domain.AnnouncementStatus `json:"old_status"`
	NewStatus      domain.AnnouncementStatus `json:"new_status"`
}
