package domain

import "time"

// AnnouncementCategory classifies a community announcement.
type AnnouncementCategory string

const (
	CategoryCollaboration AnnouncementCategory = "collaboration"
	CategoryRelocation    AnnouncementCategory = "relocation"
	CategoryVisiting      AnnouncementCategory = "visiting"
	CategoryProject       AnnouncementCategory = "project"
	CategoryOther         AnnouncementCategory = "other"
)

// AnnouncementCategories lists the categories in form order.
func AnnouncementCategories() []AnnouncementCategory {
	return []AnnouncementCategory{
		CategoryCollaboration,
		CategoryRelocation,
		CategoryVisiting,
		CategoryProject,
		CategoryOther,
	}
}

// AnnouncementStatus is the moderation lifecycle state.
type AnnouncementStatus string

const (
	AnnouncementPending  AnnouncementStatus = "pending"
	AnnouncementApproved AnnouncementStatus = "approved"
	AnnouncementRejected AnnouncementStatus = "rejected"
)

// Announcement is a member-authored post. It is created pending and becomes
// publicly visible only after an admin approves it.
type Announcement struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Category  AnnouncementCategory
	Status    AnnouncementStatus
	CreatedAt time.Time
}

// AnnouncementAuthor is the directory identity attached to an approved
// announcement in public listings.
type AnnouncementAuthor struct {
	Name    string
	City    string
	Country string
}
