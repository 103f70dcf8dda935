package domain

import "time"

// SocialLinks carries the optional external links shown on a member card.
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is a member's directory record. At most one profile exists per
// account (user_id is unique); it is mutated only by its owner or an admin.
type Profile struct {
	ID                 string
	UserID             string
	Name               string
	Country            string
	City               string
	Email              *string
	Phone              *string
	MissionDescription *string
	SocialLinks        SocialLinks
	IsPublic           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
