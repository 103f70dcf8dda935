package dto

import (
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/service"
)

// MemberResponse is one directory card.
type MemberResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Country            string             `json:"country"`
	City               string             `json:"city"`
	Email              *string            `json:"email,omitempty"`
	Phone              *string            `json:"phone,omitempty"`
	MissionDescription *string            `json:"mission_description,omitempty"`
	SocialLinks        domain.SocialLinks `json:"social_links"`
	Role               domain.Role        `json:"role"`
}

// CityGroupResponse holds one city's members.
type CityGroupResponse struct {
	City    string           `json:"city"`
	Members []MemberResponse `json:"members"`
}

// NewDirectoryResponse maps grouped members to the wire form.
func NewDirectoryResponse(groups []service.CityGroup) []CityGroupResponse {
	out := make([]CityGroupResponse, 0, len(groups))
	for _, group := range groups {
		members := make([]MemberResponse, 0, len(group.Members))
		for _, m := range group.Members {
			members = append(members, MemberResponse{
				ID:                 m.ID,
				Name:               m.Name,
				Country:            m.Country,
				City:               m.City,
				Email:              m.Email,
				Phone:              m.Phone,
				MissionDescription: m.MissionDescription,
				SocialLinks:        m.SocialLinks,
				Role:               m.Role,
			})
		}
		out = append(out, CityGroupResponse{City: group.City, Members: members})
	}
	return out
}

// CountryResponse is one country selector entry.
type CountryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
