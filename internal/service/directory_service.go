package service

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/repository"
)

// DirectoryQuery narrows a directory listing.
type DirectoryQuery struct {
	Country *string
	// Search is a case-insensitive substring match against name and city.
	Search string
}

// Member is a public profile annotated with its role for display.
type Member struct {
	domain.Profile
	Role domain.Role
}

// CityGroup holds the members of one city, the directory's display unit.
type CityGroup struct {
	City    string
	Members []Member
}

// DirectoryService serves the public member directory.
type DirectoryService struct {
	profiles  repository.ProfileRepository
	roles     repository.RoleRepository
	countries repository.CountryRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(profiles repository.ProfileRepository, roles repository.RoleRepository, countries repository.CountryRepository) *DirectoryService {
	return &DirectoryService{profiles: profiles, roles: roles, countries: countries}
}

// List returns public profiles matching the query, grouped by city in
// alphabetical order.
func (s *DirectoryService) List(ctx context.Context, query DirectoryQuery) ([]CityGroup, error) {
	profiles, err := s.profiles.ListPublic(ctx, repository.PublicProfileFilter{Country: query.Country})
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}
	roles, err := s.roles.GetMany(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	grouped := make(map[string][]Member)
	for _, p := range profiles {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.City), search) {
			continue
		}
		role, ok := roles[p.UserID]
		if !ok {
			role = domain.RoleBasic
		}
		grouped[p.City] = append(grouped[p.City], Member{Profile: p, Role: role})
	}

	cities := make([]string, 0, len(grouped))
	for city := range grouped {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	groups := make([]CityGroup, 0, len(cities))
	for _, city := range cities {
		groups = append(groups, CityGroup{City: city, Members: grouped[city]})
	}
	return groups, nil
}

// Countries returns the country selector entries.
func (s *DirectoryService) Countries(ctx context.Context) ([]domain.Country, error) {
	return s.countries.List(ctx)
}
