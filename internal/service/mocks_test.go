package service

import (
	"context"

	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/repository"
)

type mockProfileRepo struct {
	createFn      func(ctx context.Context, profile *domain.Profile) error
	updateFn      func(ctx context.Context, profile *domain.Profile) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Profile, error)
	getByUserIDFn func(ctx context.Context, userID string) (*domain.Profile, error)
	listPublicFn  func(ctx context.Context, filter repository.PublicProfileFilter) ([]domain.Profile, error)
	listAllFn     func(ctx context.Context) ([]domain.Profile, error)
	getManyFn     func(ctx context.Context, userIDs []string) (map[string]domain.Profile, error)
	deleteFn      func(ctx context.Context, id string) error
	statsFn       func(ctx context.Context) (*repository.DirectoryStats, error)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) ListPublic(ctx context.Context, filter repository.PublicProfileFilter) ([]domain.Profile, error) {
	if m.listPublicFn != nil {
		return m.listPublicFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockProfileRepo) ListAll(ctx context.Context) ([]domain.Profile, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepo) GetManyByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error) {
	if m.getManyFn != nil {
		return m.getManyFn(ctx, userIDs)
	}
	return map[string]domain.Profile{}, nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProfileRepo) Stats(ctx context.Context) (*repository.DirectoryStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &repository.DirectoryStats{}, nil
}

type mockRoleRepo struct {
	getFn     func(ctx context.Context, userID string) (domain.Role, error)
	getManyFn func(ctx context.Context, userIDs []string) (map[string]domain.Role, error)
	setFn     func(ctx context.Context, userID string, role domain.Role) error
}

func (m *mockRoleRepo) Get(ctx context.Context, userID string) (domain.Role, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return domain.RoleBasic, nil
}

func (m *mockRoleRepo) GetMany(ctx context.Context, userIDs []string) (map[string]domain.Role, error) {
	if m.getManyFn != nil {
		return m.getManyFn(ctx, userIDs)
	}
	return map[string]domain.Role{}, nil
}

func (m *mockRoleRepo) Set(ctx context.Context, userID string, role domain.Role) error {
	if m.setFn != nil {
		return m.setFn(ctx, userID, role)
	}
	return nil
}

type mockCountryRepo struct {
	listFn func(ctx context.Context) ([]domain.Country, error)
}

func (m *mockCountryRepo) List(ctx context.Context) ([]domain.Country, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockAnnouncementRepo struct {
	createFn       func(ctx context.Context, announcement *domain.Announcement) error
	getByIDFn      func(ctx context.Context, id string) (*domain.Announcement, error)
	listApprovedFn func(ctx context.Context) ([]repository.AnnouncementWithAuthor, error)
	listAllFn      func(ctx context.Context) ([]domain.Announcement, error)
	updateStatusFn func(ctx context.Context, id string, status domain.AnnouncementStatus) error
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, announcement *domain.Announcement) error {
	if m.createFn != nil {
		return m.createFn(ctx, announcement)
	}
	return nil
}

func (m *mockAnnouncementRepo) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAnnouncementRepo) ListApproved(ctx context.Context) ([]repository.AnnouncementWithAuthor, error) {
	if m.listApprovedFn != nil {
		return m.listApprovedFn(ctx)
	}
	return nil, nil
}

func (m *mockAnnouncementRepo) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockAnnouncementRepo) UpdateStatus(ctx context.Context, id string, status domain.AnnouncementStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockAccountRepo struct {
	createFn     func(ctx context.Context, account *domain.Account) error
	updateFn     func(ctx context.Context, account *domain.Account) error
	getByIDFn    func(ctx context.Context, id string) (*domain.Account, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Account, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

type mockResetRepo struct {
	createFn     func(ctx context.Context, token *repository.PasswordResetToken) error
	getByTokenFn func(ctx context.Context, token string) (*repository.PasswordResetToken, error)
	markUsedFn   func(ctx context.Context, id string) error
}

func (m *mockResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockResetRepo) GetByToken(ctx context.Context, token string) (*repository.PasswordResetToken, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockResetRepo) MarkUsed(ctx context.Context, id string) error {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, id)
	}
	return nil
}
