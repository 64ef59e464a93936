package handler

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
)

// --- MessagesService ---

type MockMessagesService struct {
	DispatchFunc func(ctx context.Context, credential string, req api.MessagesRequest) (service.MessagesResult, error)
}

func (m *MockMessagesService) Dispatch(ctx context.Context, credential string, req api.MessagesRequest) (service.MessagesResult, error) {
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, credential, req)
	}
	return service.MessagesResult{}, nil
}

// --- AuthService ---

type MockAuthService struct {
	LoginFunc func(ctx context.Context, creds domain.Credentials) (string, time.Time, error)
	MeFunc    func(ctx context.Context, credential string) (domain.Caller, error)
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, time.Time, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return "token", time.Now().Add(time.Hour), nil
}

func (m *MockAuthService) Me(ctx context.Context, credential string) (domain.Caller, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, credential)
	}
	return domain.Caller{Id: "user-1"}, nil
}

// --- ContentService ---

type MockContentService struct {
	AboutFunc     func(ctx context.Context) (domain.About, error)
	SaveAboutFunc func(ctx context.Context, req api.AboutRequest) (domain.About, error)

	SkillsFunc      func(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error)
	CreateSkillFunc func(ctx context.Context, req api.CreateSkillRequest) (domain.Skill, error)
	PatchSkillFunc  func(ctx context.Context, id domain.ContentId, patch api.SkillPatch) (domain.Skill, error)
	DeleteSkillFunc func(ctx context.Context, id domain.ContentId) error

	ExperiencesFunc      func(ctx context.Context) ([]domain.Experience, error)
	CreateExperienceFunc func(ctx context.Context, req api.CreateExperienceRequest) (domain.Experience, error)
	PatchExperienceFunc  func(ctx context.Context, id domain.ContentId, patch api.ExperiencePatch) (domain.Experience, error)
	DeleteExperienceFunc func(ctx context.Context, id domain.ContentId) error

	ServicesFunc      func(ctx context.Context) ([]domain.Service, error)
	CreateServiceFunc func(ctx context.Context, req api.CreateServiceRequest) (domain.Service, error)
	PatchServiceFunc  func(ctx context.Context, id domain.ContentId, patch api.ServicePatch) (domain.Service, error)
	DeleteServiceFunc func(ctx context.Context, id domain.ContentId) error

	PortfolioFunc           func(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error)
	PortfolioItemFunc       func(ctx context.Context, slug domain.Slug, includeDrafts bool) (domain.PortfolioItem, error)
	CreatePortfolioItemFunc func(ctx context.Context, req api.CreatePortfolioItemRequest) (domain.PortfolioItem, error)
	PatchPortfolioItemFunc  func(ctx context.Context, id domain.ContentId, patch api.PortfolioItemPatch) (domain.PortfolioItem, error)
	DeletePortfolioItemFunc func(ctx context.Context, id domain.ContentId) error

	ResumeSettingsFunc      func(ctx context.Context) (domain.ResumeExportSettings, error)
	PatchResumeSettingsFunc func(ctx context.Context, patch api.ResumeSettingsPatch) (domain.ResumeExportSettings, error)
	ResumeFunc              func(ctx context.Context) (domain.Resume, error)
}

func (m *MockContentService) About(ctx context.Context) (domain.About, error) {
	if m.AboutFunc != nil {
		return m.AboutFunc(ctx)
	}
	return domain.About{}, nil
}

func (m *MockContentService) SaveAbout(ctx context.Context, req api.AboutRequest) (domain.About, error) {
	if m.SaveAboutFunc != nil {
		return m.SaveAboutFunc(ctx, req)
	}
	return domain.About{Headline: req.Headline}, nil
}

func (m *MockContentService) Skills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error) {
	if m.SkillsFunc != nil {
		return m.SkillsFunc(ctx, filter)
	}
	return []domain.Skill{}, nil
}

func (m *MockContentService) CreateSkill(ctx context.Context, req api.CreateSkillRequest) (domain.Skill, error) {
	if m.CreateSkillFunc != nil {
		return m.CreateSkillFunc(ctx, req)
	}
	return domain.Skill{Id: "skill-1", Name: req.Name}, nil
}

func (m *MockContentService) PatchSkill(ctx context.Context, id domain.ContentId, patch api.SkillPatch) (domain.Skill, error) {
	if m.PatchSkillFunc != nil {
		return m.PatchSkillFunc(ctx, id, patch)
	}
	return domain.Skill{Id: id}, nil
}

func (m *MockContentService) DeleteSkill(ctx context.Context, id domain.ContentId) error {
	if m.DeleteSkillFunc != nil {
		return m.DeleteSkillFunc(ctx, id)
	}
	return nil
}

func (m *MockContentService) Experiences(ctx context.Context) ([]domain.Experience, error) {
	if m.ExperiencesFunc != nil {
		return m.ExperiencesFunc(ctx)
	}
	return []domain.Experience{}, nil
}

func (m *MockContentService) CreateExperience(ctx context.Context, req api.CreateExperienceRequest) (domain.Experience, error) {
	if m.CreateExperienceFunc != nil {
		return m.CreateExperienceFunc(ctx, req)
	}
	return domain.Experience{Id: "exp-1", Role: req.Role}, nil
}

func (m *MockContentService) PatchExperience(ctx context.Context, id domain.ContentId, patch api.ExperiencePatch) (domain.Experience, error) {
	if m.PatchExperienceFunc != nil {
		return m.PatchExperienceFunc(ctx, id, patch)
	}
	return domain.Experience{Id: id}, nil
}

func (m *MockContentService) DeleteExperience(ctx context.Context, id domain.ContentId) error {
	if m.DeleteExperienceFunc != nil {
		return m.DeleteExperienceFunc(ctx, id)
	}
	return nil
}

func (m *MockContentService) Services(ctx context.Context) ([]domain.Service, error) {
	if m.ServicesFunc != nil {
		return m.ServicesFunc(ctx)
	}
	return []domain.Service{}, nil
}

func (m *MockContentService) CreateService(ctx context.Context, req api.CreateServiceRequest) (domain.Service, error) {
	if m.CreateServiceFunc != nil {
		return m.CreateServiceFunc(ctx, req)
	}
	return domain.Service{Id: "svc-1", Name: req.Name}, nil
}

func (m *MockContentService) PatchService(ctx context.Context, id domain.ContentId, patch api.ServicePatch) (domain.Service, error) {
	if m.PatchServiceFunc != nil {
		return m.PatchServiceFunc(ctx, id, patch)
	}
	return domain.Service{Id: id}, nil
}

func (m *MockContentService) DeleteService(ctx context.Context, id domain.ContentId) error {
	if m.DeleteServiceFunc != nil {
		return m.DeleteServiceFunc(ctx, id)
	}
	return nil
}

func (m *MockContentService) Portfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	if m.PortfolioFunc != nil {
		return m.PortfolioFunc(ctx, filter)
	}
	return []domain.PortfolioItem{}, nil
}

func (m *MockContentService) PortfolioItem(ctx context.Context, slug domain.Slug, includeDrafts bool) (domain.PortfolioItem, error) {
	if m.PortfolioItemFunc != nil {
		return m.PortfolioItemFunc(ctx, slug, includeDrafts)
	}
	return domain.PortfolioItem{Slug: slug}, nil
}

func (m *MockContentService) CreatePortfolioItem(ctx context.Context, req api.CreatePortfolioItemRequest) (domain.PortfolioItem, error) {
	if m.CreatePortfolioItemFunc != nil {
		return m.CreatePortfolioItemFunc(ctx, req)
	}
	return domain.PortfolioItem{Id: "item-1", Slug: req.Slug}, nil
}

func (m *MockContentService) PatchPortfolioItem(ctx context.Context, id domain.ContentId, patch api.PortfolioItemPatch) (domain.PortfolioItem, error) {
	if m.PatchPortfolioItemFunc != nil {
		return m.PatchPortfolioItemFunc(ctx, id, patch)
	}
	return domain.PortfolioItem{Id: id}, nil
}

func (m *MockContentService) DeletePortfolioItem(ctx context.Context, id domain.ContentId) error {
	if m.DeletePortfolioItemFunc != nil {
		return m.DeletePortfolioItemFunc(ctx, id)
	}
	return nil
}

func (m *MockContentService) ResumeSettings(ctx context.Context) (domain.ResumeExportSettings, error) {
	if m.ResumeSettingsFunc != nil {
		return m.ResumeSettingsFunc(ctx)
	}
	return domain.DefaultResumeExportSettings(), nil
}

func (m *MockContentService) PatchResumeSettings(ctx context.Context, patch api.ResumeSettingsPatch) (domain.ResumeExportSettings, error) {
	if m.PatchResumeSettingsFunc != nil {
		return m.PatchResumeSettingsFunc(ctx, patch)
	}
	return domain.DefaultResumeExportSettings(), nil
}

func (m *MockContentService) Resume(ctx context.Context) (domain.Resume, error) {
	if m.ResumeFunc != nil {
		return m.ResumeFunc(ctx)
	}
	return domain.Resume{}, nil
}

// --- MediaService ---

type MockMediaService struct {
	UploadFunc func(ctx context.Context, data io.Reader, mimeType string) (string, error)
	OpenFunc   func(ctx context.Context, name string) (io.ReadCloser, string, error)
}

func (m *MockMediaService) Upload(ctx context.Context, data io.Reader, mimeType string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, data, mimeType)
	}
	return service.MediaURLPrefix + "blob.png", nil
}

func (m *MockMediaService) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, name)
	}
	return io.NopCloser(strings.NewReader("data")), "image/png", nil
}

// --- HealthChecker ---

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}
