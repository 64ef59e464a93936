package service

import (
	"context"
	"slices"
	"strings"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/utils"
)

type ContentService interface {
	About(ctx context.Context) (domain.About, error)
	SaveAbout(ctx context.Context, req api.AboutRequest) (domain.About, error)

	Skills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error)
	CreateSkill(ctx context.Context, req api.CreateSkillRequest) (domain.Skill, error)
	PatchSkill(ctx context.Context, id domain.ContentId, patch api.SkillPatch) (domain.Skill, error)
	DeleteSkill(ctx context.Context, id domain.ContentId) error

	Experiences(ctx context.Context) ([]domain.Experience, error)
	CreateExperience(ctx context.Context, req api.CreateExperienceRequest) (domain.Experience, error)
	PatchExperience(ctx context.Context, id domain.ContentId, patch api.ExperiencePatch) (domain.Experience, error)
	DeleteExperience(ctx context.Context, id domain.ContentId) error

	Services(ctx context.Context) ([]domain.Service, error)
	CreateService(ctx context.Context, req api.CreateServiceRequest) (domain.Service, error)
	PatchService(ctx context.Context, id domain.ContentId, patch api.ServicePatch) (domain.Service, error)
	DeleteService(ctx context.Context, id domain.ContentId) error

	Portfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error)
	PortfolioItem(ctx context.Context, slug domain.Slug, includeDrafts bool) (domain.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, req api.CreatePortfolioItemRequest) (domain.PortfolioItem, error)
	PatchPortfolioItem(ctx context.Context, id domain.ContentId, patch api.PortfolioItemPatch) (domain.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id domain.ContentId) error

	ResumeSettings(ctx context.Context) (domain.ResumeExportSettings, error)
	PatchResumeSettings(ctx context.Context, patch api.ResumeSettingsPatch) (domain.ResumeExportSettings, error)
	Resume(ctx context.Context) (domain.Resume, error)
}

// ContentStorage is typed CRUD per entity. Update methods persist the whole
// entity and fail with NotFound when the id is unknown.
type ContentStorage interface {
	About(ctx context.Context) (domain.About, error)
	SaveAbout(ctx context.Context, about domain.About) (domain.About, error)

	ListSkills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error)
	Skill(ctx context.Context, id domain.ContentId) (domain.Skill, error)
	CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	UpdateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	DeleteSkill(ctx context.Context, id domain.ContentId) error

	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	Experience(ctx context.Context, id domain.ContentId) (domain.Experience, error)
	CreateExperience(ctx context.Context, exp domain.Experience) (domain.Experience, error)
	UpdateExperience(ctx context.Context, exp domain.Experience) (domain.Experience, error)
	DeleteExperience(ctx context.Context, id domain.ContentId) error

	ListServices(ctx context.Context) ([]domain.Service, error)
	Service(ctx context.Context, id domain.ContentId) (domain.Service, error)
	CreateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	DeleteService(ctx context.Context, id domain.ContentId) error

	ListPortfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error)
	PortfolioItem(ctx context.Context, id domain.ContentId) (domain.PortfolioItem, error)
	PortfolioItemBySlug(ctx context.Context, slug domain.Slug) (domain.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item domain.PortfolioItem) (domain.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, item domain.PortfolioItem) (domain.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id domain.ContentId) error

	ResumeSettings(ctx context.Context) (domain.ResumeExportSettings, error)
	SaveResumeSettings(ctx context.Context, settings domain.ResumeExportSettings) (domain.ResumeExportSettings, error)
}

type MarkdownRenderer interface {
	Render(source string) (string, error)
	RenderPtr(source *string) (string, error)
}

type Content struct {
	storage  ContentStorage
	markdown MarkdownRenderer
}

func NewContent(storage ContentStorage, markdown MarkdownRenderer) *Content {
	return &Content{storage: storage, markdown: markdown}
}

// =========================================================================
// About
// =========================================================================

// About returns an empty profile until one has been saved.
func (c *Content) About(ctx context.Context) (domain.About, error) {
	about, err := c.storage.About(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.About{Highlights: []string{}, Links: domain.Links{}}, nil
		}
		return domain.About{}, err
	}
	return c.renderAbout(about), nil
}

func (c *Content) SaveAbout(ctx context.Context, req api.AboutRequest) (domain.About, error) {
	if err := utils.Validate(req); err != nil {
		return domain.About{}, err
	}
	about, err := c.storage.SaveAbout(ctx, domain.About{
		Headline:    strings.TrimSpace(req.Headline),
		Subheadline: strings.TrimSpace(req.Subheadline),
		Bio:         req.Bio,
		Highlights:  nonNil(req.Highlights),
		Links:       nonNil(req.Links),
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return domain.About{}, err
	}
	return c.renderAbout(about), nil
}

func (c *Content) renderAbout(about domain.About) domain.About {
	about.BioHTML = c.render(about.Bio)
	return about
}

// =========================================================================
// Skills
// =========================================================================

func (c *Content) Skills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error) {
	if filter.Category != nil && !isSkillCategory(*filter.Category) {
		return nil, errors.Validation("Unknown skill category")
	}
	return c.storage.ListSkills(ctx, filter)
}

func (c *Content) CreateSkill(ctx context.Context, req api.CreateSkillRequest) (domain.Skill, error) {
	if err := utils.Validate(req); err != nil {
		return domain.Skill{}, err
	}
	level := domain.DefaultSkillLevel
	if req.Level != nil {
		level = *req.Level
	}
	return c.storage.CreateSkill(ctx, domain.Skill{
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		Level:     level,
		Tags:      nonNil(req.Tags),
		SortOrder: req.SortOrder,
	})
}

func (c *Content) PatchSkill(ctx context.Context, id domain.ContentId, patch api.SkillPatch) (domain.Skill, error) {
	if err := utils.Validate(patch); err != nil {
		return domain.Skill{}, err
	}
	skill, err := c.storage.Skill(ctx, id)
	if err != nil {
		return domain.Skill{}, err
	}
	setIf(&skill.Name, trimPtr(patch.Name))
	setIf(&skill.Category, patch.Category)
	setIf(&skill.Level, patch.Level)
	setIf(&skill.Tags, patch.Tags)
	setIf(&skill.SortOrder, patch.SortOrder)
	return c.storage.UpdateSkill(ctx, skill)
}

func (c *Content) DeleteSkill(ctx context.Context, id domain.ContentId) error {
	return c.storage.DeleteSkill(ctx, id)
}

func isSkillCategory(category string) bool {
	return slices.Contains(domain.SkillCategories, category)
}

// =========================================================================
// Experiences
// =========================================================================

func (c *Content) Experiences(ctx context.Context) ([]domain.Experience, error) {
	return c.storage.ListExperiences(ctx)
}

func (c *Content) CreateExperience(ctx context.Context, req api.CreateExperienceRequest) (domain.Experience, error) {
	if err := utils.Validate(req); err != nil {
		return domain.Experience{}, err
	}
	exp := domain.Experience{
		Role:       strings.TrimSpace(req.Role),
		Company:    strings.TrimSpace(req.Company),
		Location:   req.Location,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		IsCurrent:  req.IsCurrent,
		Summary:    req.Summary,
		Highlights: nonNil(req.Highlights),
		TechStack:  nonNil(req.TechStack),
		SortOrder:  req.SortOrder,
	}
	if err := checkExperienceDates(exp); err != nil {
		return domain.Experience{}, err
	}
	return c.storage.CreateExperience(ctx, exp)
}

func (c *Content) PatchExperience(ctx context.Context, id domain.ContentId, patch api.ExperiencePatch) (domain.Experience, error) {
	if err := utils.Validate(patch); err != nil {
		return domain.Experience{}, err
	}
	exp, err := c.storage.Experience(ctx, id)
	if err != nil {
		return domain.Experience{}, err
	}
	setIf(&exp.Role, trimPtr(patch.Role))
	setIf(&exp.Company, trimPtr(patch.Company))
	setNullable(&exp.Location, patch.Location)
	setIf(&exp.StartDate, patch.StartDate)
	setNullable(&exp.EndDate, patch.EndDate)
	setIf(&exp.IsCurrent, patch.IsCurrent)
	setIf(&exp.Summary, patch.Summary)
	setIf(&exp.Highlights, patch.Highlights)
	setIf(&exp.TechStack, patch.TechStack)
	setIf(&exp.SortOrder, patch.SortOrder)
	if err := checkExperienceDates(exp); err != nil {
		return domain.Experience{}, err
	}
	return c.storage.UpdateExperience(ctx, exp)
}

func (c *Content) DeleteExperience(ctx context.Context, id domain.ContentId) error {
	return c.storage.DeleteExperience(ctx, id)
}

// YYYY-MM strings compare chronologically.
func checkExperienceDates(exp domain.Experience) error {
	if exp.EndDate == nil {
		return nil
	}
	if !utils.IsYearMonth(*exp.EndDate) {
		return errors.Validation("Field endDate failed yearmonth validation")
	}
	if *exp.EndDate < exp.StartDate {
		return errors.Validation("End date is before start date")
	}
	return nil
}

// =========================================================================
// Services
// =========================================================================

func (c *Content) Services(ctx context.Context) ([]domain.Service, error) {
	return c.storage.ListServices(ctx)
}

func (c *Content) CreateService(ctx context.Context, req api.CreateServiceRequest) (domain.Service, error) {
	if err := utils.Validate(req); err != nil {
		return domain.Service{}, err
	}
	return c.storage.CreateService(ctx, domain.Service{
		Name:                strings.TrimSpace(req.Name),
		Summary:             req.Summary,
		Description:         req.Description,
		Deliverables:        nonNil(req.Deliverables),
		Process:             nonNil(req.Process),
		Icon:                req.Icon,
		RelatedPortfolioIds: nonNil(req.RelatedPortfolioIds),
		SortOrder:           req.SortOrder,
	})
}

func (c *Content) PatchService(ctx context.Context, id domain.ContentId, patch api.ServicePatch) (domain.Service, error) {
	if err := utils.Validate(patch); err != nil {
		return domain.Service{}, err
	}
	svc, err := c.storage.Service(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	setIf(&svc.Name, trimPtr(patch.Name))
	setIf(&svc.Summary, patch.Summary)
	setNullable(&svc.Description, patch.Description)
	setIf(&svc.Deliverables, patch.Deliverables)
	setIf(&svc.Process, patch.Process)
	setNullable(&svc.Icon, patch.Icon)
	setIf(&svc.RelatedPortfolioIds, patch.RelatedPortfolioIds)
	setIf(&svc.SortOrder, patch.SortOrder)
	return c.storage.UpdateService(ctx, svc)
}

func (c *Content) DeleteService(ctx context.Context, id domain.ContentId) error {
	return c.storage.DeleteService(ctx, id)
}

// =========================================================================
// Helpers
// =========================================================================

func (c *Content) render(source *string) string {
	html, err := c.markdown.RenderPtr(source)
	if err != nil {
		logger.Log.Error("markdown render failed", "error", err)
		return ""
	}
	return html
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setNullable applies a present member; an explicit null clears the field.
func setNullable(dst **string, v api.NullableString) {
	if !v.Set {
		return
	}
	if v.Value == nil {
		*dst = nil
		return
	}
	s := *v.Value
	*dst = &s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
