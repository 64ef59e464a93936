package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/google/uuid"
)

func (s *Storage) About(ctx context.Context) (domain.About, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.about == nil {
		return domain.About{}, errors.NotFound("About not found")
	}
	return *s.about, nil
}

func (s *Storage) SaveAbout(ctx context.Context, about domain.About) (domain.About, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	about.Id = uuid.NewString()
	if s.about != nil {
		about.Id = s.about.Id
	}
	about.UpdatedAt, _ = s.stamp()
	s.about = &about
	return about, nil
}

func (s *Storage) ListSkills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skills.list(func(skill domain.Skill) bool {
		return filter.Category == nil || skill.Category == *filter.Category
	}), nil
}

func (s *Storage) Skill(ctx context.Context, id domain.ContentId) (domain.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skills.get(id)
}

func (s *Storage) CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, seq := s.stamp()
	return s.skills.create(skill, now, seq), nil
}

func (s *Storage) UpdateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.stamp()
	return s.skills.update(skill, now)
}

func (s *Storage) DeleteSkill(ctx context.Context, id domain.ContentId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skills.delete(id)
}

func (s *Storage) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.experiences.list(nil), nil
}

func (s *Storage) Experience(ctx context.Context, id domain.ContentId) (domain.Experience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.experiences.get(id)
}

func (s *Storage) CreateExperience(ctx context.Context, exp domain.Experience) (domain.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, seq := s.stamp()
	return s.experiences.create(exp, now, seq), nil
}

func (s *Storage) UpdateExperience(ctx context.Context, exp domain.Experience) (domain.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.stamp()
	return s.experiences.update(exp, now)
}

func (s *Storage) DeleteExperience(ctx context.Context, id domain.ContentId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.experiences.delete(id)
}

func (s *Storage) ListServices(ctx context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services.list(nil), nil
}

func (s *Storage) Service(ctx context.Context, id domain.ContentId) (domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services.get(id)
}

func (s *Storage) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, seq := s.stamp()
	return s.services.create(svc, now, seq), nil
}

func (s *Storage) UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.stamp()
	return s.services.update(svc, now)
}

func (s *Storage) DeleteService(ctx context.Context, id domain.ContentId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services.delete(id)
}

func (s *Storage) ListPortfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio.list(func(item domain.PortfolioItem) bool {
		return matchPortfolio(item, filter)
	}), nil
}

func matchPortfolio(item domain.PortfolioItem, filter domain.PortfolioFilter) bool {
	if !filter.IncludeDrafts && item.Status != domain.PortfolioPublished {
		return false
	}
	if filter.Tag != nil && !slices.Contains(item.Tags, *filter.Tag) {
		return false
	}
	if filter.Tech != nil && !slices.Contains(item.TechStack, *filter.Tech) {
		return false
	}
	if filter.Query != nil {
		q := strings.ToLower(*filter.Query)
		if !strings.Contains(strings.ToLower(item.Title), q) && !strings.Contains(strings.ToLower(item.Summary), q) {
			return false
		}
	}
	return true
}

func (s *Storage) PortfolioItem(ctx context.Context, id domain.ContentId) (domain.PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio.get(id)
}

func (s *Storage) PortfolioItemBySlug(ctx context.Context, slug domain.Slug) (domain.PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.portfolio.find(func(item domain.PortfolioItem) bool { return item.Slug == slug })
	if !ok {
		return domain.PortfolioItem{}, errors.NotFound("Portfolio item not found")
	}
	return item, nil
}

func (s *Storage) CreatePortfolioItem(ctx context.Context, item domain.PortfolioItem) (domain.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(item.Slug, "") {
		return domain.PortfolioItem{}, errors.Conflict("Slug already exists")
	}
	now, seq := s.stamp()
	return s.portfolio.create(item, now, seq), nil
}

func (s *Storage) UpdatePortfolioItem(ctx context.Context, item domain.PortfolioItem) (domain.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(item.Slug, item.Id) {
		return domain.PortfolioItem{}, errors.Conflict("Slug already exists")
	}
	now, _ := s.stamp()
	return s.portfolio.update(item, now)
}

func (s *Storage) DeletePortfolioItem(ctx context.Context, id domain.ContentId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio.delete(id)
}

func (s *Storage) slugTaken(slug domain.Slug, except domain.ContentId) bool {
	_, ok := s.portfolio.find(func(item domain.PortfolioItem) bool {
		return item.Slug == slug && item.Id != except
	})
	return ok
}

func (s *Storage) ResumeSettings(ctx context.Context) (domain.ResumeExportSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.resumeSettings == nil {
		return domain.ResumeExportSettings{}, errors.NotFound("Resume settings not found")
	}
	return *s.resumeSettings, nil
}

func (s *Storage) SaveResumeSettings(ctx context.Context, settings domain.ResumeExportSettings) (domain.ResumeExportSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.Id = uuid.NewString()
	if s.resumeSettings != nil {
		settings.Id = s.resumeSettings.Id
	}
	settings.UpdatedAt, _ = s.stamp()
	s.resumeSettings = &settings
	return settings, nil
}
