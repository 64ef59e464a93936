package pg

import (
	"context"
	"strings"

	"github.com/folio-cms/folio/shared/domain"
	internal_errors "github.com/folio-cms/folio/shared/errors"
	"github.com/lib/pq"
)

const portfolioColumns = `id, slug, title, summary, cover_image_url, problem, solution, impact, tags, tech_stack, links, status, sort_order, created_at, updated_at`

func scanPortfolioItem(p *domain.PortfolioItem) func(rowScanner) error {
	return func(row rowScanner) error {
		if err := row.Scan(&p.Id, &p.Slug, &p.Title, &p.Summary, &p.CoverImageURL, &p.Problem, &p.Solution,
			pq.Array(&p.Impact), pq.Array(&p.Tags), pq.Array(&p.TechStack), jsonLinks{&p.Links},
			&p.Status, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		return nil
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Storage) ListPortfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	var pattern *string
	if filter.Query != nil {
		p := "%" + likeEscaper.Replace(*filter.Query) + "%"
		pattern = &p
	}
	return list(ctx, s, scanPortfolioItem, `
		SELECT `+portfolioColumns+` FROM portfolio_items
		WHERE ($1 OR status = 'published')
		  AND ($2::text IS NULL OR $2 = ANY(tags))
		  AND ($3::text IS NULL OR $3 = ANY(tech_stack))
		  AND ($4::text IS NULL OR title ILIKE $4 OR summary ILIKE $4)
		ORDER BY sort_order, created_at`,
		filter.IncludeDrafts, filter.Tag, filter.Tech, pattern)
}

func (s *Storage) PortfolioItem(ctx context.Context, id domain.ContentId) (domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	if !validId(id) {
		return item, internal_errors.NotFound("Portfolio item not found")
	}
	err := s.get(ctx, "Portfolio item not found", scanPortfolioItem(&item),
		`SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = $1`, id)
	return item, err
}

func (s *Storage) PortfolioItemBySlug(ctx context.Context, slug domain.Slug) (domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	err := s.get(ctx, "Portfolio item not found", scanPortfolioItem(&item),
		`SELECT `+portfolioColumns+` FROM portfolio_items WHERE slug = $1`, slug)
	return item, err
}

func (s *Storage) CreatePortfolioItem(ctx context.Context, item domain.PortfolioItem) (domain.PortfolioItem, error) {
	var saved domain.PortfolioItem
	err := s.write(ctx, "Portfolio item not found", scanPortfolioItem(&saved), `
		INSERT INTO portfolio_items (slug, title, summary, cover_image_url, problem, solution, impact, tags, tech_stack, links, status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING `+portfolioColumns,
		item.Slug, item.Title, item.Summary, item.CoverImageURL, item.Problem, item.Solution,
		textArray(item.Impact), textArray(item.Tags), textArray(item.TechStack), jsonLinks{&item.Links},
		item.Status, item.SortOrder)
	return saved, err
}

func (s *Storage) UpdatePortfolioItem(ctx context.Context, item domain.PortfolioItem) (domain.PortfolioItem, error) {
	var saved domain.PortfolioItem
	if !validId(item.Id) {
		return saved, internal_errors.NotFound("Portfolio item not found")
	}
	err := s.write(ctx, "Portfolio item not found", scanPortfolioItem(&saved), `
		UPDATE portfolio_items SET slug = $2, title = $3, summary = $4, cover_image_url = $5, problem = $6,
			solution = $7, impact = $8, tags = $9, tech_stack = $10, links = $11, status = $12, sort_order = $13,
			updated_at = now()
		WHERE id = $1 RETURNING `+portfolioColumns,
		item.Id, item.Slug, item.Title, item.Summary, item.CoverImageURL, item.Problem, item.Solution,
		textArray(item.Impact), textArray(item.Tags), textArray(item.TechStack), jsonLinks{&item.Links},
		item.Status, item.SortOrder)
	return saved, err
}

func (s *Storage) DeletePortfolioItem(ctx context.Context, id domain.ContentId) error {
	return s.deleteById(ctx, "portfolio_items", "Portfolio item not found", id)
}

// =========================================================================
// Resume export settings
// =========================================================================

const resumeSettingsColumns = `id, show_header, show_summary, show_experiences, show_skills, show_projects,
	show_contact, show_email, show_phone, contact_email, contact_phone, updated_at`

func scanResumeSettings(r *domain.ResumeExportSettings) func(rowScanner) error {
	return func(row rowScanner) error {
		if err := row.Scan(&r.Id, &r.ShowHeader, &r.ShowSummary, &r.ShowExperiences, &r.ShowSkills, &r.ShowProjects,
			&r.ShowContact, &r.ShowEmail, &r.ShowPhone, &r.ContactEmail, &r.ContactPhone, &r.UpdatedAt); err != nil {
			return err
		}
		r.UpdatedAt = r.UpdatedAt.UTC()
		return nil
	}
}

func (s *Storage) ResumeSettings(ctx context.Context) (domain.ResumeExportSettings, error) {
	var settings domain.ResumeExportSettings
	err := s.get(ctx, "Resume settings not found", scanResumeSettings(&settings),
		`SELECT `+resumeSettingsColumns+` FROM resume_settings LIMIT 1`)
	return settings, err
}

func (s *Storage) SaveResumeSettings(ctx context.Context, r domain.ResumeExportSettings) (domain.ResumeExportSettings, error) {
	var saved domain.ResumeExportSettings
	err := s.write(ctx, "Resume settings not found", scanResumeSettings(&saved), `
		INSERT INTO resume_settings (show_header, show_summary, show_experiences, show_skills, show_projects,
			show_contact, show_email, show_phone, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (singleton) DO UPDATE SET
			show_header = EXCLUDED.show_header, show_summary = EXCLUDED.show_summary,
			show_experiences = EXCLUDED.show_experiences, show_skills = EXCLUDED.show_skills,
			show_projects = EXCLUDED.show_projects, show_contact = EXCLUDED.show_contact,
			show_email = EXCLUDED.show_email, show_phone = EXCLUDED.show_phone,
			contact_email = EXCLUDED.contact_email, contact_phone = EXCLUDED.contact_phone,
			updated_at = now()
		RETURNING `+resumeSettingsColumns,
		r.ShowHeader, r.ShowSummary, r.ShowExperiences, r.ShowSkills, r.ShowProjects,
		r.ShowContact, r.ShowEmail, r.ShowPhone, r.ContactEmail, r.ContactPhone)
	return saved, err
}
