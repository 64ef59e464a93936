package pg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/folio-cms/folio/shared/domain"
	internal_errors "github.com/folio-cms/folio/shared/errors"
	sharedpg "github.com/folio-cms/folio/shared/storage/pg"
	"github.com/lib/pq"
)

// jsonLinks maps a links slice to a jsonb column.
type jsonLinks struct {
	links *domain.Links
}

func (j jsonLinks) Value() (driver.Value, error) {
	if j.links == nil || *j.links == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(*j.links)
}

func (j jsonLinks) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*j.links = domain.Links{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported links type %T", src)
	}
	links := domain.Links{}
	if err := json.Unmarshal(raw, &links); err != nil {
		return fmt.Errorf("failed to decode links: %w", err)
	}
	*j.links = links
	return nil
}

// get runs a single-row query inside the timeout.
func (s *Storage) get(ctx context.Context, notFound string, scan func(rowScanner) error, query string, args ...any) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	err := scan(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound(notFound)
		}
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

// write runs a single-row statement in a transaction and maps constraint errors.
func (s *Storage) write(ctx context.Context, notFound string, scan func(rowScanner) error, query string, args ...any) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		err := scan(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return mapWriteError(err, notFound)
		}
		return nil
	})
}

func (s *Storage) deleteById(ctx context.Context, table, notFound string, id domain.ContentId) error {
	if !validId(id) {
		return internal_errors.NotFound(notFound)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(table)+" WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for %s deletion: %w", table, err)
		}
		if n == 0 {
			return internal_errors.NotFound(notFound)
		}
		return nil
	})
}

func mapWriteError(err error, notFound string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return internal_errors.NotFound(notFound)
	case sharedpg.IsUniqueViolation(err):
		return internal_errors.Conflict("Slug already exists")
	case sharedpg.IsCheckViolation(err):
		return internal_errors.Validation("Value violates a constraint")
	default:
		return fmt.Errorf("write failed: %w", err)
	}
}

// =========================================================================
// About
// =========================================================================

const aboutColumns = `id, headline, subheadline, bio, highlights, links, avatar_url, updated_at`

func scanAbout(a *domain.About) func(rowScanner) error {
	return func(row rowScanner) error {
		if err := row.Scan(&a.Id, &a.Headline, &a.Subheadline, &a.Bio, pq.Array(&a.Highlights),
			jsonLinks{&a.Links}, &a.AvatarURL, &a.UpdatedAt); err != nil {
			return err
		}
		a.UpdatedAt = a.UpdatedAt.UTC()
		return nil
	}
}

func (s *Storage) About(ctx context.Context) (domain.About, error) {
	var about domain.About
	err := s.get(ctx, "About not found", scanAbout(&about), `SELECT `+aboutColumns+` FROM about LIMIT 1`)
	return about, err
}

func (s *Storage) SaveAbout(ctx context.Context, about domain.About) (domain.About, error) {
	var saved domain.About
	err := s.write(ctx, "About not found", scanAbout(&saved), `
		INSERT INTO about (headline, subheadline, bio, highlights, links, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (singleton) DO UPDATE SET
			headline = EXCLUDED.headline, subheadline = EXCLUDED.subheadline, bio = EXCLUDED.bio,
			highlights = EXCLUDED.highlights, links = EXCLUDED.links, avatar_url = EXCLUDED.avatar_url,
			updated_at = now()
		RETURNING `+aboutColumns,
		about.Headline, about.Subheadline, about.Bio, textArray(about.Highlights), jsonLinks{&about.Links}, about.AvatarURL)
	return saved, err
}

// =========================================================================
// Skills
// =========================================================================

const skillColumns = `id, name, category, level, tags, sort_order, updated_at`

func scanSkill(sk *domain.Skill) func(rowScanner) error {
	return func(row rowScanner) error {
		if err := row.Scan(&sk.Id, &sk.Name, &sk.Category, &sk.Level, pq.Array(&sk.Tags), &sk.SortOrder, &sk.UpdatedAt); err != nil {
			return err
		}
		sk.UpdatedAt = sk.UpdatedAt.UTC()
		return nil
	}
}

func (s *Storage) ListSkills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error) {
	return list(ctx, s, scanSkill,
		`SELECT `+skillColumns+` FROM skills WHERE ($1::text IS NULL OR category = $1) ORDER BY sort_order, created_at`,
		filter.Category)
}

func (s *Storage) Skill(ctx context.Context, id domain.ContentId) (domain.Skill, error) {
	var skill domain.Skill
	if !validId(id) {
		return skill, internal_errors.NotFound("Skill not found")
	}
	err := s.get(ctx, "Skill not found", scanSkill(&skill), `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	return skill, err
}

func (s *Storage) CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	var saved domain.Skill
	err := s.write(ctx, "Skill not found", scanSkill(&saved),
		`INSERT INTO skills (name, category, level, tags, sort_order) VALUES ($1, $2, $3, $4, $5) RETURNING `+skillColumns,
		skill.Name, skill.Category, skill.Level, textArray(skill.Tags), skill.SortOrder)
	return saved, err
}

func (s *Storage) UpdateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	var saved domain.Skill
	if !validId(skill.Id) {
		return saved, internal_errors.NotFound("Skill not found")
	}
	err := s.write(ctx, "Skill not found", scanSkill(&saved), `
		UPDATE skills SET name = $2, category = $3, level = $4, tags = $5, sort_order = $6, updated_at = now()
		WHERE id = $1 RETURNING `+skillColumns,
		skill.Id, skill.Name, skill.Category, skill.Level, textArray(skill.Tags), skill.SortOrder)
	return saved, err
}

func (s *Storage) DeleteSkill(ctx context.Context, id domain.ContentId) error {
	return s.deleteById(ctx, "skills", "Skill not found", id)
}

// =========================================================================
// Experiences
// =========================================================================

const experienceColumns = `id, role, company, location, start_date, end_date, is_current, summary, highlights, tech_stack, sort_order, updated_at`

func scanExperience(e *domain.Experience) func(rowScanner) error {
	return func(row rowScanner) error {
		if err := row.Scan(&e.Id, &e.Role, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent,
			&e.Summary, pq.Array(&e.Highlights), pq.Array(&e.TechStack), &e.SortOrder, &e.UpdatedAt); err != nil {
			return err
		}
		e.UpdatedAt = e.UpdatedAt.UTC()
		return nil
	}
}

func (s *Storage) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	return list(ctx, s, scanExperience, `SELECT `+experienceColumns+` FROM experiences ORDER BY sort_order, created_at`)
}

func (s *Storage) Experience(ctx context.Context, id domain.ContentId) (domain.Experience, error) {
	var exp domain.Experience
	if !validId(id) {
		return exp, internal_errors.NotFound("Experience not found")
	}
	err := s.get(ctx, "Experience not found", scanExperience(&exp), `SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id)
	return exp, err
}

func (s *Storage) CreateExperience(ctx context.Context, exp domain.Experience) (domain.Experience, error) {
	var saved domain.Experience
	err := s.write(ctx, "Experience not found", scanExperience(&saved), `
		INSERT INTO experiences (role, company, location, start_date, end_date, is_current, summary, highlights, tech_stack, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING `+experienceColumns,
		exp.Role, exp.Company, exp.Location, exp.StartDate, exp.EndDate, exp.IsCurrent, exp.Summary,
		textArray(exp.Highlights), textArray(exp.TechStack), exp.SortOrder)
	return saved, err
}

func (s *Storage) UpdateExperience(ctx context.Context, exp domain.Experience) (domain.Experience, error) {
	var saved domain.Experience
	if !validId(exp.Id) {
		return saved, internal_errors.NotFound("Experience not found")
	}
	err := s.write(ctx, "Experience not found", scanExperience(&saved), `
		UPDATE experiences SET role = $2, company = $3, location = $4, start_date = $5, end_date = $6,
			is_current = $7, summary = $8, highlights = $9, tech_stack = $10, sort_order = $11, updated_at = now()
		WHERE id = $1 RETURNING `+experienceColumns,
		exp.Id, exp.Role, exp.Company, exp.Location, exp.StartDate, exp.EndDate, exp.IsCurrent, exp.Summary,
		textArray(exp.Highlights), textArray(exp.TechStack), exp.SortOrder)
	return saved, err
}

func (s *Storage) DeleteExperience(ctx context.Context, id domain.ContentId) error {
	return s.deleteById(ctx, "experiences", "Experience not found", id)
}

// =========================================================================
// Services
// =========================================================================

const serviceColumns = `id, name, summary, description, deliverables, process, icon, related_portfolio_ids, sort_order, updated_at`

func scanService(sv *domain.Service) func(rowScanner) error {
	return func(row rowScanner) error {
		if err := row.Scan(&sv.Id, &sv.Name, &sv.Summary, &sv.Description, pq.Array(&sv.Deliverables),
			pq.Array(&sv.Process), &sv.Icon, pq.Array(&sv.RelatedPortfolioIds), &sv.SortOrder, &sv.UpdatedAt); err != nil {
			return err
		}
		sv.UpdatedAt = sv.UpdatedAt.UTC()
		return nil
	}
}

func (s *Storage) ListServices(ctx context.Context) ([]domain.Service, error) {
	return list(ctx, s, scanService, `SELECT `+serviceColumns+` FROM services ORDER BY sort_order, created_at`)
}

func (s *Storage) Service(ctx context.Context, id domain.ContentId) (domain.Service, error) {
	var svc domain.Service
	if !validId(id) {
		return svc, internal_errors.NotFound("Service not found")
	}
	err := s.get(ctx, "Service not found", scanService(&svc), `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	return svc, err
}

func (s *Storage) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	var saved domain.Service
	err := s.write(ctx, "Service not found", scanService(&saved), `
		INSERT INTO services (name, summary, description, deliverables, process, icon, related_portfolio_ids, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+serviceColumns,
		svc.Name, svc.Summary, svc.Description, textArray(svc.Deliverables), textArray(svc.Process), svc.Icon,
		textArray(svc.RelatedPortfolioIds), svc.SortOrder)
	return saved, err
}

func (s *Storage) UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	var saved domain.Service
	if !validId(svc.Id) {
		return saved, internal_errors.NotFound("Service not found")
	}
	err := s.write(ctx, "Service not found", scanService(&saved), `
		UPDATE services SET name = $2, summary = $3, description = $4, deliverables = $5, process = $6,
			icon = $7, related_portfolio_ids = $8, sort_order = $9, updated_at = now()
		WHERE id = $1 RETURNING `+serviceColumns,
		svc.Id, svc.Name, svc.Summary, svc.Description, textArray(svc.Deliverables), textArray(svc.Process), svc.Icon,
		textArray(svc.RelatedPortfolioIds), svc.SortOrder)
	return saved, err
}

func (s *Storage) DeleteService(ctx context.Context, id domain.ContentId) error {
	return s.deleteById(ctx, "services", "Service not found", id)
}

// list scans every row with a fresh value from newScan.
func list[T any](ctx context.Context, s *Storage, newScan func(*T) func(rowScanner) error, query string, args ...any) ([]T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := newScan(&v)(rows); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failed: %w", err)
	}
	return out, nil
}

// textArray never sends NULL for a nil slice; the array columns are NOT NULL.
func textArray(s []string) any {
	if s == nil {
		s = []string{}
	}
	return pq.Array(s)
}
