package service

import (
	"context"
	"strings"
	"time"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
)

// ResumeSettings returns defaults until settings are saved.
func (c *Content) ResumeSettings(ctx context.Context) (domain.ResumeExportSettings, error) {
	settings, err := c.storage.ResumeSettings(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.DefaultResumeExportSettings(), nil
		}
		return domain.ResumeExportSettings{}, err
	}
	return settings, nil
}

func (c *Content) PatchResumeSettings(ctx context.Context, patch api.ResumeSettingsPatch) (domain.ResumeExportSettings, error) {
	settings, err := c.ResumeSettings(ctx)
	if err != nil {
		return domain.ResumeExportSettings{}, err
	}
	setIf(&settings.ShowHeader, patch.ShowHeader)
	setIf(&settings.ShowSummary, patch.ShowSummary)
	setIf(&settings.ShowExperiences, patch.ShowExperiences)
	setIf(&settings.ShowSkills, patch.ShowSkills)
	setIf(&settings.ShowProjects, patch.ShowProjects)
	setIf(&settings.ShowContact, patch.ShowContact)
	setIf(&settings.ShowEmail, patch.ShowEmail)
	setIf(&settings.ShowPhone, patch.ShowPhone)
	setNullable(&settings.ContactEmail, patch.ContactEmail)
	setNullable(&settings.ContactPhone, patch.ContactPhone)
	return c.storage.SaveResumeSettings(ctx, settings)
}

// Resume assembles the export document. Sections switched off in the settings are omitted,
// and only published projects are listed.
func (c *Content) Resume(ctx context.Context) (domain.Resume, error) {
	settings, err := c.ResumeSettings(ctx)
	if err != nil {
		return domain.Resume{}, err
	}
	resume := domain.Resume{GeneratedAt: time.Now().UTC()}

	if settings.ShowHeader || settings.ShowSummary {
		about, err := c.About(ctx)
		if err != nil {
			return domain.Resume{}, err
		}
		if settings.ShowHeader {
			resume.Header = resumeHeader(about)
		}
		if settings.ShowSummary && about.Bio != nil {
			resume.Summary = about.Bio
		}
	}

	if settings.ShowExperiences {
		if resume.Experiences, err = c.storage.ListExperiences(ctx); err != nil {
			return domain.Resume{}, err
		}
	}
	if settings.ShowSkills {
		if resume.Skills, err = c.storage.ListSkills(ctx, domain.SkillFilter{}); err != nil {
			return domain.Resume{}, err
		}
	}
	if settings.ShowProjects {
		if resume.Projects, err = c.Portfolio(ctx, domain.PortfolioFilter{}); err != nil {
			return domain.Resume{}, err
		}
	}
	if settings.ShowContact {
		contact := &domain.ResumeContact{}
		if settings.ShowEmail {
			contact.Email = settings.ContactEmail
		}
		if settings.ShowPhone {
			contact.Phone = settings.ContactPhone
		}
		if contact.Email != nil || contact.Phone != nil {
			resume.Contact = contact
		}
	}
	return resume, nil
}

// resumeHeader reads "Full Name · Location" out of the subheadline.
func resumeHeader(about domain.About) *domain.ResumeHeader {
	header := &domain.ResumeHeader{FullName: about.Headline, Title: about.Headline, Links: about.Links}
	parts := strings.SplitN(about.Subheadline, "·", 2)
	if name := strings.TrimSpace(parts[0]); name != "" {
		header.FullName = name
	}
	if len(parts) == 2 {
		if location := strings.TrimSpace(parts[1]); location != "" {
			header.Location = &location
		}
	}
	return header
}
