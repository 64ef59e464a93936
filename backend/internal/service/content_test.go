package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/backend/internal/storage/memory"
	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContent() *service.Content {
	return service.NewContent(memory.New(), markdown.New())
}

func ptr[T any](v T) *T { return &v }

func TestAbout(t *testing.T) {
	ctx := context.Background()
	c := newContent()

	empty, err := c.About(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Headline)
	assert.NotNil(t, empty.Links)
	assert.NotNil(t, empty.Highlights)

	_, err = c.SaveAbout(ctx, api.AboutRequest{Headline: ""})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	_, err = c.SaveAbout(ctx, api.AboutRequest{Headline: "x", Links: []domain.Link{{Label: "bad", URL: "not a url"}}})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	saved, err := c.SaveAbout(ctx, api.AboutRequest{
		Headline:    "  Backend engineer ",
		Subheadline: "Jane Doe · Berlin",
		Bio:         ptr("I build **reliable** services.<script>alert(1)</script>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", saved.Headline)
	assert.Contains(t, saved.BioHTML, "<strong>reliable</strong>")
	assert.NotContains(t, saved.BioHTML, "<script>")

	got, err := c.About(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.BioHTML, got.BioHTML, "html is rendered on every read")
}

func TestSkills(t *testing.T) {
	ctx := context.Background()
	c := newContent()

	goSkill, err := c.CreateSkill(ctx, api.CreateSkillRequest{Name: " Go ", Category: "backend", SortOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, "Go", goSkill.Name)
	assert.Equal(t, domain.DefaultSkillLevel, goSkill.Level)
	assert.NotNil(t, goSkill.Tags)

	_, err = c.CreateSkill(ctx, api.CreateSkillRequest{Name: "Vue", Category: "frontend", Level: ptr(5)})
	require.NoError(t, err)

	_, err = c.CreateSkill(ctx, api.CreateSkillRequest{Name: "x", Category: "cooking"})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	_, err = c.CreateSkill(ctx, api.CreateSkillRequest{Name: "x", Category: "tools", Level: ptr(6)})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	backend := "backend"
	filtered, err := c.Skills(ctx, domain.SkillFilter{Category: &backend})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	unknown := "cooking"
	_, err = c.Skills(ctx, domain.SkillFilter{Category: &unknown})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	patched, err := c.PatchSkill(ctx, goSkill.Id, api.SkillPatch{Level: ptr(4), Tags: &[]string{"lang"}})
	require.NoError(t, err)
	assert.Equal(t, 4, patched.Level)
	assert.Equal(t, "Go", patched.Name, "absent members are untouched")
	assert.Equal(t, []string{"lang"}, patched.Tags)

	_, err = c.PatchSkill(ctx, "missing", api.SkillPatch{Level: ptr(2)})
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, c.DeleteSkill(ctx, goSkill.Id))
	all, err := c.Skills(ctx, domain.SkillFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExperiences(t *testing.T) {
	ctx := context.Background()
	c := newContent()

	_, err := c.CreateExperience(ctx, api.CreateExperienceRequest{Role: "Dev", Company: "Acme", StartDate: "2024-13"})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	_, err = c.CreateExperience(ctx, api.CreateExperienceRequest{
		Role: "Dev", Company: "Acme", StartDate: "2022-05", EndDate: ptr("2021-01"),
	})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err), "end before start")

	exp, err := c.CreateExperience(ctx, api.CreateExperienceRequest{
		Role: "Dev", Company: "Acme", StartDate: "2020-01", EndDate: ptr("2022-12"),
	})
	require.NoError(t, err)

	patched, err := c.PatchExperience(ctx, exp.Id, api.ExperiencePatch{EndDate: api.Null(), IsCurrent: ptr(true)})
	require.NoError(t, err)
	assert.Nil(t, patched.EndDate)
	assert.True(t, patched.IsCurrent)

	_, err = c.PatchExperience(ctx, exp.Id, api.ExperiencePatch{EndDate: api.NewNullableString("2019-01")})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	_, err = c.PatchExperience(ctx, exp.Id, api.ExperiencePatch{EndDate: api.NewNullableString("soon")})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	list, err := c.Experiences(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].EndDate, "failed patches are not persisted")
}

func TestServices(t *testing.T) {
	ctx := context.Background()
	c := newContent()

	_, err := c.CreateService(ctx, api.CreateServiceRequest{Name: "Audit", Summary: "x", RelatedPortfolioIds: []string{"nope"}})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	svc, err := c.CreateService(ctx, api.CreateServiceRequest{Name: "Audit", Summary: "Code review", Icon: ptr("search")})
	require.NoError(t, err)
	assert.NotNil(t, svc.Deliverables)

	patched, err := c.PatchService(ctx, svc.Id, api.ServicePatch{Icon: api.Null(), Description: api.NewNullableString("Deep dive")})
	require.NoError(t, err)
	assert.Nil(t, patched.Icon)
	require.NotNil(t, patched.Description)
	assert.Equal(t, "Deep dive", *patched.Description)

	require.NoError(t, c.DeleteService(ctx, svc.Id))
	assert.True(t, errors.IsNotFound(c.DeleteService(ctx, svc.Id)))
}

func TestPortfolio(t *testing.T) {
	ctx := context.Background()
	c := newContent()

	draft, err := c.CreatePortfolioItem(ctx, api.CreatePortfolioItemRequest{Slug: "wip", Title: "WIP", Summary: "later"})
	require.NoError(t, err)
	assert.Equal(t, domain.PortfolioDraft, draft.Status, "status defaults to draft")

	pub, err := c.CreatePortfolioItem(ctx, api.CreatePortfolioItemRequest{
		Slug: "shop", Title: "Shop", Summary: "E-commerce", Status: domain.PortfolioPublished,
		Problem: ptr("Slow *checkout*"), Tags: []string{"web"}, TechStack: []string{"Go"},
	})
	require.NoError(t, err)
	assert.Contains(t, pub.ProblemHTML, "<em>checkout</em>")
	assert.Empty(t, pub.SolutionHTML)

	_, err = c.CreatePortfolioItem(ctx, api.CreatePortfolioItemRequest{Slug: "Bad Slug", Title: "x", Summary: "x"})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	_, err = c.CreatePortfolioItem(ctx, api.CreatePortfolioItemRequest{Slug: "shop", Title: "x", Summary: "x"})
	assert.Equal(t, errors.KindConflict, errors.KindOf(err))

	public, err := c.Portfolio(ctx, domain.PortfolioFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "shop", public[0].Slug)

	blank := "  "
	all, err := c.Portfolio(ctx, domain.PortfolioFilter{IncludeDrafts: true, Tag: &blank})
	require.NoError(t, err)
	assert.Len(t, all, 2, "blank filters are ignored")

	_, err = c.PortfolioItem(ctx, "wip", false)
	assert.True(t, errors.IsNotFound(err), "drafts are hidden from public readers")
	got, err := c.PortfolioItem(ctx, "wip", true)
	require.NoError(t, err)
	assert.Equal(t, draft.Id, got.Id)

	published, err := c.PatchPortfolioItem(ctx, draft.Id, api.PortfolioItemPatch{
		Status:   ptr(domain.PortfolioPublished),
		Solution: api.NewNullableString("Rewrote it in **Go**"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PortfolioPublished, published.Status)
	assert.True(t, strings.Contains(published.SolutionHTML, "<strong>Go</strong>"))

	_, err = c.PatchPortfolioItem(ctx, draft.Id, api.PortfolioItemPatch{Links: &[]domain.Link{{Label: "", URL: "https://x.io"}}})
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))

	require.NoError(t, c.DeletePortfolioItem(ctx, draft.Id))
	_, err = c.PortfolioItem(ctx, "wip", true)
	assert.True(t, errors.IsNotFound(err))
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	c := newContent()

	settings, err := c.ResumeSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultResumeExportSettings(), settings)

	_, err = c.SaveAbout(ctx, api.AboutRequest{
		Headline:    "Backend engineer",
		Subheadline: "Jane Doe · Berlin",
		Bio:         ptr("Ten years of Go."),
		Links:       []domain.Link{{Label: "GitHub", URL: "https://github.com/jane"}},
	})
	require.NoError(t, err)
	_, err = c.CreateSkill(ctx, api.CreateSkillRequest{Name: "Go", Category: "backend"})
	require.NoError(t, err)
	_, err = c.CreatePortfolioItem(ctx, api.CreatePortfolioItemRequest{Slug: "hidden", Title: "x", Summary: "x"})
	require.NoError(t, err)
	_, err = c.CreatePortfolioItem(ctx, api.CreatePortfolioItemRequest{Slug: "shown", Title: "y", Summary: "y", Status: domain.PortfolioPublished})
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		resume, err := c.Resume(ctx)
		require.NoError(t, err)
		require.NotNil(t, resume.Header)
		assert.Equal(t, "Jane Doe", resume.Header.FullName)
		assert.Equal(t, "Backend engineer", resume.Header.Title)
		require.NotNil(t, resume.Header.Location)
		assert.Equal(t, "Berlin", *resume.Header.Location)
		assert.Len(t, resume.Header.Links, 1)
		require.NotNil(t, resume.Summary)
		assert.Len(t, resume.Skills, 1)
		require.Len(t, resume.Projects, 1)
		assert.Equal(t, "shown", resume.Projects[0].Slug)
		assert.Nil(t, resume.Contact, "contact needs an email or phone")
		assert.False(t, resume.GeneratedAt.IsZero())
	})

	t.Run("sections switched off", func(t *testing.T) {
		_, err := c.PatchResumeSettings(ctx, api.ResumeSettingsPatch{
			ShowSkills:   ptr(false),
			ShowProjects: ptr(false),
			ShowEmail:    ptr(true),
			ContactEmail: api.NewNullableString("jane@example.com"),
			ContactPhone: api.NewNullableString("+49 000"),
		})
		require.NoError(t, err)

		resume, err := c.Resume(ctx)
		require.NoError(t, err)
		assert.Nil(t, resume.Skills)
		assert.Nil(t, resume.Projects)
		require.NotNil(t, resume.Contact)
		require.NotNil(t, resume.Contact.Email)
		assert.Equal(t, "jane@example.com", *resume.Contact.Email)
		assert.Nil(t, resume.Contact.Phone, "phone stays hidden until showPhone")
	})

	t.Run("settings persist", func(t *testing.T) {
		settings, err := c.ResumeSettings(ctx)
		require.NoError(t, err)
		assert.False(t, settings.ShowSkills)
		assert.True(t, settings.ShowExperiences)
		require.NotNil(t, settings.ContactPhone)

		settings, err = c.PatchResumeSettings(ctx, api.ResumeSettingsPatch{ContactPhone: api.Null()})
		require.NoError(t, err)
		assert.Nil(t, settings.ContactPhone)
	})
}

func TestResumeHeaderWithoutSeparator(t *testing.T) {
	ctx := context.Background()
	c := newContent()
	_, err := c.SaveAbout(ctx, api.AboutRequest{Headline: "Designer"})
	require.NoError(t, err)

	resume, err := c.Resume(ctx)
	require.NoError(t, err)
	require.NotNil(t, resume.Header)
	assert.Equal(t, "Designer", resume.Header.FullName)
	assert.Nil(t, resume.Header.Location)
}
