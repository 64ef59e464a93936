package memory

import (
	"context"
	"testing"
	"time"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock advances by a second on every read.
func fixedClock() func() time.Time {
	t := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func strPtr(s string) *string { return &s }

func TestMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and list newest first", func(t *testing.T) {
		s := New().WithClock(fixedClock())
		first, err := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "first"})
		require.NoError(t, err)
		second, err := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u2", Title: strPtr("t"), Content: "second"})
		require.NoError(t, err)

		assert.NotEmpty(t, first.Id)
		assert.Equal(t, first.CreatedAt, first.UpdatedAt)
		assert.Nil(t, first.Title)
		assert.Equal(t, "t", *second.Title)

		all, err := s.ListMessages(ctx, domain.MessageFilter{IncludeDeleted: true})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second.Id, all[0].Id)
		assert.Equal(t, first.Id, all[1].Id)
	})

	t.Run("same timestamp keeps insertion order", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		s := New().WithClock(func() time.Time { return now })
		a, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "a"})
		b, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "b"})

		all, err := s.ListMessages(ctx, domain.MessageFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{b.Id, a.Id}, []string{all[0].Id, all[1].Id})
	})

	t.Run("filter by owner and deletion", func(t *testing.T) {
		s := New().WithClock(fixedClock())
		mine, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "mine"})
		gone, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "gone"})
		_, _ = s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u2", Content: "theirs"})
		_, err := s.UpdateMessageFields(ctx, gone.Id, domain.MessageFields{
			Deletion: &domain.Deletion{At: time.Now(), By: "u1"},
		})
		require.NoError(t, err)

		owner := "u1"
		visible, err := s.ListMessages(ctx, domain.MessageFilter{OwnerId: &owner})
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, mine.Id, visible[0].Id)

		withDeleted, err := s.ListMessages(ctx, domain.MessageFilter{OwnerId: &owner, IncludeDeleted: true})
		require.NoError(t, err)
		assert.Len(t, withDeleted, 2)
	})

	t.Run("update bumps updatedAt", func(t *testing.T) {
		s := New().WithClock(fixedClock())
		msg, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "a"})
		content := "b"

		updated, err := s.UpdateMessageFields(ctx, msg.Id, domain.MessageFields{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "b", updated.Content)
		assert.True(t, updated.UpdatedAt.After(msg.UpdatedAt))
		assert.Equal(t, msg.CreatedAt, updated.CreatedAt)
	})

	t.Run("returned rows are detached", func(t *testing.T) {
		s := New()
		msg, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Title: strPtr("t"), Content: "a"})
		*msg.Title = "changed"

		stored, ok := s.GetMessage(msg.Id)
		require.True(t, ok)
		assert.Equal(t, "t", *stored.Title)
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		s := New()
		for _, id := range []string{"not-a-uuid", "6f1c4c3e-2f9e-4a4b-9d59-3c2b9b0a1e11", ""} {
			_, err := s.GetMessageOwnership(ctx, id)
			assert.True(t, errors.IsNotFound(err), id)
			_, err = s.UpdateMessageFields(ctx, id, domain.MessageFields{})
			assert.True(t, errors.IsNotFound(err), id)
			assert.True(t, errors.IsNotFound(s.DeleteMessageRow(ctx, id)), id)
		}
	})

	t.Run("hard delete removes the row", func(t *testing.T) {
		s := New()
		msg, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "a"})
		require.NoError(t, s.DeleteMessageRow(ctx, msg.Id))

		_, ok := s.GetMessage(msg.Id)
		assert.False(t, ok)
		all, _ := s.ListMessages(ctx, domain.MessageFilter{IncludeDeleted: true})
		assert.Empty(t, all)
	})

	t.Run("ownership", func(t *testing.T) {
		s := New()
		msg, _ := s.InsertMessage(ctx, domain.MessageCreationData{OwnerId: "u1", Content: "a"})
		o, err := s.GetMessageOwnership(ctx, msg.Id)
		require.NoError(t, err)
		assert.Equal(t, domain.MessageOwnership{Id: msg.Id, OwnerId: "u1"}, o)
	})
}

func TestUsersAndAdmins(t *testing.T) {
	ctx := context.Background()
	s := New()

	user, err := s.SaveUser(ctx, domain.User{Email: "a@b.io", PassHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.Id)

	_, err = s.SaveUser(ctx, domain.User{Email: "a@b.io"})
	assert.Equal(t, errors.KindConflict, errors.KindOf(err))

	found, err := s.UserByEmail(ctx, "a@b.io")
	require.NoError(t, err)
	assert.Equal(t, user.Id, found.Id)

	_, err = s.UserByEmail(ctx, "missing@b.io")
	assert.True(t, errors.IsNotFound(err))

	admin, err := s.IsAdmin(ctx, user.Id)
	require.NoError(t, err)
	assert.False(t, admin)

	require.NoError(t, s.SetAdmin(ctx, user.Id, true))
	admin, _ = s.IsAdmin(ctx, user.Id)
	assert.True(t, admin)

	require.NoError(t, s.SetAdmin(ctx, user.Id, false))
	admin, _ = s.IsAdmin(ctx, user.Id)
	assert.False(t, admin)

	assert.True(t, errors.IsNotFound(s.SetAdmin(ctx, "ghost", true)))

	s.SetAdminForTest("ghost", true)
	admin, _ = s.IsAdmin(ctx, "ghost")
	assert.True(t, admin)
}

func TestContent(t *testing.T) {
	ctx := context.Background()

	t.Run("singletons start empty", func(t *testing.T) {
		s := New()
		_, err := s.About(ctx)
		assert.True(t, errors.IsNotFound(err))
		_, err = s.ResumeSettings(ctx)
		assert.True(t, errors.IsNotFound(err))

		saved, err := s.SaveAbout(ctx, domain.About{Headline: "Dev"})
		require.NoError(t, err)
		again, err := s.SaveAbout(ctx, domain.About{Headline: "Dev 2"})
		require.NoError(t, err)
		assert.Equal(t, saved.Id, again.Id)

		got, err := s.About(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Dev 2", got.Headline)
	})

	t.Run("skills sorted and filtered", func(t *testing.T) {
		s := New()
		_, _ = s.CreateSkill(ctx, domain.Skill{Name: "Go", Category: "backend", SortOrder: 2})
		_, _ = s.CreateSkill(ctx, domain.Skill{Name: "React", Category: "frontend", SortOrder: 1})
		_, _ = s.CreateSkill(ctx, domain.Skill{Name: "SQL", Category: "backend", SortOrder: 2})

		all, err := s.ListSkills(ctx, domain.SkillFilter{})
		require.NoError(t, err)
		var names []string
		for _, skill := range all {
			names = append(names, skill.Name)
		}
		assert.Equal(t, []string{"React", "Go", "SQL"}, names)

		backend := "backend"
		filtered, err := s.ListSkills(ctx, domain.SkillFilter{Category: &backend})
		require.NoError(t, err)
		assert.Len(t, filtered, 2)
	})

	t.Run("update and delete", func(t *testing.T) {
		s := New()
		svc, err := s.CreateService(ctx, domain.Service{Name: "Consulting"})
		require.NoError(t, err)

		svc.Name = "Audit"
		updated, err := s.UpdateService(ctx, svc)
		require.NoError(t, err)
		assert.Equal(t, "Audit", updated.Name)

		require.NoError(t, s.DeleteService(ctx, svc.Id))
		_, err = s.Service(ctx, svc.Id)
		assert.True(t, errors.IsNotFound(err))
		assert.True(t, errors.IsNotFound(s.DeleteService(ctx, svc.Id)))

		_, err = s.UpdateService(ctx, domain.Service{Id: "missing"})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("portfolio filters and slugs", func(t *testing.T) {
		s := New()
		pub, err := s.CreatePortfolioItem(ctx, domain.PortfolioItem{
			Slug: "shop", Title: "Online Shop", Summary: "payments", Status: domain.PortfolioPublished,
			Tags: []string{"web"}, TechStack: []string{"Go"},
		})
		require.NoError(t, err)
		assert.False(t, pub.CreatedAt.IsZero())
		_, err = s.CreatePortfolioItem(ctx, domain.PortfolioItem{Slug: "draft", Title: "Draft", Status: domain.PortfolioDraft})
		require.NoError(t, err)

		_, err = s.CreatePortfolioItem(ctx, domain.PortfolioItem{Slug: "shop"})
		assert.Equal(t, errors.KindConflict, errors.KindOf(err))

		public, _ := s.ListPortfolio(ctx, domain.PortfolioFilter{})
		assert.Len(t, public, 1)
		all, _ := s.ListPortfolio(ctx, domain.PortfolioFilter{IncludeDrafts: true})
		assert.Len(t, all, 2)

		q := "SHOP"
		byQuery, _ := s.ListPortfolio(ctx, domain.PortfolioFilter{Query: &q})
		assert.Len(t, byQuery, 1)
		tag := "mobile"
		byTag, _ := s.ListPortfolio(ctx, domain.PortfolioFilter{Tag: &tag})
		assert.Empty(t, byTag)
		tech := "Go"
		byTech, _ := s.ListPortfolio(ctx, domain.PortfolioFilter{Tech: &tech})
		assert.Len(t, byTech, 1)

		got, err := s.PortfolioItemBySlug(ctx, "shop")
		require.NoError(t, err)
		assert.Equal(t, pub.Id, got.Id)

		got.Slug = "draft"
		_, err = s.UpdatePortfolioItem(ctx, got)
		assert.Equal(t, errors.KindConflict, errors.KindOf(err))
		got.Slug = "shop"
		_, err = s.UpdatePortfolioItem(ctx, got)
		assert.NoError(t, err, "keeping its own slug is fine")
	})
}
