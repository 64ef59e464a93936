package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMessageFieldsApply(t *testing.T) {
	now := time.Date(2026, 2, 24, 3, 30, 0, 0, time.UTC)

	t.Run("title set and cleared", func(t *testing.T) {
		m := &Message{Title: strPtr("old")}
		MessageFields{Title: &TitleChange{Title: strPtr("new")}}.Apply(m)
		require.NotNil(t, m.Title)
		assert.Equal(t, "new", *m.Title)

		MessageFields{Title: &TitleChange{}}.Apply(m)
		assert.Nil(t, m.Title)
	})

	t.Run("reply sets both halves", func(t *testing.T) {
		m := &Message{}
		MessageFields{Reply: &Reply{Text: "thanks", At: now}}.Apply(m)
		require.NotNil(t, m.AdminReply)
		require.NotNil(t, m.RepliedAt)
		assert.Equal(t, "thanks", *m.AdminReply)
		assert.Equal(t, now, *m.RepliedAt)
		assert.False(t, m.IsDeleted())
	})

	t.Run("deletion sets both halves", func(t *testing.T) {
		m := &Message{}
		MessageFields{Deletion: &Deletion{At: now, By: "u1"}}.Apply(m)
		require.NotNil(t, m.DeletedAt)
		require.NotNil(t, m.DeletedBy)
		assert.Equal(t, "u1", *m.DeletedBy)
		assert.True(t, m.IsDeleted())

		MessageFields{Deletion: &Deletion{At: now.Add(time.Hour), By: "u2"}}.Apply(m)
		assert.Equal(t, now, *m.DeletedAt)
		assert.Equal(t, "u1", *m.DeletedBy)
	})

	t.Run("empty fields leave message untouched", func(t *testing.T) {
		m := &Message{Content: "c1", Title: strPtr("t1")}
		fields := MessageFields{}
		assert.True(t, fields.IsEmpty())
		fields.Apply(m)
		assert.Equal(t, "c1", m.Content)
		assert.Equal(t, "t1", *m.Title)
	})
}

func TestCallerOwns(t *testing.T) {
	assert.True(t, Caller{Id: "u1"}.Owns(MessageOwnership{Id: "m1", OwnerId: "u1"}))
	assert.False(t, Caller{Id: "u2"}.Owns(MessageOwnership{Id: "m1", OwnerId: "u1"}))
	assert.False(t, Caller{}.Owns(MessageOwnership{Id: "m1"}))
	assert.Equal(t, RoleAdmin, Caller{Admin: true}.Role())
	assert.Equal(t, RoleUser, Caller{}.Role())
}
