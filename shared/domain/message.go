package domain

import (
	"fmt"
	"time"
)

type Message struct {
	Id         MessageId  `json:"id"`
	OwnerId    UserId     `json:"ownerId"`
	Title      *string    `json:"title"`
	Content    string     `json:"content"`
	AdminReply *string    `json:"adminReply"`
	RepliedAt  *time.Time `json:"repliedAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
	DeletedBy  *UserId    `json:"deletedBy"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (m *Message) IsDeleted() bool {
	return m.DeletedAt != nil
}

// for debug
func (m *Message) String() string {
	return fmt.Sprintf("[id:%s, owner:%s, replied:%t, deleted:%t, created:%s]",
		m.Id, m.OwnerId, m.AdminReply != nil, m.DeletedAt != nil, m.CreatedAt.Format(time.StampMilli))
}

type MessageOwnership struct {
	Id      MessageId
	OwnerId UserId
}

// to iterate thru layers: service -> storage
type MessageCreationData struct {
	OwnerId UserId
	Title   *string
	Content MessageContent
}

type MessageFilter struct {
	OwnerId        *UserId // nil lists every owner
	IncludeDeleted bool
}

// MessageFields is a typed partial update. Nil members are left untouched.
// Reply and Deletion carry both halves of their pair, so neither can be written half-set.
// A Deletion on an already deleted message keeps the first stamp.
type MessageFields struct {
	Title    *TitleChange
	Content  *MessageContent
	Reply    *Reply
	Deletion *Deletion
}

// TitleChange sets the title; a nil Title clears it.
type TitleChange struct {
	Title *string
}

type Reply struct {
	Text string
	At   time.Time
}

type Deletion struct {
	At time.Time
	By UserId
}

func (f MessageFields) IsEmpty() bool {
	return f.Title == nil && f.Content == nil && f.Reply == nil && f.Deletion == nil
}

// Apply writes the fields onto m. Storage implementations without SQL use it.
func (f MessageFields) Apply(m *Message) {
	if f.Title != nil {
		if f.Title.Title == nil {
			m.Title = nil
		} else {
			title := *f.Title.Title
			m.Title = &title
		}
	}
	if f.Content != nil {
		m.Content = *f.Content
	}
	if f.Reply != nil {
		text, at := f.Reply.Text, f.Reply.At
		m.AdminReply = &text
		m.RepliedAt = &at
	}
	if f.Deletion != nil && m.DeletedAt == nil {
		at, by := f.Deletion.At, f.Deletion.By
		m.DeletedAt = &at
		m.DeletedBy = &by
	}
}
