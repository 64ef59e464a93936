package memory

import (
	"context"
	"sort"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/google/uuid"
)

func (s *Storage) ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*messageRow, 0, len(s.messages))
	for _, row := range s.messages {
		if filter.OwnerId != nil && row.msg.OwnerId != *filter.OwnerId {
			continue
		}
		if !filter.IncludeDeleted && row.msg.IsDeleted() {
			continue
		}
		rows = append(rows, row)
	}
	// newest first, insertion order breaks ties
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].msg.CreatedAt.Equal(rows[j].msg.CreatedAt) {
			return rows[i].msg.CreatedAt.After(rows[j].msg.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	messages := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, cloneMessage(row.msg))
	}
	return messages, nil
}

func (s *Storage) InsertMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, seq := s.stamp()
	msg := domain.Message{
		Id:        uuid.NewString(),
		OwnerId:   data.OwnerId,
		Title:     copyPtr(data.Title),
		Content:   data.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.messages[msg.Id] = &messageRow{seq: seq, msg: msg}
	return cloneMessage(msg), nil
}

func (s *Storage) UpdateMessageFields(ctx context.Context, id domain.MessageId, fields domain.MessageFields) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.messageRow(id)
	if err != nil {
		return domain.Message{}, err
	}
	fields.Apply(&row.msg)
	row.msg.UpdatedAt, _ = s.stamp()
	return cloneMessage(row.msg), nil
}

func (s *Storage) DeleteMessageRow(ctx context.Context, id domain.MessageId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.messageRow(id); err != nil {
		return err
	}
	delete(s.messages, id)
	return nil
}

func (s *Storage) GetMessageOwnership(ctx context.Context, id domain.MessageId) (domain.MessageOwnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.messageRow(id)
	if err != nil {
		return domain.MessageOwnership{}, err
	}
	return domain.MessageOwnership{Id: row.msg.Id, OwnerId: row.msg.OwnerId}, nil
}

// GetMessage is a read helper for tests; the service never reads full rows by id.
func (s *Storage) GetMessage(id domain.MessageId) (domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.messages[id]
	if !ok {
		return domain.Message{}, false
	}
	return cloneMessage(row.msg), true
}

func (s *Storage) messageRow(id domain.MessageId) (*messageRow, error) {
	if !parseId(id) {
		return nil, errors.NotFound("Message not found")
	}
	row, ok := s.messages[id]
	if !ok {
		return nil, errors.NotFound("Message not found")
	}
	return row, nil
}

// cloneMessage detaches pointer fields so callers cannot mutate stored rows.
func cloneMessage(m domain.Message) domain.Message {
	m.Title = copyPtr(m.Title)
	m.AdminReply = copyPtr(m.AdminReply)
	m.RepliedAt = copyPtr(m.RepliedAt)
	m.DeletedAt = copyPtr(m.DeletedAt)
	m.DeletedBy = copyPtr(m.DeletedBy)
	return m
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
