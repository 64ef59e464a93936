package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/folio-cms/folio/shared/domain"
	internal_errors "github.com/folio-cms/folio/shared/errors"
)

const messageColumns = `id, owner_id, title, content, admin_reply, replied_at, deleted_at, deleted_by, created_at, updated_at`

// =========================================================================
// Public Methods (satisfy the service.MessageStorage interface)
// =========================================================================

func (s *Storage) ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.listMessages(ctx, s.db, filter)
}

func (s *Storage) InsertMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error) {
	var msg domain.Message
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		msg, err = s.insertMessage(ctx, tx, data)
		return err
	})
	return msg, err
}

func (s *Storage) UpdateMessageFields(ctx context.Context, id domain.MessageId, fields domain.MessageFields) (domain.Message, error) {
	if !validId(id) {
		return domain.Message{}, internal_errors.NotFound("Message not found")
	}
	var msg domain.Message
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		msg, err = s.updateMessageFields(ctx, tx, id, fields)
		return err
	})
	return msg, err
}

func (s *Storage) DeleteMessageRow(ctx context.Context, id domain.MessageId) error {
	if !validId(id) {
		return internal_errors.NotFound("Message not found")
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteMessageRow(ctx, tx, id)
	})
}

func (s *Storage) GetMessageOwnership(ctx context.Context, id domain.MessageId) (domain.MessageOwnership, error) {
	if !validId(id) {
		return domain.MessageOwnership{}, internal_errors.NotFound("Message not found")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var o domain.MessageOwnership
	err := s.db.QueryRowContext(ctx, `SELECT id, owner_id FROM messages WHERE id = $1`, id).Scan(&o.Id, &o.OwnerId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MessageOwnership{}, internal_errors.NotFound("Message not found")
		}
		return domain.MessageOwnership{}, fmt.Errorf("failed to query message ownership: %w", err)
	}
	return o, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) listMessages(ctx context.Context, q Querier, filter domain.MessageFilter) ([]domain.Message, error) {
	var (
		where []string
		args  []any
	)
	if filter.OwnerId != nil {
		if !validId(*filter.OwnerId) {
			return []domain.Message{}, nil
		}
		args = append(args, *filter.OwnerId)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if !filter.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}

	query := "SELECT " + messageColumns + " FROM messages"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}

func (s *Storage) insertMessage(ctx context.Context, q Querier, data domain.MessageCreationData) (domain.Message, error) {
	row := q.QueryRowContext(ctx,
		`INSERT INTO messages (owner_id, title, content) VALUES ($1, $2, $3) RETURNING `+messageColumns,
		data.OwnerId, data.Title, data.Content)
	msg, err := scanMessage(row)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}
	return msg, nil
}

// updateMessageFields builds one UPDATE from the typed fields. A deletion never
// overwrites an earlier stamp.
func (s *Storage) updateMessageFields(ctx context.Context, q Querier, id domain.MessageId, fields domain.MessageFields) (domain.Message, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Title != nil {
		set("title", fields.Title.Title)
	}
	if fields.Content != nil {
		set("content", *fields.Content)
	}
	if fields.Reply != nil {
		set("admin_reply", fields.Reply.Text)
		set("replied_at", fields.Reply.At)
	}
	if fields.Deletion != nil {
		args = append(args, fields.Deletion.At, fields.Deletion.By)
		sets = append(sets,
			fmt.Sprintf("deleted_at = COALESCE(deleted_at, $%d)", len(args)-1),
			fmt.Sprintf("deleted_by = COALESCE(deleted_by, $%d)", len(args)))
	}

	query := "UPDATE messages SET " + strings.Join(sets, ", ") + " WHERE id = $1 RETURNING " + messageColumns
	msg, err := scanMessage(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, internal_errors.NotFound("Message not found")
		}
		return domain.Message{}, fmt.Errorf("failed to update message: %w", err)
	}
	return msg, nil
}

func (s *Storage) deleteMessageRow(ctx context.Context, q Querier, id domain.MessageId) error {
	result, err := q.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for message deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("Message not found")
	}
	return nil
}

func scanMessage(row rowScanner) (domain.Message, error) {
	var msg domain.Message
	err := row.Scan(&msg.Id, &msg.OwnerId, &msg.Title, &msg.Content, &msg.AdminReply,
		&msg.RepliedAt, &msg.DeletedAt, &msg.DeletedBy, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return domain.Message{}, err
	}
	msg.CreatedAt = msg.CreatedAt.UTC()
	msg.UpdatedAt = msg.UpdatedAt.UTC()
	return msg, nil
}
