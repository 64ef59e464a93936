package service

import (
	"context"
	"strings"
	"time"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/middleware/metrics"
)

// to mock service in tests
type MessagesService interface {
	Dispatch(ctx context.Context, credential string, req api.MessagesRequest) (MessagesResult, error)
}

type MessageStorage interface {
	ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error)
	InsertMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error)
	UpdateMessageFields(ctx context.Context, id domain.MessageId, fields domain.MessageFields) (domain.Message, error)
	DeleteMessageRow(ctx context.Context, id domain.MessageId) error
	GetMessageOwnership(ctx context.Context, id domain.MessageId) (domain.MessageOwnership, error)
}

type CallerResolver interface {
	ResolveCaller(ctx context.Context, credential string) (domain.Caller, error)
}

// MessagesResult holds exactly one of the three success shapes.
type MessagesResult struct {
	Messages []domain.Message
	Message  *domain.Message
	Ok       bool
}

// Body returns the JSON document for the result.
func (r MessagesResult) Body() any {
	switch {
	case r.Message != nil:
		return api.MessageResponse{Message: *r.Message}
	case r.Ok:
		return api.OkResponse{Ok: true}
	default:
		messages := r.Messages
		if messages == nil {
			messages = []domain.Message{}
		}
		return api.MessagesResponse{Messages: messages}
	}
}

// Messages is the access controller for contact messages. Every rule about who
// may see or change a message lives here; the storage trusts it completely.
type Messages struct {
	identity CallerResolver
	storage  MessageStorage
	now      func() time.Time
}

func NewMessages(identity CallerResolver, storage MessageStorage) *Messages {
	return &Messages{identity: identity, storage: storage, now: time.Now}
}

// WithClock replaces the time source used for repliedAt and deletedAt.
func (s *Messages) WithClock(now func() time.Time) *Messages {
	s.now = now
	return s
}

func (s *Messages) Dispatch(ctx context.Context, credential string, req api.MessagesRequest) (MessagesResult, error) {
	action := req.Action
	if action == "" {
		action = api.ActionList
	}
	log := logger.Component("messages").With("action", action)

	caller, err := s.authenticate(ctx, credential)
	if err != nil {
		log.Debug("authentication failed", "error", err)
		metrics.RecordMessageAction(action, string(errors.KindOf(err)))
		return MessagesResult{}, err
	}
	log = log.With("caller_id", caller.Id, "admin", caller.Admin)

	var result MessagesResult
	switch action {
	case api.ActionList:
		result, err = s.list(ctx, caller)
	case api.ActionCreate:
		result, err = s.create(ctx, caller, req.Payload)
	case api.ActionUpdate:
		result, err = s.update(ctx, caller, req.Id, req.Payload)
	case api.ActionReply:
		result, err = s.reply(ctx, caller, req.Id, req.Payload)
	case api.ActionDelete:
		result, err = s.delete(ctx, caller, req.Id, req.Mode)
	default:
		err = errors.UnsupportedAction("Unsupported action")
	}

	if err != nil {
		kind := errors.KindOf(err)
		if kind == errors.KindForbidden {
			log.Warn("message action denied", "id", req.Id, "mode", req.Mode)
		} else {
			log.Debug("message action failed", "id", req.Id, "error", err)
		}
		metrics.RecordMessageAction(action, string(kind))
		return MessagesResult{}, err
	}
	log.Debug("message action done", "id", req.Id)
	metrics.RecordMessageAction(action, "ok")
	return result, nil
}

func (s *Messages) authenticate(ctx context.Context, credential string) (domain.Caller, error) {
	if strings.TrimSpace(credential) == "" {
		return domain.Caller{}, errors.Unauthorized("Unauthorized")
	}
	caller, err := s.identity.ResolveCaller(ctx, credential)
	if err != nil {
		if errors.IsClassified(err) {
			return domain.Caller{}, err
		}
		return domain.Caller{}, errors.Store(err)
	}
	return caller, nil
}

func (s *Messages) list(ctx context.Context, caller domain.Caller) (MessagesResult, error) {
	filter := domain.MessageFilter{IncludeDeleted: true}
	if !caller.Admin {
		owner := caller.Id
		filter = domain.MessageFilter{OwnerId: &owner, IncludeDeleted: false}
	}
	messages, err := s.storage.ListMessages(ctx, filter)
	if err != nil {
		return MessagesResult{}, storeError(err)
	}
	return MessagesResult{Messages: messages}, nil
}

func (s *Messages) create(ctx context.Context, caller domain.Caller, payload *api.MessagePayload) (MessagesResult, error) {
	if payload == nil {
		payload = &api.MessagePayload{}
	}
	content, ok := trimmed(payload.Content)
	if !ok {
		return MessagesResult{}, errors.Validation("Content is required")
	}

	msg, err := s.storage.InsertMessage(ctx, domain.MessageCreationData{
		OwnerId: caller.Id,
		Title:   optionalTitle(payload.Title),
		Content: content,
	})
	if err != nil {
		return MessagesResult{}, storeError(err)
	}
	return MessagesResult{Message: &msg}, nil
}

func (s *Messages) update(ctx context.Context, caller domain.Caller, id string, payload *api.MessagePayload) (MessagesResult, error) {
	if id == "" {
		return MessagesResult{}, errors.Validation("Id is required")
	}
	// payload errors are only reported to the owner or an admin
	if err := s.authorizeOwnerOrAdmin(ctx, caller, id); err != nil {
		return MessagesResult{}, err
	}
	if payload == nil {
		payload = &api.MessagePayload{}
	}

	var fields domain.MessageFields
	if payload.Title.Set {
		fields.Title = &domain.TitleChange{Title: optionalTitle(payload.Title)}
	}
	if payload.Content.Set {
		content, ok := trimmed(payload.Content)
		if !ok {
			return MessagesResult{}, errors.Validation("Content must not be empty")
		}
		fields.Content = &content
	}
	if fields.IsEmpty() {
		return MessagesResult{}, errors.Validation("Nothing to update")
	}

	msg, err := s.storage.UpdateMessageFields(ctx, id, fields)
	if err != nil {
		return MessagesResult{}, storeError(err)
	}
	return MessagesResult{Message: &msg}, nil
}

func (s *Messages) reply(ctx context.Context, caller domain.Caller, id string, payload *api.MessagePayload) (MessagesResult, error) {
	if !caller.Admin {
		return MessagesResult{}, errors.Forbidden("Forbidden")
	}
	if id == "" {
		return MessagesResult{}, errors.Validation("Id is required")
	}
	if payload == nil {
		payload = &api.MessagePayload{}
	}
	text, ok := trimmed(payload.Reply)
	if !ok {
		return MessagesResult{}, errors.Validation("Reply is required")
	}

	if _, err := s.storage.GetMessageOwnership(ctx, id); err != nil {
		return MessagesResult{}, storeError(err)
	}

	msg, err := s.storage.UpdateMessageFields(ctx, id, domain.MessageFields{
		Reply: &domain.Reply{Text: text, At: s.now().UTC()},
	})
	if err != nil {
		return MessagesResult{}, storeError(err)
	}
	return MessagesResult{Message: &msg}, nil
}

func (s *Messages) delete(ctx context.Context, caller domain.Caller, id string, mode api.DeleteMode) (MessagesResult, error) {
	if id == "" {
		return MessagesResult{}, errors.Validation("Id is required")
	}
	if err := s.authorizeOwnerOrAdmin(ctx, caller, id); err != nil {
		return MessagesResult{}, err
	}

	if mode == "" {
		mode = api.DeleteSoft
	}
	if mode != api.DeleteSoft && mode != api.DeleteHard {
		return MessagesResult{}, errors.Validation("Mode must be soft or hard")
	}

	if mode == api.DeleteHard {
		// destructive and irreversible, owners included
		if !caller.Admin {
			return MessagesResult{}, errors.Forbidden("Forbidden")
		}
		if err := s.storage.DeleteMessageRow(ctx, id); err != nil {
			return MessagesResult{}, storeError(err)
		}
		return MessagesResult{Ok: true}, nil
	}

	_, err := s.storage.UpdateMessageFields(ctx, id, domain.MessageFields{
		Deletion: &domain.Deletion{At: s.now().UTC(), By: caller.Id},
	})
	if err != nil {
		return MessagesResult{}, storeError(err)
	}
	return MessagesResult{Ok: true}, nil
}

// authorizeOwnerOrAdmin reads ownership before any payload check or write.
func (s *Messages) authorizeOwnerOrAdmin(ctx context.Context, caller domain.Caller, id string) error {
	ownership, err := s.storage.GetMessageOwnership(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if !caller.Admin && !caller.Owns(ownership) {
		return errors.Forbidden("Forbidden")
	}
	return nil
}

func storeError(err error) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.Store(err)
}

// trimmed returns the trimmed value when it is present and non-blank.
func trimmed(v api.NullableString) (string, bool) {
	if v.Value == nil {
		return "", false
	}
	s := strings.TrimSpace(*v.Value)
	return s, s != ""
}

func optionalTitle(v api.NullableString) *string {
	title, ok := trimmed(v)
	if !ok {
		return nil
	}
	return &title
}
