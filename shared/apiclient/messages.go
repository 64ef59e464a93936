package apiclient

import (
	"context"
	"net/http"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
)

const messagesPath = "/v1/messages"

func (c *APIClient) ListMessages(ctx context.Context, token string) ([]domain.Message, error) {
	var resp api.MessagesResponse
	err := c.call(ctx, http.MethodPost, messagesPath, token, api.MessagesRequest{Action: api.ActionList}, &resp)
	return resp.Messages, err
}

// CreateMessage sends a nil title as an absent member.
func (c *APIClient) CreateMessage(ctx context.Context, token string, title *string, content string) (domain.Message, error) {
	payload := &api.MessagePayload{Content: api.NewNullableString(content)}
	if title != nil {
		payload.Title = api.NewNullableString(*title)
	}
	return c.messageAction(ctx, token, api.MessagesRequest{Action: api.ActionCreate, Payload: payload})
}

// UpdateMessage changes only the members set in payload.
func (c *APIClient) UpdateMessage(ctx context.Context, token string, id domain.MessageId, payload api.MessagePayload) (domain.Message, error) {
	return c.messageAction(ctx, token, api.MessagesRequest{Action: api.ActionUpdate, Id: id, Payload: &payload})
}

func (c *APIClient) ReplyMessage(ctx context.Context, token string, id domain.MessageId, reply string) (domain.Message, error) {
	payload := &api.MessagePayload{Reply: api.NewNullableString(reply)}
	return c.messageAction(ctx, token, api.MessagesRequest{Action: api.ActionReply, Id: id, Payload: payload})
}

func (c *APIClient) DeleteMessage(ctx context.Context, token string, id domain.MessageId, mode api.DeleteMode) error {
	var resp api.OkResponse
	return c.call(ctx, http.MethodPost, messagesPath, token, api.MessagesRequest{Action: api.ActionDelete, Id: id, Mode: mode}, &resp)
}

func (c *APIClient) messageAction(ctx context.Context, token string, req api.MessagesRequest) (domain.Message, error) {
	var resp api.MessageResponse
	err := c.call(ctx, http.MethodPost, messagesPath, token, req, &resp)
	return resp.Message, err
}
