package api

import "github.com/folio-cms/folio/shared/domain"

type MessageAction = string

const (
	ActionList   MessageAction = "list"
	ActionCreate MessageAction = "create"
	ActionUpdate MessageAction = "update"
	ActionReply  MessageAction = "reply"
	ActionDelete MessageAction = "delete"
)

type DeleteMode = string

const (
	DeleteSoft DeleteMode = "soft"
	DeleteHard DeleteMode = "hard"
)

// Request DTOs

// MessagesRequest is the body of POST /v1/messages.
type MessagesRequest struct {
	Action  MessageAction   `json:"action,omitempty"`
	Id      string          `json:"id,omitempty"`
	Payload *MessagePayload `json:"payload,omitempty"`
	Mode    DeleteMode      `json:"mode,omitempty"`
}

type MessagePayload struct {
	Title   NullableString `json:"title,omitzero"`
	Content NullableString `json:"content,omitzero"`
	Reply   NullableString `json:"reply,omitzero"`
}

// Response DTOs

type MessagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

type MessageResponse struct {
	Message domain.Message `json:"message"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
