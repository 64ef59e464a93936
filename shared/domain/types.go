package domain

type (
	Email    = string
	Password = string
	UserId   = string

	MessageId      = string
	MessageTitle   = string
	MessageContent = string

	ContentId = string
	Slug      = string
)
