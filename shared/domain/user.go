package domain

import "time"

type User struct {
	Id        UserId
	Email     Email
	PassHash  string
	CreatedAt time.Time
}

type Credentials struct {
	Email    Email
	Password Password
}

// Caller is the authenticated identity behind a single request.
// It is resolved per request and never persisted.
type Caller struct {
	Id    UserId
	Email Email
	Admin bool
}

type Role = string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (c Caller) Role() Role {
	if c.Admin {
		return RoleAdmin
	}
	return RoleUser
}

// Owns reports whether the caller created the message.
func (c Caller) Owns(o MessageOwnership) bool {
	return c.Id != "" && c.Id == o.OwnerId
}
