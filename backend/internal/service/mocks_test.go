package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/jwt"
)

// --- Mocks ---

type MockCallerResolver struct {
	ResolveCallerFunc func(ctx context.Context, credential string) (domain.Caller, error)
	calls             int
}

func (m *MockCallerResolver) ResolveCaller(ctx context.Context, credential string) (domain.Caller, error) {
	m.calls++
	if m.ResolveCallerFunc != nil {
		return m.ResolveCallerFunc(ctx, credential)
	}
	return domain.Caller{Id: "user-1"}, nil
}

// MockMessageStorage records every call so tests can assert nothing was touched.
type MockMessageStorage struct {
	ListMessagesFunc        func(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error)
	InsertMessageFunc       func(ctx context.Context, data domain.MessageCreationData) (domain.Message, error)
	UpdateMessageFieldsFunc func(ctx context.Context, id domain.MessageId, fields domain.MessageFields) (domain.Message, error)
	DeleteMessageRowFunc    func(ctx context.Context, id domain.MessageId) error
	GetMessageOwnershipFunc func(ctx context.Context, id domain.MessageId) (domain.MessageOwnership, error)

	calls []string
}

func (m *MockMessageStorage) ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	m.calls = append(m.calls, "ListMessages")
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockMessageStorage) InsertMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error) {
	m.calls = append(m.calls, "InsertMessage")
	if m.InsertMessageFunc != nil {
		return m.InsertMessageFunc(ctx, data)
	}
	return domain.Message{Id: "m1", OwnerId: data.OwnerId, Title: data.Title, Content: data.Content}, nil
}

func (m *MockMessageStorage) UpdateMessageFields(ctx context.Context, id domain.MessageId, fields domain.MessageFields) (domain.Message, error) {
	m.calls = append(m.calls, "UpdateMessageFields")
	if m.UpdateMessageFieldsFunc != nil {
		return m.UpdateMessageFieldsFunc(ctx, id, fields)
	}
	return domain.Message{Id: id}, nil
}

func (m *MockMessageStorage) DeleteMessageRow(ctx context.Context, id domain.MessageId) error {
	m.calls = append(m.calls, "DeleteMessageRow")
	if m.DeleteMessageRowFunc != nil {
		return m.DeleteMessageRowFunc(ctx, id)
	}
	return nil
}

func (m *MockMessageStorage) GetMessageOwnership(ctx context.Context, id domain.MessageId) (domain.MessageOwnership, error) {
	m.calls = append(m.calls, "GetMessageOwnership")
	if m.GetMessageOwnershipFunc != nil {
		return m.GetMessageOwnershipFunc(ctx, id)
	}
	return domain.MessageOwnership{Id: id, OwnerId: "user-1"}, nil
}

type MockJwtService struct {
	NewTokenFunc    func(user domain.User) (string, time.Time, error)
	DecodeTokenFunc func(jwtStr string) (*jwt.Claims, error)
}

func (m *MockJwtService) NewToken(user domain.User) (string, time.Time, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token-" + user.Id, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (m *MockJwtService) DecodeToken(jwtStr string) (*jwt.Claims, error) {
	if m.DecodeTokenFunc != nil {
		return m.DecodeTokenFunc(jwtStr)
	}
	claims := &jwt.Claims{Email: "user@example.com"}
	claims.Subject = "user-1"
	return claims, nil
}

type MockAdminRegistry struct {
	IsAdminFunc func(ctx context.Context, id domain.UserId) (bool, error)
}

func (m *MockAdminRegistry) IsAdmin(ctx context.Context, id domain.UserId) (bool, error) {
	if m.IsAdminFunc != nil {
		return m.IsAdminFunc(ctx, id)
	}
	return false, nil
}

type MockUserStorage struct {
	SaveUserFunc    func(ctx context.Context, user domain.User) (domain.User, error)
	UserByEmailFunc func(ctx context.Context, email domain.Email) (domain.User, error)
	SetAdminFunc    func(ctx context.Context, id domain.UserId, admin bool) error
}

func (m *MockUserStorage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(ctx, user)
	}
	user.Id = "user-1"
	return user, nil
}

func (m *MockUserStorage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(ctx, email)
	}
	return domain.User{Id: "user-1", Email: email}, nil
}

func (m *MockUserStorage) SetAdmin(ctx context.Context, id domain.UserId, admin bool) error {
	if m.SetAdminFunc != nil {
		return m.SetAdminFunc(ctx, id, admin)
	}
	return nil
}

type MockBlobStorage struct {
	SaveFunc   func(name string, data io.Reader) (domain.Blob, error)
	OpenFunc   func(name string) (io.ReadCloser, error)
	DeleteFunc func(name string) error
}

func (m *MockBlobStorage) Save(name string, data io.Reader) (domain.Blob, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(name, data)
	}
	n, _ := io.Copy(io.Discard, data)
	return domain.Blob{Name: name, SizeBytes: n}, nil
}

func (m *MockBlobStorage) Open(name string) (io.ReadCloser, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(name)
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *MockBlobStorage) Delete(name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(name)
	}
	return nil
}

type MockMarkdown struct{}

func (MockMarkdown) Render(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	return "<p>" + source + "</p>", nil
}

func (m MockMarkdown) RenderPtr(source *string) (string, error) {
	if source == nil {
		return "", nil
	}
	return m.Render(*source)
}
