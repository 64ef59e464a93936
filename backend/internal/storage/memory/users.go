package memory

import (
	"context"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/google/uuid"
)

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.User{}, errors.Conflict("User already exists")
		}
	}
	user.Id = uuid.NewString()
	user.CreatedAt, _ = s.stamp()
	s.users[user.Id] = user
	return user, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (s *Storage) SetAdmin(ctx context.Context, id domain.UserId, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return errors.NotFound("User not found")
	}
	s.setAdmin(id, admin)
	return nil
}

// IsAdmin answers false for unknown ids, never an error.
func (s *Storage) IsAdmin(ctx context.Context, id domain.UserId) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.admins[id]
	return ok, nil
}

// SetAdminForTest toggles membership for any id, registered or not.
func (s *Storage) SetAdminForTest(id domain.UserId, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAdmin(id, admin)
}

func (s *Storage) setAdmin(id domain.UserId, admin bool) {
	if !admin {
		delete(s.admins, id)
		return
	}
	if _, ok := s.admins[id]; !ok {
		s.admins[id], _ = s.stamp()
	}
}
