// Package memory keeps every table in process memory. It backs tests and
// local runs with storage: memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/google/uuid"
)

var (
	_ service.MessageStorage = (*Storage)(nil)
	_ service.UserStorage    = (*Storage)(nil)
	_ service.AdminRegistry  = (*Storage)(nil)
	_ service.ContentStorage = (*Storage)(nil)
)

type Storage struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	messages map[domain.MessageId]*messageRow
	users    map[domain.UserId]domain.User
	admins   map[domain.UserId]time.Time

	about          *domain.About
	resumeSettings *domain.ResumeExportSettings
	skills         *table[domain.Skill]
	experiences    *table[domain.Experience]
	services       *table[domain.Service]
	portfolio      *table[domain.PortfolioItem]
}

type messageRow struct {
	seq int64
	msg domain.Message
}

func New() *Storage {
	return &Storage{
		now:         time.Now,
		messages:    make(map[domain.MessageId]*messageRow),
		users:       make(map[domain.UserId]domain.User),
		admins:      make(map[domain.UserId]time.Time),
		skills:      newTable(skillMeta),
		experiences: newTable(experienceMeta),
		services:    newTable(serviceMeta),
		portfolio:   newTable(portfolioMeta),
	}
}

// WithClock replaces the time source for createdAt/updatedAt stamps.
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Storage) Ping(ctx context.Context) error { return nil }

func (s *Storage) Cleanup() error { return nil }

// stamp must be called with mu held.
func (s *Storage) stamp() (time.Time, int64) {
	s.seq++
	return s.now().UTC(), s.seq
}

// parseId reports ids the store could never have issued.
func parseId(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
