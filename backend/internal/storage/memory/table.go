package memory

import (
	"sort"
	"time"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/google/uuid"
)

// tableMeta tells the generic table how to reach the fields it manages.
type tableMeta[T any] struct {
	notFound  string
	id        func(*T) *domain.ContentId
	sortOrder func(T) int
	touch     func(row *T, now time.Time, created bool)
}

type tableRow[T any] struct {
	seq int64
	val T
}

// table is not safe for concurrent use; Storage.mu guards it.
type table[T any] struct {
	meta tableMeta[T]
	rows map[domain.ContentId]*tableRow[T]
}

func newTable[T any](meta tableMeta[T]) *table[T] {
	return &table[T]{meta: meta, rows: make(map[domain.ContentId]*tableRow[T])}
}

// list returns matching rows by sortOrder, then insertion order.
func (t *table[T]) list(match func(T) bool) []T {
	rows := make([]*tableRow[T], 0, len(t.rows))
	for _, row := range t.rows {
		if match == nil || match(row.val) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := t.meta.sortOrder(rows[i].val), t.meta.sortOrder(rows[j].val)
		if a != b {
			return a < b
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.val)
	}
	return out
}

func (t *table[T]) get(id domain.ContentId) (T, error) {
	row, ok := t.rows[id]
	if !ok || !parseId(id) {
		var zero T
		return zero, errors.NotFound(t.meta.notFound)
	}
	return row.val, nil
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, row := range t.rows {
		if match(row.val) {
			return row.val, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) create(v T, now time.Time, seq int64) T {
	*t.meta.id(&v) = uuid.NewString()
	t.meta.touch(&v, now, true)
	t.rows[*t.meta.id(&v)] = &tableRow[T]{seq: seq, val: v}
	return v
}

func (t *table[T]) update(v T, now time.Time) (T, error) {
	row, ok := t.rows[*t.meta.id(&v)]
	if !ok {
		var zero T
		return zero, errors.NotFound(t.meta.notFound)
	}
	t.meta.touch(&v, now, false)
	row.val = v
	return v, nil
}

func (t *table[T]) delete(id domain.ContentId) error {
	if _, ok := t.rows[id]; !ok {
		return errors.NotFound(t.meta.notFound)
	}
	delete(t.rows, id)
	return nil
}

var skillMeta = tableMeta[domain.Skill]{
	notFound:  "Skill not found",
	id:        func(s *domain.Skill) *domain.ContentId { return &s.Id },
	sortOrder: func(s domain.Skill) int { return s.SortOrder },
	touch:     func(s *domain.Skill, now time.Time, _ bool) { s.UpdatedAt = now },
}

var experienceMeta = tableMeta[domain.Experience]{
	notFound:  "Experience not found",
	id:        func(e *domain.Experience) *domain.ContentId { return &e.Id },
	sortOrder: func(e domain.Experience) int { return e.SortOrder },
	touch:     func(e *domain.Experience, now time.Time, _ bool) { e.UpdatedAt = now },
}

var serviceMeta = tableMeta[domain.Service]{
	notFound:  "Service not found",
	id:        func(s *domain.Service) *domain.ContentId { return &s.Id },
	sortOrder: func(s domain.Service) int { return s.SortOrder },
	touch:     func(s *domain.Service, now time.Time, _ bool) { s.UpdatedAt = now },
}

var portfolioMeta = tableMeta[domain.PortfolioItem]{
	notFound:  "Portfolio item not found",
	id:        func(p *domain.PortfolioItem) *domain.ContentId { return &p.Id },
	sortOrder: func(p domain.PortfolioItem) int { return p.SortOrder },
	touch: func(p *domain.PortfolioItem, now time.Time, created bool) {
		if created {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
	},
}
