package pg

import (
	"context"
	"database/sql"
	"time"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/shared/config"
	"github.com/folio-cms/folio/shared/logger"
	sharedpg "github.com/folio-cms/folio/shared/storage/pg"
	"github.com/google/uuid"
)

var (
	_ service.MessageStorage = (*Storage)(nil)
	_ service.UserStorage    = (*Storage)(nil)
	_ service.AdminRegistry  = (*Storage)(nil)
	_ service.ContentStorage = (*Storage)(nil)
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier = sharedpg.Querier

// queryTimeout bounds storage calls whose context carries no deadline.
const queryTimeout = 5 * time.Second

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, pg config.Pg, connCfg sharedpg.ConnectionConfig) (*Storage, error) {
	logger.Log.Info("connecting to database", "host", pg.Host, "dbname", pg.Dbname)
	db, err := sharedpg.Connect(ctx, pg, connCfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to database")
	return &Storage{db: db}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return sharedpg.WithTx(ctx, s.db, fn)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, queryTimeout)
}

// validId filters values the uuid columns would reject with 22P02.
func validId(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
