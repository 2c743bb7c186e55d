package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"alertrecon/internal/config"
)

// Store is the opaque named-blob collaborator the persistence gateway writes
// through. Read returns (nil, nil) when the name has never been written.
// Each write replaces the blob wholesale; the store is responsible for making
// a single write safe, the gateway never writes partially.
type Store interface {
	Init(ctx context.Context) error
	Close() error
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

func NewStore(cfg config.StorageConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "file":
		return NewFile(cfg.Dir)
	case "sqlite":
		return NewSQLite(cfg.DSN)
	case "postgres", "postgresql":
		return NewPostgres(cfg.DSN)
	default:
		return nil, errors.New("unsupported storage driver")
	}
}

type baseStore struct {
	db *sql.DB
}

func (b *baseStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
